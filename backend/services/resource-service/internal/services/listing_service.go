package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	internal_utils "github.com/leetaniau/foodmap/backend/services/resource-service/internal/utils"
)

// Observer is the caller's position in decimal degrees.
type Observer struct {
	Lat float64
	Lng float64
}

// Usable reports whether the observer can anchor distance computation.
func (o *Observer) Usable() bool {
	if o == nil {
		return false
	}
	for _, v := range []float64{o.Lat, o.Lng} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return o.Lat >= -90 && o.Lat <= 90 && o.Lng >= -180 && o.Lng <= 180
}

// ListFilter narrows a listing after ordering. The zero value keeps everything.
type ListFilter struct {
	Type    *models.ResourceType
	OpenNow bool
}

func (f ListFilter) keep(r *models.Resource) bool {
	if f.Type != nil && r.Type != *f.Type {
		return false
	}
	if f.OpenNow && !r.IsOpen {
		return false
	}
	return true
}

type ListingService interface {
	ListWithDistance(ctx context.Context, observer *Observer, filter ListFilter) ([]models.Resource, error)
}

type listingService struct {
	repo repositories.ResourceRepository
}

func NewListingService(repo repositories.ResourceRepository) ListingService {
	return &listingService{repo: repo}
}

// annotated pairs a per-request copy with its sort key. The key never leaves
// this file.
type annotated struct {
	res      *models.Resource
	miles    float64
	hasMiles bool
}

// ListWithDistance returns every resource, nearest first when observer is
// usable. Resources without computable coordinates follow in store order.
// Without a usable observer the store order and persisted distance text are
// returned untouched. The store is never written.
func (s *listingService) ListWithDistance(
	ctx context.Context,
	observer *Observer,
	filter ListFilter,
) ([]models.Resource, error) {
	all, err := s.repo.ListResources(ctx)
	if err != nil {
		if !errors.Is(err, utils.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %w", utils.ErrUpstreamUnavailable, err)
		}
		return nil, err
	}

	rows := make([]annotated, 0, len(all))
	for _, r := range all {
		rows = append(rows, annotated{res: r.Clone()})
	}

	if observer.Usable() {
		for i := range rows {
			lat, lng, ok := rows[i].res.Coordinates()
			if !ok {
				continue
			}
			miles := internal_utils.DistanceMiles(observer.Lat, observer.Lng, lat, lng)
			label := internal_utils.FormatMiles(miles)
			if label == "" {
				continue
			}
			rows[i].miles = miles
			rows[i].hasMiles = true
			rows[i].res.Distance = &label
		}

		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i], rows[j]
			if a.hasMiles != b.hasMiles {
				return a.hasMiles
			}
			if !a.hasMiles {
				return false
			}
			return a.miles < b.miles
		})
	}

	out := make([]models.Resource, 0, len(rows))
	for _, row := range rows {
		if !filter.keep(row.res) {
			continue
		}
		out = append(out, *row.res)
	}
	return out, nil
}
