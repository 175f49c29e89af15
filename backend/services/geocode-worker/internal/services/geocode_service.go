package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	gutils "github.com/leetaniau/foodmap/backend/services/geocode-worker/internal/utils"
)

type GeocodeOptions struct {
	RequestInterval time.Duration
	MaxAttempts     int
	RetryDelay      time.Duration
	ServiceArea     gutils.ServiceArea
}

// GeocodeService fills in coordinates for resources that lack them. Provider
// calls are paced by a shared limiter so import and backfill runs never
// exceed the configured request rate.
type GeocodeService struct {
	repo     repositories.ResourceRepository
	geocoder gutils.Geocoder
	limiter  *rate.Limiter
	opts     GeocodeOptions
}

func NewGeocodeService(repo repositories.ResourceRepository, g gutils.Geocoder, opts GeocodeOptions) *GeocodeService {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	limit := rate.Inf
	if opts.RequestInterval > 0 {
		limit = rate.Every(opts.RequestInterval)
	}
	return &GeocodeService{
		repo:     repo,
		geocoder: g,
		limiter:  rate.NewLimiter(limit, 1),
		opts:     opts,
	}
}

// GeocodeAddress resolves one address, retrying failed or empty answers.
// Only context cancellation ends the attempts early.
func (s *GeocodeService) GeocodeAddress(ctx context.Context, address string) (*gutils.GeocodeResult, error) {
	var lastErr error
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		res, err := s.geocoder.Geocode(ctx, address)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		utils.Logger.WithError(err).Warnf("Geocode attempt %d/%d failed for %q", attempt, s.opts.MaxAttempts, address)

		if attempt < s.opts.MaxAttempts {
			if err := sleepCtx(ctx, s.opts.RetryDelay); err != nil {
				return nil, err
			}
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", s.opts.MaxAttempts, lastErr)
}

// GeocodeMissing geocodes every stored resource without coordinates and
// writes the results back as CoordinatesUpdate.
func (s *GeocodeService) GeocodeMissing(ctx context.Context) (*GeocodeReport, error) {
	all, err := s.repo.ListResources(ctx)
	if err != nil {
		return nil, err
	}

	var pending []*models.Resource
	for _, r := range all {
		if !r.HasCoordinates() {
			pending = append(pending, r)
		}
	}
	utils.Logger.Infof("Found %d resources needing geocoding", len(pending))

	report := &GeocodeReport{Outcomes: []GeocodeOutcome{}}
	for i, r := range pending {
		log := utils.Logger.WithField("resource_id", r.ID)
		log.Infof("[%d/%d] %s", i+1, len(pending), r.Name)

		outcome := GeocodeOutcome{ID: r.ID, Name: r.Name, Address: r.Address}
		if strings.TrimSpace(r.Address) == "" {
			outcome.Error = "Empty address"
			report.add(outcome)
			continue
		}

		res, err := s.GeocodeAddress(ctx, r.Address)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			outcome.Error = "Geocoding failed after retries"
			report.add(outcome)
			continue
		}

		outcome.OutsideServiceArea = s.warnIfOutside(res, log.WithField("address", r.Address).Warnf)

		if _, err := s.repo.UpdateResource(ctx, r.ID, models.CoordinatesUpdate{Latitude: res.Lat, Longitude: res.Lng}); err != nil {
			log.WithError(err).Error("Failed to store coordinates")
			outcome.Error = fmt.Sprintf("Database update failed: %v", err)
			report.add(outcome)
			continue
		}

		outcome.Success = true
		outcome.Lat = utils.Ptr(res.Lat)
		outcome.Lng = utils.Ptr(res.Lng)
		outcome.LocationType = res.LocationType
		report.add(outcome)
	}

	utils.Logger.Infof("Geocoding complete: %d succeeded, %d failed", report.Succeeded, report.Failed)
	return report, nil
}

func (s *GeocodeService) warnIfOutside(res *gutils.GeocodeResult, warnf func(string, ...any)) bool {
	in, mi := s.opts.ServiceArea.Contains(res.Lat, res.Lng)
	if in {
		return false
	}
	warnf("Coordinates (%v, %v) are %.1f mi from the service area center (%s)", res.Lat, res.Lng, mi, res.FormattedAddress)
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
