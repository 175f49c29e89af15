package services

import (
	"context"

	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
)

type Inventory struct {
	Total               int
	WithCoordinates     int
	MissingCoordinates  int
	WithPhone           int
	AppointmentRequired int

	// First few names on each side, for eyeballing.
	MissingSample []string
	LocatedSample []string
}

// CheckInventory summarizes how much of the store is ready for distance
// ordering.
func CheckInventory(ctx context.Context, repo repositories.ResourceRepository, sampleSize int) (*Inventory, error) {
	all, err := repo.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	inv := &Inventory{Total: len(all), MissingSample: []string{}, LocatedSample: []string{}}
	for _, r := range all {
		if r.HasCoordinates() {
			inv.WithCoordinates++
			if len(inv.LocatedSample) < sampleSize {
				inv.LocatedSample = append(inv.LocatedSample, r.Name+": "+r.Latitude+", "+r.Longitude)
			}
		} else {
			inv.MissingCoordinates++
			if len(inv.MissingSample) < sampleSize {
				inv.MissingSample = append(inv.MissingSample, r.Name+" ("+r.Address+")")
			}
		}
		if r.Phone != nil {
			inv.WithPhone++
		}
		if r.AppointmentRequired {
			inv.AppointmentRequired++
		}
	}
	return inv, nil
}
