package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"
)

// CSVRow mirrors the spreadsheet export columns.
type CSVRow struct {
	ID                  string
	Name                string
	Type                string
	Address             string
	Phone               string
	Latitude            string
	Longitude           string
	Hours               string
	Distance            string
	AppointmentRequired string
}

var csvColumns = map[string]func(*CSVRow, string){
	"id":                   func(r *CSVRow, v string) { r.ID = v },
	"name":                 func(r *CSVRow, v string) { r.Name = v },
	"type":                 func(r *CSVRow, v string) { r.Type = v },
	"address":              func(r *CSVRow, v string) { r.Address = v },
	"phone":                func(r *CSVRow, v string) { r.Phone = v },
	"latitude":             func(r *CSVRow, v string) { r.Latitude = v },
	"longitude":            func(r *CSVRow, v string) { r.Longitude = v },
	"hours":                func(r *CSVRow, v string) { r.Hours = v },
	"distance":             func(r *CSVRow, v string) { r.Distance = v },
	"appointment_required": func(r *CSVRow, v string) { r.AppointmentRequired = v },
}

// ParseCSV reads a header row followed by data rows. A UTF-8 byte order mark
// is tolerated, unknown columns are ignored and blank lines are skipped.
func ParseCSV(r io.Reader) ([]CSVRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv is empty")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	setters := make([]func(*CSVRow, string), len(header))
	seen := map[string]bool{}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		setters[i] = csvColumns[name]
		seen[name] = true
	}
	for _, required := range []string{"name", "address"} {
		if !seen[required] {
			return nil, fmt.Errorf("csv header missing %q column", required)
		}
	}

	rows := []CSVRow{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if blankRecord(rec) {
			continue
		}
		var row CSVRow
		for i, v := range rec {
			if i < len(setters) && setters[i] != nil {
				setters[i](&row, strings.TrimSpace(v))
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ToResource maps a row onto a resource. Coordinates are left as given.
func (r CSVRow) ToResource() *models.Resource {
	t := models.ResourceTypeFoodPantry
	if parsed, ok := models.ParseResourceType(r.Type); ok {
		t = parsed
	} else if strings.TrimSpace(r.Type) != "" {
		t = models.ResourceType(strings.TrimSpace(r.Type))
	}
	return &models.Resource{
		ID:                  r.ID,
		Name:                r.Name,
		Type:                t,
		Address:             r.Address,
		Latitude:            r.Latitude,
		Longitude:           r.Longitude,
		Hours:               utils.TrimPtr(&r.Hours),
		Distance:            utils.TrimPtr(&r.Distance),
		Phone:               utils.TrimPtr(&r.Phone),
		AppointmentRequired: parseYes(r.AppointmentRequired),
		IsOpen:              true,
	}
}

func parseYes(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true":
		return true
	}
	return false
}

type ImportSummary struct {
	Total    int
	Imported int
	Geocoded int
	Skipped  int
	Updated  int
	Failed   int
}

// ImportService loads spreadsheet rows into the store.
type ImportService struct {
	repo     repositories.ResourceRepository
	geocoder *GeocodeService

	// UpdateContacts refreshes phone and appointment columns on rows whose
	// id already exists instead of skipping them.
	UpdateContacts bool
}

// NewImportService takes an optional geocoder; without one, rows missing
// coordinates fail.
func NewImportService(repo repositories.ResourceRepository, geocoder *GeocodeService) *ImportService {
	return &ImportService{repo: repo, geocoder: geocoder}
}

func (s *ImportService) Import(ctx context.Context, rows []CSVRow) (*ImportSummary, error) {
	sum := &ImportSummary{Total: len(rows)}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		log := utils.Logger.WithField("name", row.Name)
		res := row.ToResource()

		if !res.HasCoordinates() {
			if s.geocoder == nil {
				log.Warn("Missing coordinates and no geocoder configured, skipping")
				sum.Failed++
				continue
			}
			geo, err := s.geocoder.GeocodeAddress(ctx, row.Address)
			if err != nil {
				if ctx.Err() != nil {
					return sum, ctx.Err()
				}
				log.WithError(err).Warn("Could not geocode, skipping")
				sum.Failed++
				continue
			}
			s.geocoder.warnIfOutside(geo, log.Warnf)
			res.Latitude = models.FormatCoordinate(geo.Lat)
			res.Longitude = models.FormatCoordinate(geo.Lng)
			sum.Geocoded++
		}

		_, err := s.repo.CreateResource(ctx, res)
		switch {
		case err == nil:
			sum.Imported++
			log.Info("Imported")
		case errors.Is(err, utils.ErrConflict):
			if !s.UpdateContacts {
				log.Info("Skipped (already exists)")
				sum.Skipped++
				continue
			}
			upd := models.ContactUpdate{Phone: res.Phone, AppointmentRequired: res.AppointmentRequired}
			if _, err := s.repo.UpdateResource(ctx, res.ID, upd); err != nil {
				log.WithError(err).Error("Failed to update contact details")
				sum.Failed++
				continue
			}
			sum.Updated++
			log.Info("Updated contact details")
		default:
			log.WithError(err).Error("Failed to import")
			sum.Failed++
		}
	}
	return sum, nil
}
