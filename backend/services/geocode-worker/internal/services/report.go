package services

import (
	"encoding/json"
	"fmt"
	"os"
)

// GeocodeOutcome is one line of the results report.
type GeocodeOutcome struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Address            string   `json:"address"`
	Success            bool     `json:"success"`
	Lat                *float64 `json:"lat,omitempty"`
	Lng                *float64 `json:"lon,omitempty"`
	LocationType       string   `json:"locationType,omitempty"`
	OutsideServiceArea bool     `json:"outsideServiceArea,omitempty"`
	Error              string   `json:"error,omitempty"`
}

type GeocodeReport struct {
	Outcomes  []GeocodeOutcome
	Succeeded int
	Failed    int
}

func (r *GeocodeReport) add(o GeocodeOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Success {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

func (r *GeocodeReport) FailedOutcomes() []GeocodeOutcome {
	out := []GeocodeOutcome{}
	for _, o := range r.Outcomes {
		if !o.Success {
			out = append(out, o)
		}
	}
	return out
}

// SuccessRate is the percentage of processed resources that were geocoded.
func (r *GeocodeReport) SuccessRate() float64 {
	total := r.Succeeded + r.Failed
	if total == 0 {
		return 0
	}
	return float64(r.Succeeded) / float64(total) * 100
}

// WriteReports saves all outcomes to resultsPath and, when anything failed,
// the failures alone to failedPath. Empty paths are skipped.
func (r *GeocodeReport) WriteReports(resultsPath, failedPath string) error {
	if resultsPath != "" {
		if err := writeJSON(resultsPath, r.Outcomes); err != nil {
			return err
		}
	}
	if failedPath != "" && r.Failed > 0 {
		if err := writeJSON(failedPath, r.FailedOutcomes()); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
