package store

import (
	"sort"

	"github.com/lox/inmetdash/internal/ingest"
	"github.com/lox/inmetdash/internal/models"
)

// ObservationStore is the immutable table of observations built once at
// startup. All methods are safe for concurrent readers.
type ObservationStore struct {
	columns      []string
	observations []models.Observation
	months       []int
	stats        ingest.LoadStats
}

// New takes ownership of the dataset; callers must not modify it afterwards.
func New(ds *ingest.Dataset) *ObservationStore {
	s := &ObservationStore{
		columns:      ds.Columns,
		observations: ds.Observations,
		stats:        ds.Stats,
	}

	seen := make(map[int]bool)
	for _, obs := range s.observations {
		if !seen[obs.Month] {
			seen[obs.Month] = true
			s.months = append(s.months, obs.Month)
		}
	}
	sort.Ints(s.months)
	return s
}

// All returns every observation. The slice must not be modified.
func (s *ObservationStore) All() []models.Observation {
	return s.observations
}

func (s *ObservationStore) Len() int {
	return len(s.observations)
}

// Columns returns the CSV header in file order.
func (s *ObservationStore) Columns() []string {
	return s.columns
}

// Months returns the month numbers present in the data, ascending.
func (s *ObservationStore) Months() []int {
	return s.months
}

func (s *ObservationStore) Stats() ingest.LoadStats {
	return s.stats
}

// Filter returns the rows matching sel. An unrecognized month name yields
// an empty result rather than an error.
func (s *ObservationStore) Filter(sel models.Selection) []models.Observation {
	if sel.IsAll() {
		return s.observations
	}
	var out []models.Observation
	for _, obs := range s.observations {
		if obs.MonthName == string(sel) {
			out = append(out, obs)
		}
	}
	return out
}
