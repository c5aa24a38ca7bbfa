package series

import (
	"sort"

	"MacroRadar/internal/model"
)

// Store holds the raw series handed over by the data fetch, keyed by id.
// Ingestion normalizes each series once; after that the store is
// read-only and safe to share.
type Store struct {
	byID  map[string]*model.TimeSeries
	order []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{byID: make(map[string]*model.TimeSeries)}
}

// Add ingests a series: timestamps are collapsed to timezone-naive
// calendar days, observations sorted chronologically, and duplicate days
// resolved in favour of the later value. Re-adding an id replaces the
// previous series.
func (s *Store) Add(ts *model.TimeSeries) {
	obs := make([]model.Observation, len(ts.Observations))
	for i, o := range ts.Observations {
		obs[i] = model.Observation{Date: model.Day(o.Date), Value: o.Value}
	}
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })

	deduped := obs[:0]
	for _, o := range obs {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(o.Date) {
			deduped[n-1] = o // later observation wins
			continue
		}
		deduped = append(deduped, o)
	}

	if _, exists := s.byID[ts.ID]; !exists {
		s.order = append(s.order, ts.ID)
	}
	s.byID[ts.ID] = &model.TimeSeries{ID: ts.ID, Frequency: ts.Frequency, Observations: deduped}
}

// Get returns the series for id.
func (s *Store) Get(id string) (*model.TimeSeries, bool) {
	ts, ok := s.byID[id]
	return ts, ok
}

// IDs returns the ids in ingestion order.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Len returns the number of ingested series.
func (s *Store) Len() int { return len(s.byID) }
