package collector

import (
	"time"

	"MacroRadar/internal/model"
)

// Fetcher defines the interface for fetching one raw series.
type Fetcher interface {
	FetchSeries(symbol string, start, end time.Time) (*model.TimeSeries, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and
// testing. Symbols without injected data get a deterministic linear ramp
// so repeated runs produce identical stores.
type MockFetcher struct {
	Series    map[string]*model.TimeSeries
	BasePrice float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(symbol string, start, end time.Time) (*model.TimeSeries, error) {
	if ts, ok := m.Series[symbol]; ok {
		return ts, nil
	}
	base := m.BasePrice
	if base == 0 {
		base = 100
	}
	days := int(model.Day(end).Sub(model.Day(start)).Hours()/24) + 1
	obs := make([]model.Observation, days)
	for i := 0; i < days; i++ {
		obs[i] = model.Observation{
			Date:  model.Day(start).AddDate(0, 0, i),
			Value: base * (1 + float64(i-days/2)*0.001),
		}
	}
	return &model.TimeSeries{ID: symbol, Frequency: model.Daily, Observations: obs}, nil
}
