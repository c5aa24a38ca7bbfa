package collector

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"MacroRadar/internal/model"
)

// FREDFetcher fetches macro level series from the St. Louis Fed CSV
// endpoint. No API key required.
type FREDFetcher struct {
	Client *http.Client
}

// NewFREDFetcher creates a new FRED fetcher.
func NewFREDFetcher(proxyURL string) *FREDFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FREDFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *FREDFetcher) Name() string { return "fred" }

// monthlyCodes marks series FRED publishes monthly; everything else in
// the default macro set is weekly or daily.
var monthlyCodes = map[string]bool{"M2SL": true}

func (f *FREDFetcher) FetchSeries(code string, start, end time.Time) (*model.TimeSeries, error) {
	u := fmt.Sprintf("https://fred.stlouisfed.org/graph/fredgraph.csv?id=%s&cosd=%s&coed=%s",
		url.QueryEscape(code), start.Format("2006-01-02"), end.Format("2006-01-02"))

	resp, err := f.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fred fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fred fetch %s: status %d", code, resp.StatusCode)
	}

	rows, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("fred parse csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("fred: empty result for %s", code)
	}

	obs := make([]model.Observation, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) < 2 || row[1] == "." {
			continue // "." marks a missing observation
		}
		day, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		obs = append(obs, model.Observation{Date: day, Value: v})
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("fred: no usable observations for %s", code)
	}

	freq := model.Weekly
	if monthlyCodes[code] {
		freq = model.Monthly
	}
	return &model.TimeSeries{ID: code, Frequency: freq, Observations: obs}, nil
}
