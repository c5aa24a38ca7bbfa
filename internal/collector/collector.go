package collector

import (
	"fmt"
	"log"
	"time"

	"MacroRadar/internal/series"
)

// Collector orchestrates fetching the configured market and macro series
// into one store. A symbol that cannot be fetched degrades the output
// (fewer entities) and never fails the whole pull.
type Collector struct {
	Markets    Fetcher
	Macro      Fetcher
	Symbols    []string
	MacroCodes []string
}

// NewCollector creates a new Collector.
func NewCollector(markets, macro Fetcher, symbols, macroCodes []string) *Collector {
	return &Collector{Markets: markets, Macro: macro, Symbols: symbols, MacroCodes: macroCodes}
}

// Collect pulls every configured series for [start, end]. It returns an
// error only when nothing at all could be fetched.
func (c *Collector) Collect(start, end time.Time) (*series.Store, error) {
	store := series.NewStore()

	for _, sym := range c.Symbols {
		ts, err := c.Markets.FetchSeries(sym, start, end)
		if err != nil {
			log.Printf("[WARN] fetch %s from %s failed, entity degraded: %v", sym, c.Markets.Name(), err)
			continue
		}
		store.Add(ts)
	}
	for _, code := range c.MacroCodes {
		ts, err := c.Macro.FetchSeries(code, start, end)
		if err != nil {
			log.Printf("[WARN] fetch %s from %s failed, entity degraded: %v", code, c.Macro.Name(), err)
			continue
		}
		store.Add(ts)
	}

	if store.Len() == 0 {
		return nil, fmt.Errorf("collect: no series could be fetched")
	}
	log.Printf("[INFO] collected %d of %d series", store.Len(), len(c.Symbols)+len(c.MacroCodes))
	return store, nil
}
