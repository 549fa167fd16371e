package spending

import (
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// RateProvider converts amounts between currencies for display purposes.
// Committed records always keep their original currency; conversion never
// touches the ledger.
type RateProvider interface {
	Convert(amount float64, from, to string) (float64, error)
}

const rateRefreshInterval = 12 * time.Hour

// RateTable is a RateProvider over a table of per-unit USD rates. A refresh
// callback, when set, is consulted at most every 12 hours.
type RateTable struct {
	mtx       sync.Mutex
	rates     map[string]float64 // currency code -> USD per one unit
	refreshed time.Time
	refresh   func() map[string]float64
}

func NewRateTable(rates map[string]float64, refresh func() map[string]float64) *RateTable {
	if rates == nil {
		rates = defaultRates()
	}
	return &RateTable{
		rates:     rates,
		refreshed: time.Now(),
		refresh:   refresh}
}

func defaultRates() map[string]float64 {
	return map[string]float64{
		"USD": 1.0,
		"EUR": 1.08,
		"GBP": 1.27,
		"RUB": 0.011,
	}
}

func (r *RateTable) Convert(amount float64, from, to string) (float64, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.maybeRefresh()

	if from == to {
		return amount, nil
	}
	fromRate, found := r.rates[from]
	if !found {
		return 0, errors.Errorf("unknown currency %q", from)
	}
	toRate, found := r.rates[to]
	if !found {
		return 0, errors.Errorf("unknown currency %q", to)
	}
	return amount * fromRate / toRate, nil
}

func (r *RateTable) maybeRefresh() {
	if r.refresh == nil || time.Since(r.refreshed) < rateRefreshInterval {
		return
	}
	log.Printf("Refreshing currency rate table (last refresh: %s)", r.refreshed)
	if rates := r.refresh(); rates != nil {
		r.rates = rates
	}
	r.refreshed = time.Now()
}
