package spending

import "testing"
import "time"

func TestConvertSameCurrency(t *testing.T) {
	r := NewRateTable(nil, nil)
	v, err := r.Convert(5, "USD", "USD")
	if err != nil || v != 5 {
		t.Errorf("converted: %v, error: %v", v, err)
	}
}

func TestConvertViaUsd(t *testing.T) {
	r := NewRateTable(map[string]float64{"USD": 1, "EUR": 2}, nil)
	v, err := r.Convert(3, "EUR", "USD")
	if err != nil || v != 6 {
		t.Errorf("converted: %v, error: %v", v, err)
	}
	v, err = r.Convert(6, "USD", "EUR")
	if err != nil || v != 3 {
		t.Errorf("converted: %v, error: %v", v, err)
	}
}

func TestConvertUnknownCurrency(t *testing.T) {
	r := NewRateTable(nil, nil)
	if _, err := r.Convert(1, "XXX", "USD"); err == nil {
		t.Errorf("unknown currency accepted")
	}
}

func TestRefreshNotCalledTooOften(t *testing.T) {
	calls := 0
	r := NewRateTable(nil, func() map[string]float64 {
		calls++
		return map[string]float64{"USD": 1}
	})

	r.Convert(1, "USD", "USD")
	r.Convert(1, "USD", "USD")
	if calls != 0 {
		t.Errorf("refresh calls: %d", calls)
	}

	// pretend the last refresh was long ago
	r.refreshed = time.Now().Add(-rateRefreshInterval - time.Minute)
	r.Convert(1, "USD", "USD")
	r.Convert(1, "USD", "USD")
	if calls != 1 {
		t.Errorf("refresh calls: %d", calls)
	}
}
