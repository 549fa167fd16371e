package spending

import "testing"
import "time"

var testNow = time.Date(2024, time.July, 10, 15, 30, 45, 0, time.UTC)

func TestParseShortForm(t *testing.T) {
	p, err := ParseTransaction("taxi 4", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if p.Subcategory != "taxi" || p.Amount != 4 {
		t.Errorf("parsed: %+v", p)
	}
	if p.ExplicitCategory || p.ExplicitDate {
		t.Errorf("short form flagged as explicit: %+v", p)
	}
	if !p.ShortForm() {
		t.Errorf("short form not detected")
	}
	if !p.Time.Equal(testNow) {
		t.Errorf("time: %s; expected now", p.Time)
	}
}

func TestParseExplicitCategory(t *testing.T) {
	p, err := ParseTransaction("transport taxi 4.5", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if p.Category != "transport" || p.Subcategory != "taxi" || p.Amount != 4.5 {
		t.Errorf("parsed: %+v", p)
	}
	if !p.ExplicitCategory || p.ExplicitDate || p.ShortForm() {
		t.Errorf("flags: %+v", p)
	}
}

func TestParseDatedShortForm(t *testing.T) {
	p, err := ParseTransaction("05.03 taxi 12", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !p.Time.Equal(expected) {
		t.Errorf("time: %s; expected: %s", p.Time, expected)
	}
	if p.Subcategory != "taxi" || p.ExplicitCategory {
		t.Errorf("parsed: %+v", p)
	}
	if !p.ExplicitDate || p.ShortForm() {
		t.Errorf("flags: %+v", p)
	}
}

func TestParseDatedExplicitForm(t *testing.T) {
	p, err := ParseTransaction("05.03 transport taxi 12", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if p.Category != "transport" || p.Subcategory != "taxi" || p.Amount != 12 {
		t.Errorf("parsed: %+v", p)
	}
	if !p.ExplicitDate || !p.ExplicitCategory {
		t.Errorf("flags: %+v", p)
	}
	expected := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !p.Time.Equal(expected) {
		t.Errorf("time: %s; expected: %s", p.Time, expected)
	}
}

func TestParseUnparseableDateKeepsNow(t *testing.T) {
	// first+last runes are digits, so the token occupies the date slot even
	// though it is not a real date
	p, err := ParseTransaction("99.99 taxi 5", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !p.ExplicitDate {
		t.Errorf("date slot not consumed: %+v", p)
	}
	if !p.Time.Equal(testNow) {
		t.Errorf("time: %s; expected now", p.Time)
	}
	if p.Subcategory != "taxi" {
		t.Errorf("subcategory: %s", p.Subcategory)
	}
}

func TestParseLowercasesInput(t *testing.T) {
	p, err := ParseTransaction("  Transport TAXI 7 ", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if p.Category != "transport" || p.Subcategory != "taxi" {
		t.Errorf("parsed: %+v", p)
	}
}

func TestParseMalformedAmount(t *testing.T) {
	_, err := ParseTransaction("taxi abc", testNow)
	if err != ErrMalformedAmount {
		t.Errorf("error: %v; expected ErrMalformedAmount", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := ParseTransaction("   ", testNow)
	if err != ErrEmptyInput {
		t.Errorf("error: %v; expected ErrEmptyInput", err)
	}
}

func TestParseBareAmount(t *testing.T) {
	// degenerate input: the amount token doubles as the subcategory
	p, err := ParseTransaction("5", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if p.Subcategory != "5" || p.Amount != 5 {
		t.Errorf("parsed: %+v", p)
	}
	if !p.ShortForm() {
		t.Errorf("bare amount is not short form")
	}
}

func TestParseNegativeAmount(t *testing.T) {
	p, err := ParseTransaction("refund taxi -3.5", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if p.Amount != -3.5 {
		t.Errorf("amount: %v", p.Amount)
	}
}
