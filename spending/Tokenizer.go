package spending

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ParsedTransaction is the outcome of tokenizing one transaction string.
// Parsing is pure: even when the category is explicit in the input, writing
// the pair into the dictionary is the caller's job.
type ParsedTransaction struct {
	Time             time.Time
	Category         string
	Subcategory      string
	Amount           float64
	ExplicitCategory bool
	ExplicitDate     bool
}

// ParseTransaction tokenizes a single raw transaction string. Supported
// forms (amount is always the final token):
//
//	date category subcategory amount
//	date subcategory amount
//	category subcategory amount
//	subcategory amount
//
// The date heuristic is deliberately simple: the first token of a >=3 token
// input counts as a date when its first and last runes are digits. A purely
// numeric subcategory name in that position will be eaten as a date - a
// known limitation of the grammar, kept as-is.
func ParseTransaction(text string, now time.Time) (ParsedTransaction, error) {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if len(parts) == 0 {
		return ParsedTransaction{}, ErrEmptyInput
	}

	amount, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil {
		return ParsedTransaction{}, ErrMalformedAmount
	}

	parsed := ParsedTransaction{
		Time:   now.UTC().Truncate(time.Second),
		Amount: amount,
	}

	rest := parts[:len(parts)-1]
	switch {
	case len(rest) >= 2 && looksLikeDate(rest[0]):
		parsed.ExplicitDate = true
		if t, err := parseDayMonth(rest[0], now); err == nil {
			parsed.Time = t
		}
		// a date that does not actually parse still occupies the date slot;
		// the timestamp just stays "now"
		if len(rest) >= 3 {
			parsed.Category = rest[1]
			parsed.Subcategory = rest[2]
			parsed.ExplicitCategory = true
		} else {
			parsed.Subcategory = rest[1]
		}
	case len(rest) >= 2:
		parsed.Category = rest[0]
		parsed.Subcategory = rest[1]
		parsed.ExplicitCategory = true
	case len(rest) == 1:
		parsed.Subcategory = rest[0]
	default:
		// degenerate single-token input such as "5": the amount token
		// doubles as the subcategory
		parsed.Subcategory = parts[0]
	}

	return parsed, nil
}

// ShortForm reports whether the input was the two-token "subcategory amount"
// form; a unique dictionary match still needs user confirmation then.
func (p ParsedTransaction) ShortForm() bool {
	return !p.ExplicitCategory && !p.ExplicitDate
}

func looksLikeDate(token string) bool {
	runes := []rune(token)
	return unicode.IsDigit(runes[0]) && unicode.IsDigit(runes[len(runes)-1])
}

// parseDayMonth parses a "dd.mm" token as a date in the current year, UTC
// midnight.
func parseDayMonth(token string, now time.Time) (time.Time, error) {
	t, err := time.Parse("2.1.2006", fmt.Sprintf("%s.%d", token, now.Year()))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
