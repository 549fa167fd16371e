package spending

import "strings"

// SplitBatch breaks one user message into individual transaction strings.
// Newlines win; commas are only used when the whole message is a single
// line. Units are trimmed but empty ones are kept - the coordinator skips
// them while still advancing its index.
func SplitBatch(text string) []string {
	var pieces []string
	if strings.Contains(text, "\n") {
		pieces = strings.Split(text, "\n")
	} else {
		pieces = strings.Split(text, ",")
	}
	units := make([]string, 0, len(pieces))
	for _, p := range pieces {
		units = append(units, strings.TrimSpace(p))
	}
	return units
}

// NewBatch starts batch processing for a message that split into more than
// one unit; for a single unit no batch is needed and nil is returned.
func NewBatch(text string) *BatchState {
	units := SplitBatch(text)
	if len(units) <= 1 {
		return nil
	}
	return &BatchState{Units: units, Index: 0}
}

// Next returns the current unit and advances the index. ok is false once
// the batch is exhausted. The index never rewinds.
func (b *BatchState) Next() (unit string, position int, ok bool) {
	if b.Done() {
		return "", b.Index, false
	}
	unit = b.Units[b.Index]
	position = b.Index + 1
	b.Index++
	return unit, position, true
}
