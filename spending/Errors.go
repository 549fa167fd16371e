package spending

import "errors"

var (
	// ErrMalformedAmount means the last token of a transaction string did
	// not parse as a number. The input (or the current batch unit) is
	// discarded.
	ErrMalformedAmount = errors.New("last token is not a numeric amount")

	// ErrEmptyInput means there was nothing to parse after trimming.
	ErrEmptyInput = errors.New("empty transaction input")

	// ErrMissingTransactionContext means a category choice arrived but no
	// matching pending transaction exists in session state (expired session
	// or an out-of-order button press).
	ErrMissingTransactionContext = errors.New("no pending transaction for this choice")
)
