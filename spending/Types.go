package spending

import "time"

type OwnerId int64

// Transaction is one persisted ledger record. Ids are unique and ascending
// within a single owner's ledger; they are assigned at write time.
type Transaction struct {
	ID          int
	Time        time.Time
	Category    string
	Subcategory string
	Amount      float64
	Currency    string
	Owner       OwnerId
}

// PendingTransaction holds a tokenized transaction whose category is not
// settled yet. It lives in session state until the user picks a category or
// cancels. Token is echoed through callback data so that a stale button
// press can be told apart from the current dialog.
type PendingTransaction struct {
	Token       string    `json:"token"`
	Owner       OwnerId   `json:"owner"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Subcategory string    `json:"subcategory"`
	Time        time.Time `json:"time"`
	Category    string    `json:"category,omitempty"`
}

// BatchState tracks a multi-transaction message. Index only grows.
type BatchState struct {
	Units []string `json:"units"`
	Index int      `json:"index"`
}

func (b *BatchState) Done() bool {
	return b.Index >= len(b.Units)
}

type DialogState string

const (
	StateIdle              DialogState = "idle"
	StateChoosingCategory  DialogState = "choosing_category"
	StateConfirmingFound   DialogState = "confirming_found"
	StateTypingNewCategory DialogState = "typing_new_category"
)

// SessionState is the whole per-conversation state: which step of the
// disambiguation dialog we are in, the transaction waiting for a category
// and the batch being worked through. It is an explicit value kept in a
// SessionStorage, never ambient.
type SessionState struct {
	State      DialogState         `json:"state"`
	Pending    *PendingTransaction `json:"pending,omitempty"`
	Batch      *BatchState         `json:"batch,omitempty"`
	Candidates []string            `json:"candidates,omitempty"`
	ShowingAll bool                `json:"showing_all,omitempty"`
	Page       int                 `json:"page,omitempty"`
}

// UserSettings are the per-user preferences the core needs: which language
// slice of the dictionary to use and which currency to stamp on records.
type UserSettings struct {
	Language string `json:"language"`
	Currency string `json:"currency"`
}
