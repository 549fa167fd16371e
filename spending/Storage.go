package spending

// Storage is the persistence contract of the core: a per-user dictionary
// document, a per-user append-mostly ledger and a small settings blob.
// Implementations must tolerate first use (no data yet for an owner).
type Storage interface {
	ReadDictionary(owner OwnerId, language string) (map[string][]string, error)
	WriteDictionary(owner OwnerId, language string, dict map[string][]string) error

	AppendRecord(owner OwnerId, t Transaction) error
	ReadRecords(owner OwnerId) ([]Transaction, error)
	// ReplaceRecords rewrites the whole ledger; used only by the one-time
	// id backfill migration.
	ReplaceRecords(owner OwnerId, records []Transaction) error

	ReadSettings(owner OwnerId) (*UserSettings, error)
	WriteSettings(owner OwnerId, s UserSettings) error
}

// SessionStorage keeps per-conversation dialog state. Get returns nil when
// the owner has no session.
type SessionStorage interface {
	Get(owner OwnerId) (*SessionState, error)
	Put(owner OwnerId, s *SessionState) error
	Delete(owner OwnerId) error
}
