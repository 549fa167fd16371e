package spending

import (
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Ledger assembles final transaction records and appends them to storage.
// Id assignment is read-max-then-write, so all commits for one owner are
// serialized through a per-owner lock; two concurrent commits can never see
// the same "next id".
type Ledger struct {
	storage Storage

	mtx    sync.Mutex
	owners map[OwnerId]*sync.Mutex
}

func NewLedger(storage Storage) *Ledger {
	return &Ledger{
		storage: storage,
		owners:  make(map[OwnerId]*sync.Mutex, 0)}
}

func (l *Ledger) ownerLock(owner OwnerId) *sync.Mutex {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	lock, found := l.owners[owner]
	if !found {
		lock = &sync.Mutex{}
		l.owners[owner] = lock
	}
	return lock
}

// Commit persists one resolved transaction and returns it with its assigned
// id. Legacy records without ids are backfilled first, in original row
// order, as a one-time migration.
func (l *Ledger) Commit(owner OwnerId, amount float64, currency, category, subcategory string, ts time.Time) (Transaction, error) {
	lock := l.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	records, err := l.storage.ReadRecords(owner)
	if err != nil {
		return Transaction{}, errors.Wrapf(err, "cannot read ledger for owner %d", owner)
	}

	if backfillIds(records) {
		log.Printf("Ledger of owner %d had records without ids, backfilling %d records", owner, len(records))
		if err := l.storage.ReplaceRecords(owner, records); err != nil {
			return Transaction{}, errors.Wrapf(err, "cannot backfill ledger ids for owner %d", owner)
		}
	}

	nextId := 1
	for _, r := range records {
		if r.ID >= nextId {
			nextId = r.ID + 1
		}
	}

	t := Transaction{
		ID:          nextId,
		Time:        ts.UTC().Truncate(time.Second),
		Category:    category,
		Subcategory: subcategory,
		Amount:      amount,
		Currency:    currency,
		Owner:       owner,
	}
	if err := l.storage.AppendRecord(owner, t); err != nil {
		return Transaction{}, errors.Wrapf(err, "cannot append record for owner %d", owner)
	}

	log.Printf("Committed transaction %d for owner %d: %s/%s %v %s", t.ID, owner, category, subcategory, amount, currency)
	return t, nil
}

// RelabelOther rewrites earlier records of a subcategory that were filed
// under "other" before the user taught the dictionary a real category.
func (l *Ledger) RelabelOther(owner OwnerId, subcategory, category string) error {
	if category == "other" {
		return nil
	}
	lock := l.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	records, err := l.storage.ReadRecords(owner)
	if err != nil {
		return errors.Wrapf(err, "cannot read ledger for owner %d", owner)
	}
	changed := 0
	for i := range records {
		if records[i].Category == "other" && records[i].Subcategory == subcategory {
			records[i].Category = category
			changed++
		}
	}
	if changed == 0 {
		return nil
	}
	log.Printf("Relabeling %d 'other' records of %s as %s for owner %d", changed, subcategory, category, owner)
	if err := l.storage.ReplaceRecords(owner, records); err != nil {
		return errors.Wrapf(err, "cannot relabel records for owner %d", owner)
	}
	return nil
}

// backfillIds assigns sequential ids to records missing one, continuing
// after the highest id already present. Reports whether anything changed.
func backfillIds(records []Transaction) bool {
	maxId := 0
	missing := false
	for _, r := range records {
		if r.ID == 0 {
			missing = true
		} else if r.ID > maxId {
			maxId = r.ID
		}
	}
	if !missing {
		return false
	}
	next := maxId + 1
	for i := range records {
		if records[i].ID == 0 {
			records[i].ID = next
			next++
		}
	}
	return true
}
