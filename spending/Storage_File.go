package spending

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const ledgerTimeLayout = "2006-01-02T15:04:05"

var ledgerHeader = []string{"id", "timestamp", "category", "subcategory", "amount", "currency", "user_id"}

// fileStorage keeps every user's data in its own directory, the layout the
// rest of the tooling around this bot expects:
//
//	<dir>/<owner>/spendings_<owner>.csv
//	<dir>/<owner>/dictionary_<owner>.json
//	<dir>/<owner>/settings_<owner>.json
//
// The dictionary file is a single JSON document keyed by language code. A
// legacy single-language dictionary is replaced with the default template.
type fileStorage struct {
	dir string
}

func NewFileStorage(dir string) Storage {
	return &fileStorage{dir: dir}
}

func (s *fileStorage) userDir(owner OwnerId) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d", owner))
}

func (s *fileStorage) ledgerPath(owner OwnerId) string {
	return filepath.Join(s.userDir(owner), fmt.Sprintf("spendings_%d.csv", owner))
}

func (s *fileStorage) dictionaryPath(owner OwnerId) string {
	return filepath.Join(s.userDir(owner), fmt.Sprintf("dictionary_%d.json", owner))
}

func (s *fileStorage) settingsPath(owner OwnerId) string {
	return filepath.Join(s.userDir(owner), fmt.Sprintf("settings_%d.json", owner))
}

func (s *fileStorage) ReadDictionary(owner OwnerId, language string) (map[string][]string, error) {
	all, err := s.readAllDictionaries(owner)
	if err != nil {
		return nil, err
	}
	dict, found := all[language]
	if !found {
		return make(map[string][]string, 0), nil
	}
	return dict, nil
}

func (s *fileStorage) WriteDictionary(owner OwnerId, language string, dict map[string][]string) error {
	all, err := s.readAllDictionaries(owner)
	if err != nil {
		return err
	}
	all[language] = dict
	return s.writeAllDictionaries(owner, all)
}

// readAllDictionaries loads the whole multilingual dictionary document,
// seeding it from the default template on first use and resetting it when
// the file is in the legacy (non-multilingual) format.
func (s *fileStorage) readAllDictionaries(owner OwnerId) (map[string]map[string][]string, error) {
	path := s.dictionaryPath(owner)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("No dictionary for owner %d yet, seeding the default one", owner)
		all := templateDictionaries()
		if err := s.writeAllDictionaries(owner, all); err != nil {
			return nil, err
		}
		return all, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read dictionary file %s", path)
	}

	var all map[string]map[string][]string
	if err := json.Unmarshal(data, &all); err != nil || !isMultilingual(all) {
		log.Printf("Dictionary file %s is legacy or damaged, resetting it to the default template", path)
		all = templateDictionaries()
		if err := s.writeAllDictionaries(owner, all); err != nil {
			return nil, err
		}
	}
	return all, nil
}

func (s *fileStorage) writeAllDictionaries(owner OwnerId, all map[string]map[string][]string) error {
	if err := os.MkdirAll(s.userDir(owner), 0o755); err != nil {
		return errors.Wrapf(err, "cannot create user dir for owner %d", owner)
	}
	data, err := json.Marshal(all)
	if err != nil {
		return errors.Wrapf(err, "cannot encode dictionary for owner %d", owner)
	}
	path := s.dictionaryPath(owner)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "cannot write dictionary file %s", path)
	}
	return nil
}

func templateDictionaries() map[string]map[string][]string {
	return map[string]map[string][]string{
		"en": DefaultDictionary("en"),
		"ru": DefaultDictionary("ru"),
	}
}

func isMultilingual(all map[string]map[string][]string) bool {
	if all == nil {
		return false
	}
	for _, lang := range []string{"en", "ru"} {
		if _, found := all[lang]; !found {
			return false
		}
	}
	return true
}

func (s *fileStorage) AppendRecord(owner OwnerId, t Transaction) error {
	if err := os.MkdirAll(s.userDir(owner), 0o755); err != nil {
		return errors.Wrapf(err, "cannot create user dir for owner %d", owner)
	}
	path := s.ledgerPath(owner)

	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "cannot open ledger file %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(ledgerHeader); err != nil {
			return errors.Wrapf(err, "cannot write ledger header to %s", path)
		}
	}
	if err := w.Write(recordToRow(t)); err != nil {
		return errors.Wrapf(err, "cannot write record to %s", path)
	}
	w.Flush()
	return errors.Wrapf(w.Error(), "cannot flush ledger file %s", path)
}

func (s *fileStorage) ReadRecords(owner OwnerId) ([]Transaction, error) {
	path := s.ledgerPath(owner)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil // OK, no spendings yet
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open ledger file %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read ledger file %s", path)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := columnIndex(rows[0])
	records := make([]Transaction, 0, len(rows)-1)
	for _, row := range rows[1:] {
		t, err := rowToRecord(row, columns, owner)
		if err != nil {
			log.Printf("Skipping unreadable ledger row in %s: %s", path, err)
			continue
		}
		records = append(records, t)
	}
	return records, nil
}

func (s *fileStorage) ReplaceRecords(owner OwnerId, records []Transaction) error {
	if err := os.MkdirAll(s.userDir(owner), 0o755); err != nil {
		return errors.Wrapf(err, "cannot create user dir for owner %d", owner)
	}
	path := s.ledgerPath(owner)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot rewrite ledger file %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ledgerHeader); err != nil {
		return errors.Wrapf(err, "cannot write ledger header to %s", path)
	}
	for _, t := range records {
		if err := w.Write(recordToRow(t)); err != nil {
			return errors.Wrapf(err, "cannot write record to %s", path)
		}
	}
	w.Flush()
	return errors.Wrapf(w.Error(), "cannot flush ledger file %s", path)
}

func (s *fileStorage) ReadSettings(owner OwnerId) (*UserSettings, error) {
	path := s.settingsPath(owner)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read settings file %s", path)
	}
	var settings UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, errors.Wrapf(err, "cannot decode settings file %s", path)
	}
	return &settings, nil
}

func (s *fileStorage) WriteSettings(owner OwnerId, settings UserSettings) error {
	if err := os.MkdirAll(s.userDir(owner), 0o755); err != nil {
		return errors.Wrapf(err, "cannot create user dir for owner %d", owner)
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return errors.Wrapf(err, "cannot encode settings for owner %d", owner)
	}
	path := s.settingsPath(owner)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "cannot write settings file %s", path)
	}
	return nil
}

func recordToRow(t Transaction) []string {
	return []string{
		strconv.Itoa(t.ID),
		t.Time.UTC().Format(ledgerTimeLayout),
		t.Category,
		t.Subcategory,
		strconv.FormatFloat(t.Amount, 'f', -1, 64),
		t.Currency,
		strconv.FormatInt(int64(t.Owner), 10),
	}
}

// columnIndex maps header names to positions so that ledgers written before
// the id/user_id columns existed still load; missing columns report -1.
func columnIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for _, name := range ledgerHeader {
		columns[name] = -1
	}
	for i, name := range header {
		columns[name] = i
	}
	return columns
}

func rowToRecord(row []string, columns map[string]int, owner OwnerId) (Transaction, error) {
	field := func(name string) string {
		i := columns[name]
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}

	t := Transaction{Owner: owner}
	if v := field("id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return t, errors.Wrapf(err, "bad id %q", v)
		}
		t.ID = id
	}
	ts, err := time.Parse(ledgerTimeLayout, field("timestamp"))
	if err != nil {
		return t, errors.Wrapf(err, "bad timestamp %q", field("timestamp"))
	}
	t.Time = ts.UTC()
	t.Category = field("category")
	t.Subcategory = field("subcategory")
	amount, err := strconv.ParseFloat(field("amount"), 64)
	if err != nil {
		return t, errors.Wrapf(err, "bad amount %q", field("amount"))
	}
	t.Amount = amount
	t.Currency = field("currency")
	return t, nil
}
