package spending

import "sync"

type ramStorage struct {
	mtx sync.Mutex

	dictionaries map[OwnerId]map[string]map[string][]string // owner -> language -> category -> subcategories
	records      map[OwnerId][]Transaction
	settings     map[OwnerId]UserSettings
}

func NewRamStorage() Storage {
	storage := &ramStorage{
		dictionaries: make(map[OwnerId]map[string]map[string][]string, 0),
		records:      make(map[OwnerId][]Transaction, 0),
		settings:     make(map[OwnerId]UserSettings, 0)}
	return storage
}

func (s *ramStorage) ReadDictionary(owner OwnerId, language string) (map[string][]string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	languages, found := s.dictionaries[owner]
	if !found {
		return copyDict(DefaultDictionary(language)), nil
	}
	dict, found := languages[language]
	if !found {
		return copyDict(DefaultDictionary(language)), nil
	}
	return copyDict(dict), nil
}

func (s *ramStorage) WriteDictionary(owner OwnerId, language string, dict map[string][]string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	_, found := s.dictionaries[owner]
	if !found {
		s.dictionaries[owner] = make(map[string]map[string][]string, 1)
	}
	s.dictionaries[owner][language] = copyDict(dict)
	return nil
}

func (s *ramStorage) AppendRecord(owner OwnerId, t Transaction) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	_, found := s.records[owner]
	if !found {
		s.records[owner] = make([]Transaction, 0, 1)
	}
	s.records[owner] = append(s.records[owner], t)
	return nil
}

func (s *ramStorage) ReadRecords(owner OwnerId) ([]Transaction, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	records := make([]Transaction, len(s.records[owner]))
	copy(records, s.records[owner])
	return records, nil // OK if there are no records yet
}

func (s *ramStorage) ReplaceRecords(owner OwnerId, records []Transaction) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	replaced := make([]Transaction, len(records))
	copy(replaced, records)
	s.records[owner] = replaced
	return nil
}

func (s *ramStorage) ReadSettings(owner OwnerId) (*UserSettings, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	settings, found := s.settings[owner]
	if !found {
		return nil, nil
	}
	return &settings, nil
}

func (s *ramStorage) WriteSettings(owner OwnerId, settings UserSettings) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.settings[owner] = settings
	return nil
}

func copyDict(dict map[string][]string) map[string][]string {
	result := make(map[string][]string, len(dict))
	for category, subcategories := range dict {
		subs := make([]string, len(subcategories))
		copy(subs, subcategories)
		result[category] = subs
	}
	return result
}
