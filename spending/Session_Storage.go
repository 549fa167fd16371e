package spending

import "sync"

type ramSessionStorage struct {
	mtx      sync.Mutex
	sessions map[OwnerId]*SessionState
}

func NewRamSessionStorage() SessionStorage {
	return &ramSessionStorage{sessions: make(map[OwnerId]*SessionState, 0)}
}

func (s *ramSessionStorage) Get(owner OwnerId) (*SessionState, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	session, found := s.sessions[owner]
	if !found {
		return nil, nil
	}
	return session, nil
}

func (s *ramSessionStorage) Put(owner OwnerId, session *SessionState) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.sessions[owner] = session
	return nil
}

func (s *ramSessionStorage) Delete(owner OwnerId) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.sessions, owner)
	return nil
}
