package spending

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

// redisSessionStorage keeps dialog state in Redis so an in-flight
// disambiguation survives a bot restart. One JSON blob per owner.
type redisSessionStorage struct {
	client *redis.Client
}

func NewRedisSessionStorage(server, password string, db int) SessionStorage {
	client := redis.NewClient(&redis.Options{
		Addr:     server,
		Password: password,
		DB:       db})
	return &redisSessionStorage{client: client}
}

func keySession(owner OwnerId) string {
	return fmt.Sprintf("session:%d", owner)
}

func (s *redisSessionStorage) Get(owner OwnerId) (*SessionState, error) {
	key := keySession(owner)
	value, err := s.client.Get(key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot get session at key %s", key)
	}

	var session SessionState
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		// a corrupt session blob is dropped rather than wedging the dialog
		log.Printf("Session at key %s cannot be decoded (%s), discarding it", key, err)
		s.client.Del(key)
		return nil, nil
	}
	return &session, nil
}

func (s *redisSessionStorage) Put(owner OwnerId, session *SessionState) error {
	value, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "cannot encode session for owner %d", owner)
	}

	key := keySession(owner)
	log.Printf("Setting key: %s value: %s", key, value)
	if err := s.client.Set(key, string(value), 0).Err(); err != nil {
		return errors.Wrapf(err, "cannot set session at key %s", key)
	}
	return nil
}

func (s *redisSessionStorage) Delete(owner OwnerId) error {
	key := keySession(owner)
	if err := s.client.Del(key).Err(); err != nil {
		return errors.Wrapf(err, "cannot delete session at key %s", key)
	}
	return nil
}
