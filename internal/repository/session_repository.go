package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"learning-log/internal/domain"

	bolt "go.etcd.io/bbolt"
)

var sessionBucket = []byte("sessions")

// BoltSessionStore persists session values in a bbolt file. Writes are
// serialized by bbolt, so concurrent Set calls for the same key resolve to
// the last writer.
type BoltSessionStore struct {
	db *bolt.DB
}

// NewBoltSessionStore opens (or creates) the session database at path.
func NewBoltSessionStore(path string) (*BoltSessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for session db: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session bucket: %w", err)
	}

	return &BoltSessionStore{db: db}, nil
}

func sessionKey(sessionID, key string) []byte {
	return []byte(sessionID + "\x00" + key)
}

func (s *BoltSessionStore) Get(sessionID, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(sessionBucket).Get(sessionKey(sessionID, key))
		if v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read session: %w", err)
	}
	return value, found, nil
}

func (s *BoltSessionStore) Set(sessionID, key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put(sessionKey(sessionID, key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (s *BoltSessionStore) Delete(sessionID, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete(sessionKey(sessionID, key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete session value: %w", err)
	}
	return nil
}

// Close closes the BoltDB database
func (s *BoltSessionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var _ domain.SessionStore = (*BoltSessionStore)(nil)
