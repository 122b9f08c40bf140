package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var sessionBucket = []byte("session")

const (
	sessionKey = "current"
	deviceKey  = "device_id"
)

// Session is what the identity provider handed us, persisted locally so a
// restart doesn't force a fresh sign-in. This file is the terminal
// equivalent of browser session storage.
type Session struct {
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the access token is past (or within a small skew
// of) its expiry.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return now.Add(30 * time.Second).After(s.ExpiresAt)
}

// SessionStore keeps the session record in a small bbolt file owned by the
// auth client.
type SessionStore struct {
	db *bolt.DB
}

func NewSessionStore(path string) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(sessionBucket)
		return createErr
	})
	if err != nil {
		return nil, fmt.Errorf("creating session bucket: %w", err)
	}

	return &SessionStore{db: db}, nil
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}

func (s *SessionStore) Save(session *Session) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		data, err := json.Marshal(session)
		if err != nil {
			return err
		}
		return b.Put([]byte(sessionKey), data)
	})
}

// Load returns the saved session, or nil when none exists.
func (s *SessionStore) Load() (*Session, error) {
	var session *Session
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(sessionBucket).Get([]byte(sessionKey))
		if data == nil {
			return nil
		}
		session = &Session{}
		return json.Unmarshal(data, session)
	})
	return session, err
}

func (s *SessionStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete([]byte(sessionKey))
	})
}

// DeviceID returns a stable identifier for this install, generating and
// persisting one on first use. It survives sign-out.
func (s *SessionStore) DeviceID() (string, error) {
	var id string
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if data := b.Get([]byte(deviceKey)); data != nil {
			id = string(data)
			return nil
		}
		id = uuid.New().String()
		return b.Put([]byte(deviceKey), []byte(id))
	})
	return id, err
}
