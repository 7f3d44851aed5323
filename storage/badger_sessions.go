package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const sessionKeyPrefix = "session:"

// BadgerSessions keeps sessions in an embedded badger database. Expiry is
// handled by badger entry TTLs, so no sweep is needed.
type BadgerSessions struct {
	db  *badger.DB
	ttl time.Duration
}

func OpenBadgerSessions(path string, ttl time.Duration) (*BadgerSessions, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("badger opening failed: %w", err)
	}
	return &BadgerSessions{db: db, ttl: ttl}, nil
}

func sessionKey(token string) []byte {
	return []byte(sessionKeyPrefix + token)
}

func (b *BadgerSessions) Get(_ context.Context, token string) (string, bool, error) {
	var username string
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(token))
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		username = string(value)
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) || errors.Is(err, badger.ErrEmptyKey) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get session: %w", err)
	}
	return username, true, nil
}

func (b *BadgerSessions) Set(_ context.Context, token, username string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if username == "" {
		return ErrEmptyUsername
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(sessionKey(token), []byte(username)).WithTTL(b.ttl))
	})
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (b *BadgerSessions) Clear(_ context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(token))
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (b *BadgerSessions) Close() error {
	return b.db.Close()
}
