package bolt

import (
	"encoding/json"
	"fmt"

	"github.com/brk3/habitlog/internal/storage"
	"github.com/brk3/habitlog/pkg/habit"
	"go.etcd.io/bbolt"
)

const (
	stateBucket    = "state"
	settingsBucket = "settings"

	habitsKey      = "habits"
	completionsKey = "completions"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{stateBucket, settingsBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns an empty snapshot when nothing has been saved yet.
func (s *Store) Load() (storage.Snapshot, error) {
	var snap storage.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))
		if v := bucket.Get([]byte(habitsKey)); v != nil {
			if err := json.Unmarshal(v, &snap.Habits); err != nil {
				return fmt.Errorf("%w: %s: %v", storage.ErrCorruptState, habitsKey, err)
			}
		}
		if v := bucket.Get([]byte(completionsKey)); v != nil {
			if err := json.Unmarshal(v, &snap.Completions); err != nil {
				return fmt.Errorf("%w: %s: %v", storage.ErrCorruptState, completionsKey, err)
			}
		}
		return nil
	})
	if err != nil {
		return storage.Snapshot{}, err
	}
	if snap.Habits == nil {
		snap.Habits = []habit.Habit{}
	}
	if snap.Completions == nil {
		snap.Completions = []habit.Completion{}
	}
	return snap, nil
}

// Save writes both collections in a single transaction.
func (s *Store) Save(snap storage.Snapshot) error {
	habits, err := json.Marshal(nonNil(snap.Habits))
	if err != nil {
		return fmt.Errorf("encode habits: %w", err)
	}
	completions, err := json.Marshal(nonNil(snap.Completions))
	if err != nil {
		return fmt.Errorf("encode completions: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))
		if err := bucket.Put([]byte(habitsKey), habits); err != nil {
			return err
		}
		return bucket.Put([]byte(completionsKey), completions)
	})
}

func (s *Store) GetSetting(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(settingsBucket)).Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	return value, found, err
}

func (s *Store) PutSetting(key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(settingsBucket)).Put([]byte(key), []byte(value))
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

var _ storage.Backend = (*Store)(nil)
