package storage

import (
	"errors"

	"github.com/brk3/habitlog/pkg/habit"
)

// ErrCorruptState is returned by Load when durable state cannot be decoded.
var ErrCorruptState = errors.New("corrupt durable state")

// Snapshot is the unit of persistence: both collections, always written together.
type Snapshot struct {
	Habits      []habit.Habit
	Completions []habit.Completion
}

type Backend interface {
	Load() (Snapshot, error)
	Save(s Snapshot) error
	GetSetting(key string) (string, bool, error)
	PutSetting(key, value string) error
	Close() error
}
