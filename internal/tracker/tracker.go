// Package tracker owns the habit and completion collections and keeps their
// durable copy in step with every mutation.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/brk3/habitlog/internal/logger"
	"github.com/brk3/habitlog/internal/storage"
	"github.com/brk3/habitlog/pkg/habit"
	"github.com/google/uuid"
)

var (
	// ErrPersist wraps a failed durable write. The in-memory mutation is kept.
	ErrPersist = errors.New("persist state")
	// ErrInvalidInput wraps a validation failure. Nothing is mutated.
	ErrInvalidInput = errors.New("invalid input")
)

type Option func(*Store)

// WithClock sets the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the default UUIDv4 generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

type Store struct {
	mu          sync.RWMutex
	backend     storage.Backend
	habits      []habit.Habit
	completions []habit.Completion

	now   func() time.Time
	newID func() string
}

// Open loads prior state from backend. Corrupt state is logged and replaced
// by empty collections; any other load failure is returned.
func Open(backend storage.Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := backend.Load()
	switch {
	case errors.Is(err, storage.ErrCorruptState):
		logger.Warn("Durable state is corrupt, starting with empty collections", "error", err)
		snap = storage.Snapshot{}
	case err != nil:
		return nil, fmt.Errorf("load state: %w", err)
	}

	s.habits = dedupeHabits(snap.Habits)
	s.completions = dedupeCompletions(dropOrphans(s.habits, snap.Completions))
	logger.Info("Loaded habit state", "habits", len(s.habits), "completions", len(s.completions))
	return s, nil
}

// Flush writes the current collections again. Use it to retry after ErrPersist.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

func (s *Store) Close() error {
	return errors.Join(s.Flush(), s.backend.Close())
}

func (s *Store) AddHabit(in habit.HabitInput) (habit.Habit, error) {
	if err := in.Validate(); err != nil {
		return habit.Habit{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := habit.Habit{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Frequency:   in.Frequency,
		Goal:        in.Goal,
		Color:       in.Color,
		CreatedAt:   s.now(),
	}
	if s.habitIndex(h.ID) != -1 {
		panic(fmt.Sprintf("tracker: duplicate habit id %q", h.ID))
	}
	s.habits = append(s.habits, h)
	logger.Info("Added habit", "habit_id", h.ID, "title", h.Title)
	return h, s.persist()
}

// UpdateHabit merges p into the habit with id. An unknown id is a no-op.
func (s *Store) UpdateHabit(id string, p habit.HabitPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i == -1 {
		logger.Debug("Update of unknown habit ignored", "habit_id", id)
		return nil
	}
	updated := p.Apply(s.habits[i])
	if err := updated.Input().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s.habits[i] = updated
	logger.Info("Updated habit", "habit_id", id)
	return s.persist()
}

// DeleteHabit removes the habit and all of its completions. An unknown id is a no-op.
func (s *Store) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.habitIndex(id)
	if i == -1 {
		logger.Debug("Delete of unknown habit ignored", "habit_id", id)
		return nil
	}
	s.habits = slices.Delete(s.habits, i, i+1)
	before := len(s.completions)
	s.completions = slices.DeleteFunc(s.completions, func(c habit.Completion) bool {
		return c.HabitID == id
	})
	logger.Info("Deleted habit", "habit_id", id, "completions_removed", before-len(s.completions))
	return s.persist()
}

func (s *Store) HabitByID(id string) (habit.Habit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.habitIndex(id); i != -1 {
		return s.habits[i], true
	}
	return habit.Habit{}, false
}

// Habits returns a copy of all habits in insertion order.
func (s *Store) Habits() []habit.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.habits)
}

// Completions returns a copy of the whole completion log in insertion order.
func (s *Store) Completions() []habit.Completion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.completions)
}

// Snapshot returns copies of both collections taken under one lock.
func (s *Store) Snapshot() storage.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Snapshot{
		Habits:      slices.Clone(s.habits),
		Completions: slices.Clone(s.completions),
	}
}

// ToggleCompletion flips the record for (habitID, date), creating a completed
// record when none exists. Toggling an unknown habit is a no-op.
func (s *Store) ToggleCompletion(habitID, date string) error {
	if _, err := habit.ParseDate(date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.habitIndex(habitID) == -1 {
		logger.Debug("Toggle for unknown habit ignored", "habit_id", habitID, "date", date)
		return nil
	}

	if i := s.completionIndex(habitID, date); i != -1 {
		s.completions[i].Completed = !s.completions[i].Completed
		logger.Debug("Toggled completion", "habit_id", habitID, "date", date, "completed", s.completions[i].Completed)
	} else {
		s.completions = append(s.completions, habit.Completion{
			ID:        s.newID(),
			HabitID:   habitID,
			Date:      date,
			Completed: true,
		})
		logger.Debug("Created completion", "habit_id", habitID, "date", date)
	}
	return s.persist()
}

// SetCompletionNotes attaches notes to an existing record. A missing record is a no-op.
func (s *Store) SetCompletionNotes(habitID, date, notes string) error {
	if _, err := habit.ParseDate(date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.completionIndex(habitID, date)
	if i == -1 {
		logger.Debug("Notes for unmarked day ignored", "habit_id", habitID, "date", date)
		return nil
	}
	s.completions[i].Notes = notes
	return s.persist()
}

// CompletionsForHabit returns copies of the habit's records in no particular order.
func (s *Store) CompletionsForHabit(habitID string) []habit.Completion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []habit.Completion{}
	for _, c := range s.completions {
		if c.HabitID == habitID {
			out = append(out, c)
		}
	}
	return out
}

// IsCompletedOn treats a missing record the same as one marked not done.
func (s *Store) IsCompletedOn(habitID, date string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.completionIndex(habitID, date); i != -1 {
		return s.completions[i].Completed
	}
	return false
}

// persist must be called with mu held.
func (s *Store) persist() error {
	snap := storage.Snapshot{
		Habits:      slices.Clone(s.habits),
		Completions: slices.Clone(s.completions),
	}
	if err := s.backend.Save(snap); err != nil {
		logger.Error("Failed to persist habit state", "habits", len(snap.Habits), "completions", len(snap.Completions), "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) habitIndex(id string) int {
	return slices.IndexFunc(s.habits, func(h habit.Habit) bool { return h.ID == id })
}

// completionIndex panics if the log holds more than one record for the pair.
func (s *Store) completionIndex(habitID, date string) int {
	found := -1
	for i, c := range s.completions {
		if c.HabitID != habitID || c.Date != date {
			continue
		}
		if found != -1 {
			panic(fmt.Sprintf("tracker: duplicate completion for habit %q on %s", habitID, date))
		}
		found = i
	}
	return found
}

// dedupeHabits keeps the first valid record of each id. Records that fail
// validation are dropped.
func dedupeHabits(in []habit.Habit) []habit.Habit {
	seen := make(map[string]struct{}, len(in))
	out := make([]habit.Habit, 0, len(in))
	for _, h := range in {
		if _, ok := seen[h.ID]; ok {
			logger.Warn("Dropping duplicate habit from durable state", "habit_id", h.ID, "title", h.Title)
			continue
		}
		if err := h.Input().Validate(); err != nil {
			logger.Warn("Dropping invalid habit from durable state", "habit_id", h.ID, "error", err)
			continue
		}
		seen[h.ID] = struct{}{}
		out = append(out, h)
	}
	return out
}

// dropOrphans removes completions whose habit is not in habits.
func dropOrphans(habits []habit.Habit, in []habit.Completion) []habit.Completion {
	ids := make(map[string]struct{}, len(habits))
	for _, h := range habits {
		ids[h.ID] = struct{}{}
	}
	out := make([]habit.Completion, 0, len(in))
	for _, c := range in {
		if _, ok := ids[c.HabitID]; !ok {
			logger.Warn("Dropping completion of unknown habit from durable state", "habit_id", c.HabitID, "date", c.Date)
			continue
		}
		out = append(out, c)
	}
	return out
}

// dedupeCompletions keeps the first record of each (habit, date) pair.
func dedupeCompletions(in []habit.Completion) []habit.Completion {
	type key struct{ habitID, date string }
	seen := make(map[key]struct{}, len(in))
	out := make([]habit.Completion, 0, len(in))
	for _, c := range in {
		k := key{c.HabitID, c.Date}
		if _, ok := seen[k]; ok {
			logger.Warn("Dropping duplicate completion from durable state", "habit_id", c.HabitID, "date", c.Date, "completion_id", c.ID)
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}
