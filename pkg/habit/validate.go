package habit

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the input against its struct tags.
func (in HabitInput) Validate() error {
	return validate.Struct(in)
}

// Apply merges the non-nil fields of p into h and returns the result.
func (p HabitPatch) Apply(h Habit) Habit {
	if p.Title != nil {
		h.Title = *p.Title
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	if p.Goal != nil {
		h.Goal = *p.Goal
	}
	if p.Color != nil {
		h.Color = *p.Color
	}
	return h
}

// Input returns the user-editable fields of h.
func (h Habit) Input() HabitInput {
	return HabitInput{
		Title:       h.Title,
		Description: h.Description,
		Frequency:   h.Frequency,
		Goal:        h.Goal,
		Color:       h.Color,
	}
}

// ParseDate parses a YYYY-MM-DD day key as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: must be YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate returns the local calendar day of t as a day key.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}
