// Package preferences stores user interface preferences next to the habit state.
package preferences

import (
	"fmt"

	"github.com/brk3/habitlog/internal/logger"
	"github.com/brk3/habitlog/internal/storage"
)

const themeKey = "theme"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case Light, Dark:
		return t, nil
	}
	return "", fmt.Errorf("unknown theme %q: must be %q or %q", s, Light, Dark)
}

// Settings is the subset of storage.Backend used for preferences.
type Settings interface {
	GetSetting(key string) (string, bool, error)
	PutSetting(key, value string) error
}

// CurrentTheme returns the saved theme, or Light when none is saved or the
// saved value is unrecognised.
func CurrentTheme(s Settings) (Theme, error) {
	v, found, err := s.GetSetting(themeKey)
	if err != nil {
		return "", fmt.Errorf("read theme: %w", err)
	}
	if !found {
		return Light, nil
	}
	t, err := ParseTheme(v)
	if err != nil {
		logger.Warn("Ignoring unrecognised saved theme", "theme", v)
		return Light, nil
	}
	return t, nil
}

func SetTheme(s Settings, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := s.PutSetting(themeKey, string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	logger.Debug("Saved theme", "theme", t)
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func ToggleTheme(s Settings) (Theme, error) {
	cur, err := CurrentTheme(s)
	if err != nil {
		return "", err
	}
	next := Dark
	if cur == Dark {
		next = Light
	}
	return next, SetTheme(s, next)
}

var _ Settings = (storage.Backend)(nil)
