package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/brk3/habitlog/internal/config"
	"github.com/brk3/habitlog/internal/preferences"
	"github.com/brk3/habitlog/internal/server"
	"github.com/brk3/habitlog/internal/storage/bolt"
	"github.com/brk3/habitlog/internal/tracker"
	"github.com/brk3/habitlog/pkg/habit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, token string) *Client {
	t.Helper()
	backend, err := bolt.Open(filepath.Join(t.TempDir(), "habits.db"))
	require.NoError(t, err)
	st, err := tracker.Open(backend)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(server.New(&config.Config{AuthToken: token}, st, backend).Router())
	t.Cleanup(srv.Close)

	return New(srv.URL, token)
}

func TestClient_HabitLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, "")

	h, err := c.AddHabit(ctx, habit.HabitInput{Title: "read", Frequency: habit.Daily, Goal: 1})
	require.NoError(t, err)

	habits, err := c.ListHabits(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, h.ID, habits[0].ID)

	title := "read more"
	require.NoError(t, c.UpdateHabit(ctx, h.ID, habit.HabitPatch{Title: &title}))
	got, err := c.GetHabit(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "read more", got.Title)

	done, err := c.ToggleCompletion(ctx, h.ID, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, done)

	done, err = c.IsCompletedOn(ctx, h.ID, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, done)

	require.NoError(t, c.SetCompletionNotes(ctx, h.ID, "2024-01-01", "on the train"))
	completions, err := c.ListCompletions(ctx, h.ID)
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.Equal(t, "on the train", completions[0].Notes)

	st, err := c.GetHabitStats(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalCompletions)
	assert.Equal(t, 1, st.LongestStreak)

	reports, err := c.ListHabitStats(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, h.ID, reports[0].Habit.ID)
	assert.Equal(t, 1, reports[0].Stats.TotalCompletions)

	overall, err := c.OverallStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, overall.TotalHabits)
	assert.Equal(t, 1, overall.TotalCompletions)

	require.NoError(t, c.DeleteHabit(ctx, h.ID))
	_, err = c.GetHabit(ctx, h.ID)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestClient_ValidationError(t *testing.T) {
	c := newTestClient(t, "")
	_, err := c.AddHabit(context.Background(), habit.HabitInput{Title: "x", Frequency: "hourly", Goal: 1})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.NotEmpty(t, se.Message)
}

func TestClient_Theme(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, "")

	theme, err := c.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, preferences.Light, theme)

	theme, err = c.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, preferences.Dark, theme)

	theme, err = c.SetTheme(ctx, preferences.Light)
	require.NoError(t, err)
	assert.Equal(t, preferences.Light, theme)
}

func TestClient_Token(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, "hab_token")

	_, err := c.ListHabits(ctx)
	require.NoError(t, err)

	c.Token = "wrong"
	_, err = c.ListHabits(ctx)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Code)

	_, err = c.Version(ctx)
	require.NoError(t, err)
}
