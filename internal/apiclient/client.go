package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/brk3/habitlog/internal/preferences"
	"github.com/brk3/habitlog/internal/server"
	"github.com/brk3/habitlog/internal/stats"
	"github.com/brk3/habitlog/pkg/habit"
	"github.com/brk3/habitlog/pkg/versioninfo"
)

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(base, token string) *Client {
	return &Client{
		BaseURL: base,
		Token:   token,
		HTTP:    http.DefaultClient,
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Op      string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %d %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %d %s", e.Op, e.Code, http.StatusText(e.Code))
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e server.ErrorResponse
		_ = json.NewDecoder(res.Body).Decode(&e)
		return &StatusError{Op: op, Code: res.StatusCode, Message: e.Error}
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func habitPath(id string) string {
	return "/habits/" + url.PathEscape(id)
}

func completionPath(id, date string) string {
	return habitPath(id) + "/completions/" + url.PathEscape(date)
}

func (c *Client) Version(ctx context.Context) (*versioninfo.VersionInfo, error) {
	var out versioninfo.VersionInfo
	if err := c.do(ctx, "version", http.MethodGet, "/version", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	var response server.HabitListResponse
	if err := c.do(ctx, "list habits", http.MethodGet, "/habits/", nil, &response); err != nil {
		return nil, err
	}
	return response.Habits, nil
}

func (c *Client) GetHabit(ctx context.Context, id string) (*habit.Habit, error) {
	var out habit.Habit
	if err := c.do(ctx, "get habit "+id, http.MethodGet, habitPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddHabit(ctx context.Context, in habit.HabitInput) (*habit.Habit, error) {
	var out habit.Habit
	if err := c.do(ctx, "add habit", http.MethodPost, "/habits/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateHabit(ctx context.Context, id string, p habit.HabitPatch) error {
	return c.do(ctx, "update habit "+id, http.MethodPatch, habitPath(id), p, nil)
}

func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	return c.do(ctx, "delete habit "+id, http.MethodDelete, habitPath(id), nil, nil)
}

// ListCompletions returns the habit's records sorted by date.
func (c *Client) ListCompletions(ctx context.Context, id string) ([]habit.Completion, error) {
	var out server.CompletionListResponse
	if err := c.do(ctx, "list completions "+id, http.MethodGet, habitPath(id)+"/completions", nil, &out); err != nil {
		return nil, err
	}
	return out.Completions, nil
}

// ToggleCompletion returns the state of the record after the toggle.
func (c *Client) ToggleCompletion(ctx context.Context, id, date string) (bool, error) {
	var out server.CompletionStatusResponse
	if err := c.do(ctx, "toggle "+id, http.MethodPost, completionPath(id, date)+"/toggle", nil, &out); err != nil {
		return false, err
	}
	return out.Completed, nil
}

func (c *Client) IsCompletedOn(ctx context.Context, id, date string) (bool, error) {
	var out server.CompletionStatusResponse
	if err := c.do(ctx, "completion status "+id, http.MethodGet, completionPath(id, date), nil, &out); err != nil {
		return false, err
	}
	return out.Completed, nil
}

func (c *Client) SetCompletionNotes(ctx context.Context, id, date, notes string) error {
	return c.do(ctx, "set notes "+id, http.MethodPut, completionPath(id, date)+"/notes", server.NotesRequest{Notes: notes}, nil)
}

func (c *Client) GetHabitStats(ctx context.Context, id string) (*habit.HabitStats, error) {
	var out server.HabitStatsResponse
	if err := c.do(ctx, "stats "+id, http.MethodGet, habitPath(id)+"/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

// ListHabitStats returns every habit with its statistics in insertion order.
func (c *Client) ListHabitStats(ctx context.Context) ([]stats.Report, error) {
	var out server.HabitStatsListResponse
	if err := c.do(ctx, "list habit stats", http.MethodGet, "/stats/habits", nil, &out); err != nil {
		return nil, err
	}
	return out.Habits, nil
}

func (c *Client) OverallStats(ctx context.Context) (*habit.OverallStats, error) {
	var out habit.OverallStats
	if err := c.do(ctx, "overall stats", http.MethodGet, "/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Theme(ctx context.Context) (preferences.Theme, error) {
	var out server.ThemeResponse
	if err := c.do(ctx, "get theme", http.MethodGet, "/preferences/theme", nil, &out); err != nil {
		return "", err
	}
	return out.Theme, nil
}

func (c *Client) SetTheme(ctx context.Context, t preferences.Theme) (preferences.Theme, error) {
	var out server.ThemeResponse
	if err := c.do(ctx, "set theme", http.MethodPut, "/preferences/theme", server.ThemeResponse{Theme: t}, &out); err != nil {
		return "", err
	}
	return out.Theme, nil
}

func (c *Client) ToggleTheme(ctx context.Context) (preferences.Theme, error) {
	var out server.ThemeResponse
	if err := c.do(ctx, "toggle theme", http.MethodPost, "/preferences/theme/toggle", nil, &out); err != nil {
		return "", err
	}
	return out.Theme, nil
}
