package nudge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brk3/habitlog/pkg/habit"
)

func evening() time.Time {
	return time.Date(2024, 1, 5, 21, 30, 0, 0, time.Local)
}

func newMock() *mockClient {
	return &mockClient{
		habits: []habit.Habit{
			{ID: "g", Title: "guitar"},
			{ID: "c", Title: "coding"},
			{ID: "r", Title: "running"},
		},
		done: map[string]bool{
			"g/2024-01-04": true,
			"c/2024-01-04": true,
			"c/2024-01-05": true,
		},
	}
}

func TestStreaksAtRisk(t *testing.T) {
	got, err := StreaksAtRisk(context.Background(), newMock(), evening())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "g" {
		t.Fatalf("got %v, want [guitar]", got)
	}
}

func TestNudge_Sends(t *testing.T) {
	n := &mockNotifier{}
	sent, err := Nudge(context.Background(), newMock(), n, evening(), 4)
	if err != nil {
		t.Fatal(err)
	}
	if !sent || !n.called {
		t.Fatal("expected a nudge to be sent")
	}
	if len(n.habits) != 1 || n.habits[0] != "guitar" {
		t.Fatalf("got %v, want [guitar]", n.habits)
	}
	if n.hoursLeft != 2 {
		t.Fatalf("got %d hours left, want 2", n.hoursLeft)
	}
}

func TestNudge_OutsideWindow(t *testing.T) {
	n := &mockNotifier{}
	morning := time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local)
	sent, err := Nudge(context.Background(), newMock(), n, morning, 4)
	if err != nil {
		t.Fatal(err)
	}
	if sent || n.called {
		t.Fatal("expected no nudge outside the window")
	}
}

func TestNudge_NothingAtRisk(t *testing.T) {
	n := &mockNotifier{}
	q := &mockClient{habits: []habit.Habit{{ID: "g", Title: "guitar"}}}
	sent, err := Nudge(context.Background(), q, n, evening(), 4)
	if err != nil {
		t.Fatal(err)
	}
	if sent || n.called {
		t.Fatal("expected no nudge")
	}
}

func TestNudge_Errors(t *testing.T) {
	q := newMock()
	q.err = errors.New("connection refused")
	if _, err := Nudge(context.Background(), q, &mockNotifier{}, evening(), 4); err == nil {
		t.Fatal("expected querier error")
	}

	n := &mockNotifier{err: errors.New("rate limited")}
	if _, err := Nudge(context.Background(), newMock(), n, evening(), 4); err == nil {
		t.Fatal("expected notifier error")
	}
}
