package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/brk3/habitlog/internal/config"
	"github.com/brk3/habitlog/internal/logger"
	"github.com/brk3/habitlog/internal/preferences"
	"github.com/brk3/habitlog/internal/stats"
	"github.com/brk3/habitlog/internal/storage"
	"github.com/brk3/habitlog/pkg/habit"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HabitStore is the part of the tracker the HTTP API drives.
type HabitStore interface {
	AddHabit(in habit.HabitInput) (habit.Habit, error)
	UpdateHabit(id string, p habit.HabitPatch) error
	DeleteHabit(id string) error
	HabitByID(id string) (habit.Habit, bool)
	Habits() []habit.Habit
	ToggleCompletion(habitID, date string) error
	SetCompletionNotes(habitID, date, notes string) error
	CompletionsForHabit(habitID string) []habit.Completion
	IsCompletedOn(habitID, date string) bool
	Snapshot() storage.Snapshot
}

type Server struct {
	cfg       *config.Config
	store     HabitStore
	stats     *stats.Engine
	settings  preferences.Settings
	tokenHash string
}

func New(cfg *config.Config, store HabitStore, settings preferences.Settings) *Server {
	s := &Server{
		cfg:      cfg,
		store:    store,
		stats:    stats.New(store),
		settings: settings,
	}
	if cfg.AuthToken != "" {
		s.tokenHash = tokenDigest(cfg.AuthToken)
		logger.Info("API token auth enabled", "token_hash", shortDigest(s.tokenHash))
	}
	s.refreshGauges()
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/stats", s.getOverallStats)
		r.Get("/stats/habits", s.listHabitStats)
		r.Route("/habits", func(r chi.Router) {
			r.Post("/", s.addHabit)
			r.Get("/", s.listHabits)
			r.Route("/{habit_id}", func(r chi.Router) {
				r.Get("/", s.getHabit)
				r.Patch("/", s.updateHabit)
				r.Delete("/", s.deleteHabit)
				r.Get("/stats", s.getHabitStats)
				r.Get("/completions", s.listCompletions)
				r.Get("/completions/{date}", s.getCompletionStatus)
				r.Post("/completions/{date}/toggle", s.toggleCompletion)
				r.Put("/completions/{date}/notes", s.setCompletionNotes)
			})
		})
		r.Route("/preferences/theme", func(r chi.Router) {
			r.Get("/", s.getTheme)
			r.Put("/", s.setTheme)
			r.Post("/toggle", s.toggleTheme)
		})
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
