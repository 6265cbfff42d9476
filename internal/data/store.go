package data

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"ikdashboard/internal/logger"
	"ikdashboard/internal/metrics"
	"ikdashboard/internal/models"
)

// ErrNotLoaded is returned by Snapshot before the first load attempt.
var ErrNotLoaded = errors.New("dataset not loaded")

// Store serves the current dataset snapshot. Reloads build a complete new
// snapshot and swap it in; readers never observe a partial dataset.
type Store struct {
	loader  DatasetLoader
	current atomic.Pointer[models.Dataset]
	lastErr atomic.Pointer[error]

	cronMu sync.Mutex
	cron   *cron.Cron

	timeout time.Duration
	log     *logger.Logger
}

// NewStore creates an empty store. Call Reload to load the first snapshot.
func NewStore(loader DatasetLoader, timeout time.Duration) *Store {
	return &Store{
		loader:  loader,
		timeout: timeout,
		log:     logger.GetGlobalLogger().WithComponent("store"),
	}
}

// Reload loads a new snapshot. On failure the previous snapshot, if any,
// stays in service and the error is returned.
func (s *Store) Reload(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	dataset, err := s.loader.Load(ctx)
	if err != nil {
		s.lastErr.Store(&err)
		metrics.RecordLoad(err, 0, 0, time.Time{})
		s.log.Error("Dataset load failed", err)
		return err
	}

	s.current.Store(dataset)
	s.lastErr.Store(nil)
	metrics.RecordLoad(nil, len(dataset.Observations), len(dataset.Trade), dataset.LoadedAt)
	return nil
}

// Snapshot returns the dataset currently in service. Without any successful
// load it returns the last load error.
func (s *Store) Snapshot() (*models.Dataset, error) {
	if ds := s.current.Load(); ds != nil {
		return ds, nil
	}
	if errPtr := s.lastErr.Load(); errPtr != nil {
		return nil, *errPtr
	}
	return nil, ErrNotLoaded
}

// LastError returns the error of the most recent load, or nil if it succeeded.
func (s *Store) LastError() error {
	if errPtr := s.lastErr.Load(); errPtr != nil {
		return *errPtr
	}
	return nil
}

// Schedule reloads the dataset on a cron schedule ("0 6 * * *",
// "@every 1h"). An empty schedule disables scheduled reloads.
func (s *Store) Schedule(schedule string) error {
	if schedule == "" {
		return nil
	}

	s.cronMu.Lock()
	defer s.cronMu.Unlock()
	if s.cron != nil {
		return fmt.Errorf("reload schedule already started")
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := s.Reload(context.Background()); err != nil {
			s.log.Warn("Scheduled reload failed, keeping previous dataset", map[string]interface{}{"error": err.Error()})
		}
	}); err != nil {
		return fmt.Errorf("invalid reload schedule %q: %w", schedule, err)
	}
	c.Start()
	s.cron = c

	s.log.Info("Scheduled dataset reloads", map[string]interface{}{"schedule": schedule})
	return nil
}

// Stop halts scheduled reloads and waits for a running reload to finish.
func (s *Store) Stop() {
	s.cronMu.Lock()
	c := s.cron
	s.cron = nil
	s.cronMu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}
