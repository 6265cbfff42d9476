package data

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ikdashboard/internal/models"
)

type stubLoader struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (s *stubLoader) Load(_ context.Context) (*models.Dataset, error) {
	s.calls.Add(1)
	if s.fail.Load() {
		return nil, &LoadError{Source: "stub", Err: errors.New("unreachable")}
	}
	return models.NewDataset([]models.Observation{{Year: 2023, Quarter: models.Q1}}, nil, nil, time.Now())
}

func TestStoreSnapshotBeforeLoad(t *testing.T) {
	store := NewStore(&stubLoader{}, 0)

	_, err := store.Snapshot()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStoreReload(t *testing.T) {
	loader := &stubLoader{}
	store := NewStore(loader, time.Second)

	require.NoError(t, store.Reload(context.Background()))
	first, err := store.Snapshot()
	require.NoError(t, err)
	require.NotNil(t, first)

	loader.fail.Store(true)
	assert.Error(t, store.Reload(context.Background()))

	kept, err := store.Snapshot()
	require.NoError(t, err, "a failed reload keeps the previous snapshot")
	assert.Same(t, first, kept)
	assert.Error(t, store.LastError())
}

func TestStoreInitialFailure(t *testing.T) {
	loader := &stubLoader{}
	loader.fail.Store(true)
	store := NewStore(loader, 0)

	require.Error(t, store.Reload(context.Background()))

	_, err := store.Snapshot()
	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestStoreSchedule(t *testing.T) {
	loader := &stubLoader{}
	store := NewStore(loader, 0)

	require.NoError(t, store.Schedule(""))
	assert.Error(t, store.Schedule("not a schedule"))

	require.NoError(t, store.Schedule("@every 1s"))
	defer store.Stop()
	assert.Error(t, store.Schedule("@every 1s"))

	assert.Eventually(t, func() bool { return loader.calls.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
}

func TestStoreScheduleAndStopConcurrently(t *testing.T) {
	store := NewStore(&stubLoader{}, 0)

	var wg sync.WaitGroup
	var started atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if store.Schedule("@every 1h") == nil {
				started.Add(1)
			}
		}()
		go func() {
			defer wg.Done()
			store.Stop()
		}()
	}
	wg.Wait()
	store.Stop()

	assert.GreaterOrEqual(t, started.Load(), int32(1))
	require.NoError(t, store.Schedule("@every 1h"))
	store.Stop()
}
