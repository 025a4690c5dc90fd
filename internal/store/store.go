// Package store keeps the rows of each farm dataset in memory for one session.
package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
)

// maxFetchTime bounds a detached fetch when the backend sets no timeout of its own.
const maxFetchTime = 2 * time.Minute

// Store holds loaded datasets. Each collection is replaced wholesale under the
// lock and never mutated afterwards, so readers only ever see complete data.
type Store struct {
	fetcher repository.Fetcher
	logger  *zap.Logger
	group   singleflight.Group

	mu          sync.RWMutex
	raw         map[models.DatasetKind][]models.RawRecord
	profiles    []models.Profile
	expenses    []models.ExpenseRecord
	productions []models.ProductionRecord
}

// New builds an empty store.
func New(fetcher repository.Fetcher, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		fetcher: fetcher,
		logger:  logger,
		raw:     make(map[models.DatasetKind][]models.RawRecord, len(models.DatasetKinds)),
	}
}

// Load returns the rows of kind, fetching them on first access only.
// A failed fetch is logged and yields no rows; the kind stays unloaded so a
// later call retries.
func (s *Store) Load(ctx context.Context, kind models.DatasetKind) []models.RawRecord {
	if rows, ok := s.cached(kind); ok {
		return rows
	}

	v, _, _ := s.group.Do(string(kind), func() (interface{}, error) {
		if rows, ok := s.cached(kind); ok {
			return rows, nil
		}

		fetchCtx, cancel := detach(ctx)
		defer cancel()

		rows, err := s.fetcher.Fetch(fetchCtx, kind)
		if err != nil {
			s.logger.Warn("dataset load failed, serving empty collection",
				zap.String("dataset", string(kind)), zap.Error(err))
			return []models.RawRecord(nil), nil
		}

		s.replace(kind, rows)
		s.logger.Info("dataset loaded", zap.String("dataset", string(kind)), zap.Int("rows", len(rows)))
		return rows, nil
	})

	rows, _ := v.([]models.RawRecord)
	return rows
}

// Reload fetches kind again. On failure the previous collection is kept and
// the error returned.
func (s *Store) Reload(ctx context.Context, kind models.DatasetKind) error {
	_, err, _ := s.group.Do("reload/"+string(kind), func() (interface{}, error) {
		fetchCtx, cancel := detach(ctx)
		defer cancel()

		rows, err := s.fetcher.Fetch(fetchCtx, kind)
		if err != nil {
			return nil, err
		}
		s.replace(kind, rows)
		s.logger.Info("dataset reloaded", zap.String("dataset", string(kind)), zap.Int("rows", len(rows)))
		return nil, nil
	})
	if err != nil {
		s.logger.Warn("dataset reload failed, keeping previous collection",
			zap.String("dataset", string(kind)), zap.Error(err))
	}
	return err
}

// LoadAnalytics loads the expense and production datasets concurrently.
func (s *Store) LoadAnalytics(ctx context.Context) {
	var g errgroup.Group
	for _, kind := range []models.DatasetKind{models.DatasetExpenses, models.DatasetProduction} {
		g.Go(func() error {
			s.Load(ctx, kind)
			return nil
		})
	}
	_ = g.Wait()
}

// IsLoaded reports whether kind has been loaded successfully.
func (s *Store) IsLoaded(kind models.DatasetKind) bool {
	_, ok := s.cached(kind)
	return ok
}

// Loaded lists the kinds currently held.
func (s *Store) Loaded() []models.DatasetKind {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.DatasetKind
	for _, kind := range models.DatasetKinds {
		if _, ok := s.raw[kind]; ok {
			out = append(out, kind)
		}
	}
	return out
}

// Profiles returns the typed cow profiles; empty until loaded.
func (s *Store) Profiles() []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles
}

// Expenses returns the typed expense records; empty until loaded.
func (s *Store) Expenses() []models.ExpenseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expenses
}

// Productions returns the typed production records; empty until loaded.
func (s *Store) Productions() []models.ProductionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productions
}

// detach keeps the caller's values but not its cancellation: a shared fetch
// serves every waiting caller, so one caller going away must not abort it.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), maxFetchTime)
}

func (s *Store) cached(kind models.DatasetKind) ([]models.RawRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.raw[kind]
	return rows, ok
}

func (s *Store) replace(kind models.DatasetKind, rows []models.RawRecord) {
	if rows == nil {
		rows = []models.RawRecord{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case models.DatasetProfiles:
		s.profiles = mapRows(rows, models.NewProfile)
	case models.DatasetExpenses:
		s.expenses = mapRows(rows, models.NewExpenseRecord)
	case models.DatasetProduction:
		s.productions = mapRows(rows, models.NewProductionRecord)
	default:
		s.logger.Warn("ignoring rows for unknown dataset", zap.String("dataset", string(kind)))
		return
	}
	s.raw[kind] = rows
}

func mapRows[T any](rows []models.RawRecord, mapper func(models.RawRecord) T) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = mapper(r)
	}
	return out
}
