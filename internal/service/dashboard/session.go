// Package dashboard ties a session's record store, filter selection and
// rendered charts together.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/chart"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/service/profile"
	"github.com/mamadbah2/dairy/internal/service/reporting"
	"github.com/mamadbah2/dairy/internal/store"
)

// Bundle is every analytics view for the session's current filter.
type Bundle struct {
	Filter        models.FilterContext       `json:"filter"`
	Options       models.FilterOptions       `json:"options"`
	Summary       models.Summary             `json:"summary"`
	ExpenseTable  models.CategoryTotals      `json:"expense_table"`
	ExpenseChart  models.CategoryTotals      `json:"expense_chart"`
	IncomeExpense models.IncomeExpenseSeries `json:"income_expense"`
	Milk          models.MilkSeries          `json:"milk"`
}

// Session is one dashboard user's state. Datasets are pulled once and kept
// until an explicit reload.
type Session struct {
	id       string
	store    *store.Store
	profiles *profile.Service
	charts   *chart.Registry
	logger   *zap.Logger

	mu            sync.Mutex
	filter        models.FilterContext
	options       models.FilterOptions
	analyticsOpen bool
	lastSeen      time.Time
}

func newSession(id string, st *store.Store, now time.Time, logger *zap.Logger) *Session {
	return &Session{
		id:       id,
		store:    st,
		profiles: profile.NewService(),
		charts:   chart.NewRegistry(),
		logger:   logger,
		options:  models.FilterOptions{Years: []int{}, Categories: []string{}},
		lastSeen: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Start loads the landing view's cow profiles.
func (s *Session) Start(ctx context.Context) {
	s.store.Load(ctx, models.DatasetProfiles)
}

// Cards lists the cow cards, retrying the profile load if it failed before.
func (s *Session) Cards(ctx context.Context) []profile.Card {
	s.store.Load(ctx, models.DatasetProfiles)
	return s.profiles.Cards(s.store.Profiles())
}

// Cow renders one cow's profile.
func (s *Session) Cow(ctx context.Context, key string) (profile.CowProfile, error) {
	s.store.Load(ctx, models.DatasetProfiles)
	return s.profiles.Lookup(s.store.Profiles(), key)
}

// OpenAnalytics loads the expense and production datasets if needed, resets
// the filter to span every available year and renders all charts.
func (s *Session) OpenAnalytics(ctx context.Context) Bundle {
	s.store.LoadAnalytics(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.options = reporting.BuildFilterOptions(s.store.Expenses())
	s.filter = reporting.DefaultFilter(s.options)
	s.analyticsOpen = true

	s.logger.Debug("analytics opened",
		zap.String("session", s.id),
		zap.Ints("years", s.options.Years),
		zap.Int("categories", len(s.options.Categories)))

	return s.refreshLocked()
}

// SetFilter applies a user selection and re-renders every view.
func (s *Session) SetFilter(from, to int, category string) (Bundle, error) {
	f, err := models.NewFilterContext(from, to, category)
	if err != nil {
		return Bundle{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = f
	return s.refreshLocked(), nil
}

// Analytics recomputes the views for the current filter without re-rendering charts.
func (s *Session) Analytics() Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computeLocked()
}

// Filter returns the current selection.
func (s *Session) Filter() models.FilterContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Chart returns the last chart rendered for target.
func (s *Session) Chart(target string) (chart.Chart, bool) {
	return s.charts.Get(target)
}

// ChartTargets lists the rendered chart targets.
func (s *Session) ChartTargets() []string {
	return s.charts.Targets()
}

// Reload fetches the session's datasets again: profiles always, the analytics
// datasets once analytics has been opened. Datasets that fail keep their
// previous rows; the joined errors are returned.
func (s *Session) Reload(ctx context.Context) error {
	var errs []error
	for _, kind := range s.reloadKinds() {
		if err := s.store.Reload(ctx, kind); err != nil {
			errs = append(errs, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.analyticsOpen {
		s.options = reporting.BuildFilterOptions(s.store.Expenses())
		if !s.filter.HasYears {
			s.filter = reporting.DefaultFilter(s.options)
		}
		s.refreshLocked()
	}

	return errors.Join(errs...)
}

// LoadedDatasets lists the datasets held by the session.
func (s *Session) LoadedDatasets() []models.DatasetKind {
	return s.store.Loaded()
}

func (s *Session) reloadKinds() []models.DatasetKind {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.analyticsOpen {
		return models.DatasetKinds
	}
	return []models.DatasetKind{models.DatasetProfiles}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) refreshLocked() Bundle {
	b := s.computeLocked()
	renderCharts(s.charts, b)
	return b
}

func (s *Session) computeLocked() Bundle {
	expenses := s.store.Expenses()
	productions := s.store.Productions()

	return Bundle{
		Filter:        s.filter,
		Options:       s.options,
		Summary:       reporting.ComputeSummary(expenses, productions, s.filter),
		ExpenseTable:  reporting.ComputeCategoryTotals(expenses, s.filter, models.KeyingTable),
		ExpenseChart:  reporting.ComputeCategoryTotals(expenses, s.filter, models.KeyingChart),
		IncomeExpense: reporting.ComputeIncomeExpenseSeries(expenses, productions),
		Milk:          reporting.ComputeMilkSeries(productions),
	}
}
