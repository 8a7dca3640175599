// Platewise - Food Ordering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/platewise

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/platewise/internal/models"
)

// Note: This package depends only on models. Metrics and request IDs are
// injected through Recorder and WithRequestID so the api and database
// packages can depend on recommend without import cycles.

// Recorder receives per-request observations. The metrics package provides
// the production implementation.
type Recorder interface {
	// ObserveRecommendation records one completed query.
	ObserveRecommendation(operation, outcome string, duration time.Duration)

	// ObserveFallback records a read failure that was absorbed by a fallback.
	ObserveFallback(operation string, cause error)
}

type noopRecorder struct{}

func (noopRecorder) ObserveRecommendation(string, string, time.Duration) {}
func (noopRecorder) ObserveFallback(string, error)                      {}

// Outcome labels for the non-personalized operations.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Option configures optional Engine collaborators.
type Option func(*Engine)

// WithClock sets the source of the current time used for time-slot queries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRecorder sets the observation sink.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithRequestID sets the function used to tag log lines with a request ID.
func WithRequestID(fn func(context.Context) string) Option {
	return func(e *Engine) {
		e.requestID = fn
	}
}

// Engine answers the seven recommendation query modes.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	config    *Config
	logger    zerolog.Logger
	catalog   MenuCatalogView
	history   OrderHistoryView
	scorer    *Scorer
	extractor Extractor
	now       func() time.Time
	recorder  Recorder
	requestID func(context.Context) string
}

// NewEngine creates a recommendation engine over the given views.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(catalog MenuCatalogView, history OrderHistoryView, cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if catalog == nil {
		return nil, errors.New("catalog view is required")
	}
	if history == nil {
		return nil, errors.New("order history view is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()

	e := &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: catalog,
		history: history,
		scorer:  NewScorer(cfg.Weights),
		extractor: Extractor{
			DefaultPriceRange: cfg.DefaultPriceRange,
			Location:          cfg.location(),
		},
		now:       time.Now,
		recorder:  noopRecorder{},
		requestID: func(context.Context) string { return "" },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Scorer returns the engine's scorer, for explaining results.
func (e *Engine) Scorer() *Scorer {
	return e.scorer
}

// CurrentSlot returns the time slot of the engine clock.
func (e *Engine) CurrentSlot() TimeSlot {
	return SlotForTime(e.now(), e.config.location())
}

func (e *Engine) requestLogger(ctx context.Context, operation string) zerolog.Logger {
	l := e.logger.With().Str("operation", operation)
	if id := e.requestID(ctx); id != "" {
		l = l.Str("request_id", id)
	}
	return l.Logger()
}

// Personalized ranks available dishes against the customer's order history.
// Dishes the customer already ordered are never returned. Customers without
// history get the popularity list, and any read failure is absorbed into the
// fallback branch, so the result never carries an error to the caller.
func (e *Engine) Personalized(ctx context.Context, userID string, limit int) Result {
	const op = "personalized"
	start := time.Now()

	if limit <= 0 {
		return Result{Items: []models.MenuItem{}, Outcome: OutcomePersonalized}
	}

	orders, available, err := e.loadHistoryAndCatalog(ctx, userID)
	if err != nil {
		return e.fallback(ctx, op, limit, err, start)
	}

	if len(orders) == 0 {
		ranked := append([]models.MenuItem(nil), available...)
		SortByRating(ranked)
		e.recorder.ObserveRecommendation(op, string(OutcomeColdStart), time.Since(start))
		return Result{Items: truncate(ranked, limit), Outcome: OutcomeColdStart}
	}

	resolve, err := e.resolver(ctx, available, orders)
	if err != nil {
		return e.fallback(ctx, op, limit, err, start)
	}
	profile := e.extractor.Extract(orders, resolve)

	ordered := make(map[string]struct{})
	for i := range orders {
		for _, id := range orders[i].ItemIDs() {
			ordered[id] = struct{}{}
		}
	}

	items := e.rank(&profile, available, limit, func(item *models.MenuItem) bool {
		_, seen := ordered[item.ID]
		return seen
	})

	logger := e.requestLogger(ctx, op)
	logger.Debug().
		Str("user_id", userID).
		Int("orders", len(orders)).
		Int("returned", len(items)).
		Msg("personalized recommendations computed")
	e.recorder.ObserveRecommendation(op, string(OutcomePersonalized), time.Since(start))

	return Result{Items: items, Outcome: OutcomePersonalized}
}

// Profile builds the preference profile of a customer. An empty history
// yields the default cold-start profile.
func (e *Engine) Profile(ctx context.Context, userID string) (Profile, error) {
	orders, available, err := e.loadHistoryAndCatalog(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	resolve, err := e.resolver(ctx, available, orders)
	if err != nil {
		return Profile{}, err
	}
	return e.extractor.Extract(orders, resolve), nil
}

// Similar ranks available dishes against a profile synthesized from one
// reference dish. The reference dish is never returned. An unknown itemID
// yields an empty list and no error.
func (e *Engine) Similar(ctx context.Context, itemID string, limit int) ([]models.MenuItem, error) {
	const op = "similar"
	start := time.Now()

	if limit <= 0 {
		return []models.MenuItem{}, nil
	}

	ref, err := e.catalog.ItemByID(ctx, itemID)
	if errors.Is(err, models.ErrNotFound) {
		e.recorder.ObserveRecommendation(op, outcomeSuccess, time.Since(start))
		return []models.MenuItem{}, nil
	}
	if err != nil {
		e.recorder.ObserveRecommendation(op, outcomeError, time.Since(start))
		return nil, fmt.Errorf("failed to load item %s: %w", itemID, err)
	}

	available, err := e.catalog.AvailableItems(ctx)
	if err != nil {
		e.recorder.ObserveRecommendation(op, outcomeError, time.Since(start))
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	profile := SimilarProfile(ref, e.config.Similar)
	items := e.rank(&profile, available, limit, func(item *models.MenuItem) bool {
		return item.ID == itemID
	})

	e.recorder.ObserveRecommendation(op, outcomeSuccess, time.Since(start))
	return items, nil
}

// Popular returns the top-rated available dishes.
func (e *Engine) Popular(ctx context.Context, limit int) ([]models.MenuItem, error) {
	start := time.Now()
	items, err := e.popular(ctx, limit)
	e.observe("popular", start, err)
	return items, err
}

// ByCategory returns the top-rated available dishes of one category.
func (e *Engine) ByCategory(ctx context.Context, category models.Category, limit int) ([]models.MenuItem, error) {
	start := time.Now()
	items, err := e.byCategory(ctx, category, limit)
	e.observe("category", start, err)
	return items, err
}

// ByTimeSlot returns the top-rated available dishes served in slot.
// An empty slot means the current one.
func (e *Engine) ByTimeSlot(ctx context.Context, slot TimeSlot, limit int) ([]models.MenuItem, error) {
	start := time.Now()
	if slot == "" {
		slot = e.CurrentSlot()
	}
	items, err := e.byTimeSlot(ctx, slot, limit)
	e.observe("time_slot", start, err)
	return items, err
}

// Mixed returns personalized, time-based and popular sections sized by
// Config.MixedShares. Sections are independent and never deduplicated.
func (e *Engine) Mixed(ctx context.Context, userID string, limit int) []Section {
	const op = "mixed"
	start := time.Now()

	shares := e.config.MixedShares
	slot := e.CurrentSlot()
	sections := []Section{
		{Label: SectionPersonalized},
		{Label: SectionTimeBased},
		{Label: SectionPopular},
	}

	var g errgroup.Group
	g.Go(func() error {
		res := e.Personalized(ctx, userID, share(limit, shares.Personalized))
		sections[0].Items = res.Items
		sections[0].Degraded = res.Degraded()
		return nil
	})
	g.Go(func() error {
		sections[1] = e.section(ctx, op, SectionTimeBased, func() ([]models.MenuItem, error) {
			return e.byTimeSlot(ctx, slot, share(limit, shares.TimeBased))
		})
		return nil
	})
	g.Go(func() error {
		sections[2] = e.section(ctx, op, SectionPopular, func() ([]models.MenuItem, error) {
			return e.popular(ctx, share(limit, shares.Popular))
		})
		return nil
	})
	_ = g.Wait() // section goroutines never return errors

	e.recorder.ObserveRecommendation(op, sectionsOutcome(sections), time.Since(start))
	return sections
}

// Guest returns popular and time-based sections for unauthenticated callers,
// sized by Config.GuestShares.
func (e *Engine) Guest(ctx context.Context, limit int) []Section {
	const op = "guest"
	start := time.Now()

	shares := e.config.GuestShares
	slot := e.CurrentSlot()
	sections := make([]Section, 2)

	var g errgroup.Group
	g.Go(func() error {
		sections[0] = e.section(ctx, op, SectionPopular, func() ([]models.MenuItem, error) {
			return e.popular(ctx, share(limit, shares.Popular))
		})
		return nil
	})
	g.Go(func() error {
		sections[1] = e.section(ctx, op, SectionTimeBased, func() ([]models.MenuItem, error) {
			return e.byTimeSlot(ctx, slot, share(limit, shares.TimeBased))
		})
		return nil
	})
	_ = g.Wait() // section goroutines never return errors

	e.recorder.ObserveRecommendation(op, sectionsOutcome(sections), time.Since(start))
	return sections
}

// section runs one non-personalized section, turning a failure into an
// empty degraded section.
func (e *Engine) section(ctx context.Context, op, label string, fn func() ([]models.MenuItem, error)) Section {
	items, err := fn()
	if err != nil {
		logger := e.requestLogger(ctx, op)
		logger.Warn().
			Err(err).
			Str("section", label).
			Msg("section degraded")
		e.recorder.ObserveFallback(op+"."+label, err)
		return Section{Label: label, Items: []models.MenuItem{}, Degraded: true}
	}
	return Section{Label: label, Items: items}
}

// fallback is the single degraded path of Personalized: log, record and
// serve the popularity list instead.
func (e *Engine) fallback(ctx context.Context, op string, limit int, cause error, start time.Time) Result {
	logger := e.requestLogger(ctx, op)
	logger.Warn().Err(cause).Msg("serving popularity fallback")
	e.recorder.ObserveFallback(op, cause)

	items, err := e.popular(ctx, limit)
	if err != nil {
		logger.Error().Err(err).Msg("popularity fallback failed")
		cause = errors.Join(cause, fmt.Errorf("fallback: %w", err))
		items = []models.MenuItem{}
	}

	e.recorder.ObserveRecommendation(op, string(OutcomeFallback), time.Since(start))
	return Result{Items: items, Outcome: OutcomeFallback, Cause: cause}
}

// loadHistoryAndCatalog reads the customer's recent orders and the available
// catalog concurrently.
func (e *Engine) loadHistoryAndCatalog(ctx context.Context, userID string) ([]models.Order, []models.MenuItem, error) {
	var orders []models.Order
	var available []models.MenuItem

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := e.history.RecentOrdersForUser(gctx, userID, e.config.HistoryLimit)
		if err != nil {
			return fmt.Errorf("failed to load order history: %w", err)
		}
		orders = o
		return nil
	})
	g.Go(func() error {
		items, err := e.catalog.AvailableItems(gctx)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		available = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return orders, available, nil
}

// resolver maps the history's item IDs to current menu items. Available items
// come from the loaded catalog; the rest are looked up individually so dishes
// that are temporarily unavailable still shape the profile. Deleted dishes
// resolve to nothing. Each ID is looked up at most once.
func (e *Engine) resolver(ctx context.Context, available []models.MenuItem, orders []models.Order) (ItemResolver, error) {
	known := make(map[string]models.MenuItem, len(available))
	for i := range available {
		known[available[i].ID] = available[i]
	}
	missing := make(map[string]struct{})

	for i := range orders {
		for _, line := range orders[i].Lines {
			if _, ok := known[line.MenuItemID]; ok {
				continue
			}
			if _, ok := missing[line.MenuItemID]; ok {
				continue
			}
			item, err := e.catalog.ItemByID(ctx, line.MenuItemID)
			if errors.Is(err, models.ErrNotFound) {
				missing[line.MenuItemID] = struct{}{}
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to resolve item %s: %w", line.MenuItemID, err)
			}
			known[line.MenuItemID] = item
		}
	}

	return func(id string) (models.MenuItem, bool) {
		item, ok := known[id]
		return item, ok
	}, nil
}

type scoredItem struct {
	item  models.MenuItem
	score float64
}

// rank scores every item not excluded, sorts by score descending with catalog
// order breaking ties, and returns the first limit.
func (e *Engine) rank(p *Profile, items []models.MenuItem, limit int, exclude func(*models.MenuItem) bool) []models.MenuItem {
	scored := make([]scoredItem, 0, len(items))
	for i := range items {
		if exclude(&items[i]) {
			continue
		}
		scored = append(scored, scoredItem{item: items[i], score: e.scorer.Score(p, &items[i])})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	n := min(limit, len(scored))
	out := make([]models.MenuItem, n)
	for i := 0; i < n; i++ {
		out[i] = scored[i].item
	}
	return out
}

func (e *Engine) observe(op string, start time.Time, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
	}
	e.recorder.ObserveRecommendation(op, outcome, time.Since(start))
}

// share returns floor(limit * pct / 100), never negative.
func share(limit, pct int) int {
	if limit <= 0 || pct <= 0 {
		return 0
	}
	return limit * pct / 100
}

func sectionsOutcome(sections []Section) string {
	for i := range sections {
		if sections[i].Degraded {
			return string(OutcomeFallback)
		}
	}
	return outcomeSuccess
}
