// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"vitals/internal/aggregate"
	"vitals/internal/domain"
	"vitals/internal/insight"
	"vitals/internal/normalize"
	"vitals/internal/timeline"
)

// Reasons a category can be missing from a dashboard.
const (
	ReasonUnavailable  = "unavailable"
	ReasonUnauthorized = "unauthorized"
)

// Unavailable names a category whose fetch failed.
type Unavailable struct {
	Category domain.Category `json:"category"`
	Reason   string          `json:"reason"`
	Err      error           `json:"-"`
}

// Dashboard is the derived view of every category over one window.
// Unavailable categories are treated as empty in Buckets and Summaries.
type Dashboard struct {
	Window      domain.Window                         `json:"window"`
	Buckets     map[domain.Category][]timeline.Bucket `json:"buckets"`
	Summaries   aggregate.Summaries                   `json:"summaries"`
	Insights    []insight.Insight                     `json:"insights"`
	Unavailable []Unavailable                         `json:"unavailableCategories"`
	Malformed   map[domain.Category]int               `json:"malformed"`
}

// IsUnavailable reports whether c failed to load.
func (d *Dashboard) IsUnavailable(c domain.Category) bool {
	for _, u := range d.Unavailable {
		if u.Category == c {
			return true
		}
	}
	return false
}

// DashboardConfig tunes a DashboardService. Zero values pick defaults.
type DashboardConfig struct {
	Windows          domain.WindowPolicy
	FetchConcurrency int
	Logger           *slog.Logger
	Now              func() time.Time
}

// DashboardService encapsulates the aggregation and insight use case.
type DashboardService struct {
	store      domain.RecordStore
	engine     *insight.Engine
	windows    domain.WindowPolicy
	normalizer normalize.Normalizer
	fetchLimit int
	log        *slog.Logger
	now        func() time.Time
}

// NewDashboardService creates a DashboardService backed by store, evaluating
// insights with engine.
func NewDashboardService(store domain.RecordStore, engine *insight.Engine, cfg DashboardConfig) *DashboardService {
	if engine == nil {
		engine = insight.Default(insight.DefaultThresholds())
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = len(domain.AllCategories())
	}
	return &DashboardService{
		store:      store,
		engine:     engine,
		windows:    cfg.Windows,
		normalizer: normalize.New(cfg.Windows.Location),
		fetchLimit: cfg.FetchConcurrency,
		log:        cfg.Logger,
		now:        cfg.Now,
	}
}

// Compute validates the window length against the allowed set, then builds
// the dashboard for the trailing days days. An invalid window is rejected
// before anything is fetched.
func (s *DashboardService) Compute(ctx context.Context, userID string, days int) (*Dashboard, error) {
	w, err := s.windows.Window(days, s.now())
	if err != nil {
		return nil, err
	}
	return s.ComputeWindow(ctx, userID, w), nil
}

// TrailingWindow builds a window of any positive length ending now, without
// applying the allowed set.
func (s *DashboardService) TrailingWindow(days int) (domain.Window, error) {
	return domain.NewWindow(days, s.now(), s.windows.Location)
}

// ComputeWindow fetches every category concurrently and aggregates once all
// fetches have returned. A failed category degrades to empty.
func (s *DashboardService) ComputeWindow(ctx context.Context, userID string, w domain.Window) *Dashboard {
	categories := domain.AllCategories()
	fetched := s.fetchAll(ctx, userID, categories, w.Range())

	d := &Dashboard{
		Window:      w,
		Buckets:     make(map[domain.Category][]timeline.Bucket, len(categories)),
		Summaries:   make(aggregate.Summaries, len(categories)),
		Unavailable: []Unavailable{},
		Malformed:   make(map[domain.Category]int, len(categories)),
	}

	for i, c := range categories {
		f := fetched[i]
		if f.err != nil {
			reason := ReasonUnavailable
			if errors.Is(f.err, domain.ErrUnauthorized) {
				reason = ReasonUnauthorized
			}
			s.log.Warn("category unavailable", "user", userID, "category", c, "reason", reason, "err", f.err)
			d.Unavailable = append(d.Unavailable, Unavailable{Category: c, Reason: reason, Err: f.err})
			f.raws = nil
		}

		batch := s.normalizer.Batch(f.raws)
		res := timeline.Build(batch.Records, w)
		if skipped := batch.Malformed + res.MissingTimestamp; skipped > 0 {
			s.log.Debug("skipped malformed records", "user", userID, "category", c, "count", skipped)
			d.Malformed[c] = skipped
		}
		d.Buckets[c] = res.Buckets
		d.Summaries[c] = aggregate.Summarize(c, res.Records)
	}

	d.Insights = s.engine.Evaluate(d.Summaries)
	return d
}

type fetchResult struct {
	raws []domain.RawRecord
	err  error
}

// fetchAll issues one fetch per category. Each goroutine owns its slot, and
// a failure never cancels the others.
func (s *DashboardService) fetchAll(ctx context.Context, userID string, categories []domain.Category, r domain.TimeRange) []fetchResult {
	results := make([]fetchResult, len(categories))
	var g errgroup.Group
	g.SetLimit(s.fetchLimit)
	for i, c := range categories {
		g.Go(func() error {
			rng := r
			raws, err := s.store.FetchCategory(ctx, userID, c, &rng)
			results[i] = fetchResult{raws: raws, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
