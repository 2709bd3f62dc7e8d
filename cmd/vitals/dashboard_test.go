package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"vitals/internal/adapter/memory"
	"vitals/internal/app"
	"vitals/internal/domain"
	"vitals/internal/insight"
)

func TestRenderDashboard(t *testing.T) {
	color.NoColor = true

	now := time.Date(2026, 2, 8, 18, 0, 0, 0, time.UTC)
	store := memory.New()
	store.FailCategory(domain.CategoryVitals, domain.ErrCategoryUnavailable)
	ctx := context.Background()
	_, _ = store.InsertRecord(ctx, "alice", domain.CategoryActivity, now.Add(-time.Hour),
		map[string]any{"caloriesBurned": 320.0, "performedAt": now.Add(-time.Hour).Format(time.RFC3339)})
	_, _ = store.InsertRecord(ctx, "alice", domain.CategoryWater, now.Add(-time.Hour),
		map[string]any{"amountMl": 500.0})

	ds := app.NewDashboardService(store, insight.Default(insight.DefaultThresholds()), app.DashboardConfig{
		Windows: domain.WindowPolicy{Location: time.UTC},
		Now:     func() time.Time { return now },
	})
	d, err := ds.Compute(ctx, "alice", 7)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	var buf bytes.Buffer
	renderDashboard(&buf, "alice", d)
	out := buf.String()

	for _, want := range []string{
		"=== Dashboard for alice (7 days) ===",
		"2026-02-02 .. 2026-02-08",
		"320 kcal burned",
		"vitals       unavailable",
		"mood         no records",
		"1 malformed skipped",
		"Great job maintaining an active lifestyle!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDashboard_NoInsights(t *testing.T) {
	color.NoColor = true

	ds := app.NewDashboardService(memory.New(), nil, app.DashboardConfig{
		Windows: domain.WindowPolicy{Location: time.UTC},
	})
	d, err := ds.Compute(context.Background(), "bob", 30)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	var buf bytes.Buffer
	renderDashboard(&buf, "bob", d)
	if !strings.Contains(buf.String(), insight.EmptyStateMessage) {
		t.Errorf("expected empty state message, got:\n%s", buf.String())
	}
}
