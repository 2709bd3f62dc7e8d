package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitals/internal/adapter/memory"
	"vitals/internal/domain"
	"vitals/internal/normalize"
	"vitals/internal/seed"
)

var now = time.Date(2026, 2, 8, 18, 0, 0, 0, time.UTC)

func TestGenerate_Deterministic(t *testing.T) {
	a := seed.NewGenerator(42, now).Generate(seed.DefaultDays)
	b := seed.NewGenerator(42, now).Generate(seed.DefaultDays)
	require.Equal(t, a, b)

	c := seed.NewGenerator(7, now).Generate(seed.DefaultDays)
	assert.NotEqual(t, a, c)
}

func TestGenerate_Shape(t *testing.T) {
	entries := seed.NewGenerator(1, now).Generate(seed.DefaultDays)

	counts := map[domain.Category]int{}
	for _, e := range entries {
		counts[e.Category]++
		assert.True(t, e.At.Before(now), "%s entry at %v not before now", e.Category, e.At)
		assert.True(t, e.At.After(now.AddDate(0, 0, -seed.DefaultDays-1)), "%s entry at %v too old", e.Category, e.At)
	}
	assert.Equal(t, seed.DefaultDays, counts[domain.CategoryMood])
	assert.Equal(t, seed.DefaultDays, counts[domain.CategoryVitals])
	assert.Equal(t, seed.DefaultDays, counts[domain.CategorySleep])
	assert.GreaterOrEqual(t, counts[domain.CategoryActivity], seed.DefaultDays)
	assert.GreaterOrEqual(t, counts[domain.CategoryNutrition], 3*seed.DefaultDays)
	assert.GreaterOrEqual(t, counts[domain.CategoryWater], 4*seed.DefaultDays)
}

func TestGenerate_Normalizes(t *testing.T) {
	n := normalize.New(time.UTC)
	for _, e := range seed.NewGenerator(3, now).Generate(seed.DefaultDays) {
		rec, err := n.Normalize(domain.RawRecord{Category: e.Category, Data: e.Data})
		require.NoError(t, err, "category %s data %v", e.Category, e.Data)
		assert.True(t, rec.At.Equal(e.At.Truncate(time.Second)))
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	entries := seed.NewGenerator(5, now).Generate(2)

	n, err := seed.Load(ctx, store, "alice", entries)
	require.NoError(t, err)
	assert.Equal(t, len(entries), n)

	moods, err := store.ListRecentRecords(ctx, "alice", domain.CategoryMood, 10)
	require.NoError(t, err)
	assert.Len(t, moods, 2)
}
