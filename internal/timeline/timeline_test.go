package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitals/internal/domain"
	"vitals/internal/timeline"
)

var now = time.Date(2026, 2, 8, 18, 0, 0, 0, time.UTC)

func window(t *testing.T, days int) domain.Window {
	t.Helper()
	w, err := domain.NewWindow(days, now, time.UTC)
	require.NoError(t, err)
	return w
}

func rec(id int64, at time.Time) domain.Record {
	return domain.Record{ID: id, Category: domain.CategoryWater, At: at, Values: map[domain.Field]float64{domain.FieldAmountMl: 250}}
}

func TestFilter_HalfOpen(t *testing.T) {
	w := window(t, 7)
	records := []domain.Record{
		rec(1, w.Start.Add(-time.Second)),
		rec(2, w.Start),
		rec(3, now.Add(-time.Hour)),
		rec(4, now),
		rec(5, now.Add(time.Hour)),
	}

	got, missing := timeline.Filter(records, w)
	assert.Equal(t, 0, missing)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestFilter_PreservesOrderAndCountsMissing(t *testing.T) {
	w := window(t, 7)
	records := []domain.Record{
		rec(1, now.Add(-time.Hour)),
		rec(2, time.Time{}),
		rec(3, now.Add(-48*time.Hour)),
		rec(4, now.Add(-2*time.Hour)),
	}

	got, missing := timeline.Filter(records, w)
	assert.Equal(t, 1, missing)
	ids := make([]int64, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{1, 3, 4}, ids)
}

func TestFilter_Idempotent(t *testing.T) {
	w := window(t, 30)
	records := []domain.Record{
		rec(1, now.Add(-40*24*time.Hour)),
		rec(2, now.Add(-10*24*time.Hour)),
		rec(3, now.Add(-time.Minute)),
	}
	once, _ := timeline.Filter(records, w)
	twice, _ := timeline.Filter(once, w)
	assert.Equal(t, once, twice)
}

func TestBucketize_EmptyInputYieldsFullSet(t *testing.T) {
	for _, days := range []int{7, 30, 90} {
		w := window(t, days)
		res := timeline.Build(nil, w)

		assert.Empty(t, res.Records)
		require.Len(t, res.Buckets, days)
		for i, b := range res.Buckets {
			assert.NotNil(t, b.Records)
			assert.Empty(t, b.Records)
			if i > 0 {
				assert.Less(t, res.Buckets[i-1].Day, b.Day)
			}
		}
		assert.Equal(t, "2026-02-08", res.Buckets[days-1].Day)
	}
}

func TestBucketize_AssignsByDay(t *testing.T) {
	w := window(t, 7)
	records := []domain.Record{
		rec(1, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)),
		rec(2, time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC)),
		rec(3, time.Date(2026, 2, 5, 21, 0, 0, 0, time.UTC)),
		rec(4, time.Date(2026, 2, 8, 17, 59, 0, 0, time.UTC)),
	}

	buckets := timeline.Bucketize(records, w)
	require.Len(t, buckets, 7)
	assert.Equal(t, "2026-02-02", buckets[0].Day)
	assert.Len(t, buckets[0].Records, 1)
	assert.Equal(t, "2026-02-05", buckets[3].Day)
	assert.Len(t, buckets[3].Records, 2)
	assert.Len(t, buckets[6].Records, 1)

	total := 0
	for _, b := range buckets {
		total += len(b.Records)
	}
	assert.Equal(t, len(records), total)
}

func TestBucketize_UsesWindowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	w, err := domain.NewWindow(7, now, loc)
	require.NoError(t, err)

	// 03:00 UTC on the 8th is still the 7th in UTC-5.
	r := rec(1, time.Date(2026, 2, 8, 3, 0, 0, 0, time.UTC))
	buckets := timeline.Bucketize([]domain.Record{r}, w)
	require.Len(t, buckets, 7)
	assert.Equal(t, "2026-02-07", buckets[5].Day)
	assert.Len(t, buckets[5].Records, 1)
}
