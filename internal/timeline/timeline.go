// Package timeline restricts normalized records to a window and groups them
// into per-day buckets for charting.
package timeline

import "vitals/internal/domain"

// Bucket is one calendar day of a window.
type Bucket struct {
	Day     string          `json:"day"`
	Records []domain.Record `json:"records"`
}

// Result is the filtered view of one category over a window.
type Result struct {
	Records          []domain.Record `json:"records"`
	Buckets          []Bucket        `json:"buckets"`
	MissingTimestamp int             `json:"missingTimestamp"`
}

// Filter returns the records inside w, preserving order, and the number of
// records dropped for carrying no timestamp.
func Filter(records []domain.Record, w domain.Window) ([]domain.Record, int) {
	out := make([]domain.Record, 0, len(records))
	missing := 0
	for _, r := range records {
		if r.At.IsZero() {
			missing++
			continue
		}
		if w.Contains(r.At) {
			out = append(out, r)
		}
	}
	return out, missing
}

// Bucketize returns exactly w.Days buckets in ascending day order. Days with
// no records are kept with an empty, non-nil record slice.
func Bucketize(records []domain.Record, w domain.Window) []Bucket {
	keys := w.DayKeys()
	buckets := make([]Bucket, len(keys))
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		buckets[i] = Bucket{Day: k, Records: []domain.Record{}}
		index[k] = i
	}
	for _, r := range records {
		if r.At.IsZero() || !w.Contains(r.At) {
			continue
		}
		if i, ok := index[w.DayKey(r.At)]; ok {
			buckets[i].Records = append(buckets[i].Records, r)
		}
	}
	return buckets
}

// Build filters records to w and buckets the result.
func Build(records []domain.Record, w domain.Window) Result {
	filtered, missing := Filter(records, w)
	return Result{
		Records:          filtered,
		Buckets:          Bucketize(filtered, w),
		MissingTimestamp: missing,
	}
}
