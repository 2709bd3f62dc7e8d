// Package aggregate derives summary statistics from filtered records.
package aggregate

import "vitals/internal/domain"

// Sum adds field over the records that carry it. Empty input sums to zero.
func Sum(records []domain.Record, field domain.Field) float64 {
	var total float64
	for _, r := range records {
		if v, ok := r.Value(field); ok {
			total += v
		}
	}
	return total
}

// Count returns how many records carry field.
func Count(records []domain.Record, field domain.Field) int {
	n := 0
	for _, r := range records {
		if _, ok := r.Value(field); ok {
			n++
		}
	}
	return n
}

// Average is the mean of field over records that carry it. It is absent
// (ok == false) when no record does.
func Average(records []domain.Record, field domain.Field) (float64, bool) {
	n := Count(records, field)
	if n == 0 {
		return 0, false
	}
	return Sum(records, field) / float64(n), true
}

// Latest returns field from the chronologically last record that carries it.
// Equal timestamps resolve to the later position.
func Latest(records []domain.Record, field domain.Field) (float64, bool) {
	var (
		best  domain.Record
		value float64
		found bool
	)
	for _, r := range records {
		v, ok := r.Value(field)
		if !ok {
			continue
		}
		if !found || !r.At.Before(best.At) {
			best, value, found = r, v, true
		}
	}
	return value, found
}

// latestRecord returns the chronologically last record, if any.
func latestRecord(records []domain.Record) (domain.Record, bool) {
	if len(records) == 0 {
		return domain.Record{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if !r.At.Before(best.At) {
			best = r
		}
	}
	return best, true
}

func ptr(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
