package aggregate

import (
	"vitals/internal/domain"
	"vitals/internal/timeline"
)

// DayValue is one point of a per-day series. Value is nil when the day has no
// contributing record and the series is not a total.
type DayValue struct {
	Day   string   `json:"day"`
	Value *float64 `json:"value"`
}

// DailyTotals sums field per bucket. Every day has a value; empty days are 0.
func DailyTotals(buckets []timeline.Bucket, field domain.Field) []DayValue {
	out := make([]DayValue, 0, len(buckets))
	for _, b := range buckets {
		v := Sum(b.Records, field)
		out = append(out, DayValue{Day: b.Day, Value: &v})
	}
	return out
}

// DailyAverages averages field per bucket over contributing records.
func DailyAverages(buckets []timeline.Bucket, field domain.Field) []DayValue {
	out := make([]DayValue, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, DayValue{Day: b.Day, Value: ptr(Average(b.Records, field))})
	}
	return out
}

// DailyLatest takes the last value of field recorded on each day.
func DailyLatest(buckets []timeline.Bucket, field domain.Field) []DayValue {
	out := make([]DayValue, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, DayValue{Day: b.Day, Value: ptr(Latest(b.Records, field))})
	}
	return out
}
