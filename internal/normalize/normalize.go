// Package normalize converts raw store payloads into uniform records.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"vitals/internal/domain"
)

// durationKey is the interval-form alias accepted for FieldDurationMinutes.
const durationKey = "duration"

// MalformedRecordError describes why one raw record was rejected.
type MalformedRecordError struct {
	Category domain.Category
	ID       int64
	Field    string
	Reason   string
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed %s record %d: %s", e.Category, e.ID, e.Reason)
	}
	return fmt.Sprintf("malformed %s record %d: %s: %s", e.Category, e.ID, e.Field, e.Reason)
}

// Unwrap lets errors.Is match domain.ErrMalformedRecord.
func (e *MalformedRecordError) Unwrap() error {
	return domain.ErrMalformedRecord
}

// Normalizer resolves timestamps and numeric fields. Timestamps without a zone
// are interpreted in Location (time.Local when nil).
type Normalizer struct {
	Location *time.Location
}

// New returns a Normalizer for loc.
func New(loc *time.Location) Normalizer {
	return Normalizer{Location: loc}
}

// Normalize converts one raw record.
func (n Normalizer) Normalize(raw domain.RawRecord) (domain.Record, error) {
	schema, ok := raw.Category.Schema()
	if !ok {
		return domain.Record{}, n.malformed(raw, "", "unknown category")
	}

	at, err := parseTime(raw.Data[schema.TimestampKey], n.loc())
	if err != nil {
		return domain.Record{}, n.malformed(raw, schema.TimestampKey, err.Error())
	}

	rec := domain.Record{
		ID:       raw.ID,
		UserID:   raw.UserID,
		Category: raw.Category,
		At:       at,
		Values:   make(map[domain.Field]float64, len(schema.Fields)),
	}

	for _, spec := range schema.Fields {
		key := string(spec.Name)
		v, present, err := number(raw.Data[key])
		if err == nil && !present && spec.Name == domain.FieldDurationMinutes {
			key = durationKey
			v, present, err = parseInterval(raw.Data[durationKey])
		}
		if err != nil {
			return domain.Record{}, n.malformed(raw, key, err.Error())
		}
		if !present {
			continue
		}
		if v < spec.Min || (spec.Max > 0 && v > spec.Max) {
			return domain.Record{}, n.malformed(raw, key, fmt.Sprintf("%v outside [%v, %v]", v, spec.Min, bound(spec.Max)))
		}
		rec.Values[spec.Name] = v
	}

	for _, key := range schema.Labels {
		s, ok := label(raw.Data[key])
		if !ok {
			continue
		}
		if rec.Labels == nil {
			rec.Labels = make(map[string]string, len(schema.Labels))
		}
		rec.Labels[key] = s
	}

	if raw.Category == domain.CategoryMeasurement {
		if err := toKilograms(&rec); err != nil {
			return domain.Record{}, n.malformed(raw, "weightUnit", err.Error())
		}
	}
	return rec, nil
}

// BatchResult is the outcome of normalizing a set of raw records.
type BatchResult struct {
	Records   []domain.Record
	Errors    []error
	Malformed int
}

// Batch normalizes every record independently; bad records are counted and
// skipped without affecting the rest.
func (n Normalizer) Batch(raws []domain.RawRecord) BatchResult {
	res := BatchResult{Records: make([]domain.Record, 0, len(raws))}
	for _, raw := range raws {
		rec, err := n.Normalize(raw)
		if err != nil {
			res.Errors = append(res.Errors, err)
			res.Malformed++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

func (n Normalizer) loc() *time.Location {
	if n.Location == nil {
		return time.Local
	}
	return n.Location
}

func (n Normalizer) malformed(raw domain.RawRecord, field, reason string) error {
	return &MalformedRecordError{Category: raw.Category, ID: raw.ID, Field: field, Reason: reason}
}

func bound(max float64) any {
	if max == 0 {
		return "inf"
	}
	return max
}

// toKilograms stores weight in kg so that measurements are comparable.
func toKilograms(rec *domain.Record) error {
	unit, ok := rec.Labels["weightUnit"]
	if !ok {
		return nil
	}
	unit = strings.ToLower(strings.TrimSpace(unit))
	if !domain.IsWeightUnit(unit) {
		return fmt.Errorf("unsupported unit %q", unit)
	}
	if w, ok := rec.Values[domain.FieldWeight]; ok {
		rec.Values[domain.FieldWeight] = domain.ConvertWeight(w, unit, domain.UnitKG)
	}
	rec.Labels["weightUnit"] = domain.UnitKG
	return nil
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	domain.DayLayout,
}

func parseTime(v any, loc *time.Location) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("missing timestamp")
	case time.Time:
		if t.IsZero() {
			return time.Time{}, fmt.Errorf("missing timestamp")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, fmt.Errorf("missing timestamp")
		}
		for _, layout := range zonedLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, nil
			}
		}
		for _, layout := range localLayouts {
			if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
				return ts, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
	}

	secs, present, err := number(v)
	if err != nil || !present {
		return time.Time{}, fmt.Errorf("unparsable timestamp %v", v)
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)), nil
}

// number decodes a numeric payload value. nil and "" are absent.
func number(v any) (float64, bool, error) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("not a number: %q", n.String())
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("not a number: %q", n)
		}
		f = parsed
	default:
		return 0, false, fmt.Errorf("unsupported type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("not a finite number")
	}
	return f, true, nil
}

func label(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		if s == "" {
			return "", false
		}
		return s, true
	default:
		return fmt.Sprint(s), true
	}
}
