package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseInterval reads an elapsed duration and returns it in minutes.
// Bare numbers are minutes. Strings may be clock form ("01:30:00", "45:00"
// is hours:minutes), Go durations ("1h30m"), or unit pairs ("1 hour 30 minutes").
func parseInterval(v any) (float64, bool, error) {
	s, ok := v.(string)
	if !ok {
		return number(v)
	}
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, false, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			return 0, false, fmt.Errorf("negative interval %q", s)
		}
		return f, true, nil
	}
	if strings.Contains(s, ":") {
		m, err := clockMinutes(s)
		return m, err == nil, err
	}
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, false, fmt.Errorf("negative interval %q", s)
		}
		return d.Minutes(), true, nil
	}
	m, err := unitMinutes(s)
	return m, err == nil, err
}

func clockMinutes(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("unparsable interval %q", s)
	}
	scale := []float64{60, 1, 1.0 / 60}
	var total float64
	for i, p := range parts {
		n, err := strconv.ParseFloat(p, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("unparsable interval %q", s)
		}
		total += n * scale[i]
	}
	return total, nil
}

var unitScale = map[string]float64{
	"s": 1.0 / 60, "sec": 1.0 / 60, "secs": 1.0 / 60, "second": 1.0 / 60, "seconds": 1.0 / 60,
	"m": 1, "min": 1, "mins": 1, "minute": 1, "minutes": 1,
	"h": 60, "hr": 60, "hrs": 60, "hour": 60, "hours": 60,
	"day": 24 * 60, "days": 24 * 60,
}

func unitMinutes(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields)%2 != 0 {
		return 0, fmt.Errorf("unparsable interval %q", s)
	}
	var total float64
	for i := 0; i < len(fields); i += 2 {
		n, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("unparsable interval %q", s)
		}
		scale, ok := unitScale[fields[i+1]]
		if !ok {
			return 0, fmt.Errorf("unknown interval unit %q", fields[i+1])
		}
		total += n * scale
	}
	return total, nil
}
