package domain

import "time"

// RawRecord is a record exactly as the record store returns it: the decoded
// JSON payload, keyed per the category schema.
type RawRecord struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"userId"`
	Category  Category       `json:"category"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Record is a normalized record: one canonical instant plus the numeric
// fields that were present on the raw payload.
type Record struct {
	ID       int64             `json:"id"`
	UserID   string            `json:"userId"`
	Category Category          `json:"category"`
	At       time.Time         `json:"at"`
	Values   map[Field]float64 `json:"values"`
	Labels   map[string]string `json:"labels,omitempty"`
}

// Value returns field f and whether it was present.
func (r Record) Value(f Field) (float64, bool) {
	v, ok := r.Values[f]
	return v, ok
}
