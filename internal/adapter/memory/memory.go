// Package memory implements an in-memory record store for development and testing.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"vitals/internal/domain"
)

type key struct {
	userID   string
	category domain.Category
}

type entry struct {
	raw        domain.RawRecord
	occurredAt time.Time
}

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	records  map[key][]entry
	failures map[domain.Category]error

	idCounter int64
	now       func() time.Time
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		records:  make(map[key][]entry),
		failures: make(map[domain.Category]error),
		now:      time.Now,
	}
}

// Ensure interfaces are met.
var _ domain.RecordStore = (*DB)(nil)

// FailCategory makes every later fetch of c return err. A nil err clears it.
func (db *DB) FailCategory(c domain.Category, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err == nil {
		delete(db.failures, c)
		return
	}
	db.failures[c] = err
}

// FetchCategory returns the user's records of c whose occurrence falls in r.
// Records stored without an occurrence time are always returned so the caller
// can count them.
func (db *DB) FetchCategory(ctx context.Context, userID string, c domain.Category, r *domain.TimeRange) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.failures[c]; err != nil {
		return nil, err
	}

	var out []domain.RawRecord
	for _, e := range db.records[key{userID, c}] {
		if r != nil && !e.occurredAt.IsZero() && !r.Contains(e.occurredAt) {
			continue
		}
		out = append(out, copyRaw(e.raw))
	}
	return out, nil
}

// InsertRecord stores a record and returns its ID.
func (db *DB) InsertRecord(ctx context.Context, userID string, c domain.Category, occurredAt time.Time, data map[string]any) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.idCounter++
	id := db.idCounter

	k := key{userID, c}
	db.records[k] = append(db.records[k], entry{
		raw: domain.RawRecord{
			ID:        id,
			UserID:    userID,
			Category:  c,
			Data:      maps.Clone(data),
			CreatedAt: db.now().UTC(),
		},
		occurredAt: occurredAt.UTC(),
	})
	return id, nil
}

// DeleteRecord deletes a record by ID.
func (db *DB) DeleteRecord(ctx context.Context, userID string, c domain.Category, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	k := key{userID, c}
	for i, e := range db.records[k] {
		if e.raw.ID == id {
			db.records[k] = append(db.records[k][:i], db.records[k][i+1:]...)
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

// ListRecentRecords lists the most recent records, newest occurrence first.
func (db *DB) ListRecentRecords(ctx context.Context, userID string, c domain.Category, limit int) ([]domain.RawRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	// copy
	entries := make([]entry, len(db.records[key{userID, c}]))
	copy(entries, db.records[key{userID, c}])

	// sort desc, ties broken by insertion order
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].occurredAt.Equal(entries[j].occurredAt) {
			return entries[i].occurredAt.After(entries[j].occurredAt)
		}
		return entries[i].raw.ID > entries[j].raw.ID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	result := make([]domain.RawRecord, 0, len(entries))
	for _, e := range entries {
		result = append(result, copyRaw(e.raw))
	}
	return result, nil
}

func copyRaw(r domain.RawRecord) domain.RawRecord {
	r.Data = maps.Clone(r.Data)
	return r
}
