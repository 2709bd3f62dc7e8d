package app

import (
	"context"
	"fmt"
	"maps"
	"time"

	"vitals/internal/domain"
	"vitals/internal/normalize"
)

// maxListLimit bounds ListRecent.
const maxListLimit = 200

// RecordService encapsulates record create/list/delete use cases for forms.
type RecordService struct {
	store      domain.RecordStore
	normalizer normalize.Normalizer
	now        func() time.Time
}

// NewRecordService creates a RecordService backed by the given store.
// Timestamps without a zone are read in loc.
func NewRecordService(store domain.RecordStore, loc *time.Location) *RecordService {
	return &RecordService{store: store, normalizer: normalize.New(loc), now: time.Now}
}

// Create validates and stores a record. When the payload has no timestamp the
// current time is used, as a form logging "now" would.
func (s *RecordService) Create(ctx context.Context, userID string, c domain.Category, data map[string]any) (*domain.Record, error) {
	schema, ok := c.Schema()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
	payload := maps.Clone(data)
	if payload == nil {
		payload = map[string]any{}
	}
	if _, ok := payload[schema.TimestampKey]; !ok {
		payload[schema.TimestampKey] = s.now().UTC().Format(time.RFC3339Nano)
	}

	rec, err := s.normalizer.Normalize(domain.RawRecord{UserID: userID, Category: c, Data: payload})
	if err != nil {
		return nil, err
	}
	id, err := s.store.InsertRecord(ctx, userID, c, rec.At, payload)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return &rec, nil
}

// Delete removes one record.
func (s *RecordService) Delete(ctx context.Context, userID string, c domain.Category, id int64) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
	return s.store.DeleteRecord(ctx, userID, c, id)
}

// ListRecent returns the most recent records up to limit, normalized. Stored
// records that no longer normalize are skipped and counted.
func (s *RecordService) ListRecent(ctx context.Context, userID string, c domain.Category, limit int) ([]domain.Record, int, error) {
	if !c.Valid() {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	raws, err := s.store.ListRecentRecords(ctx, userID, c, limit)
	if err != nil {
		return nil, 0, err
	}
	res := s.normalizer.Batch(raws)
	return res.Records, res.Malformed, nil
}

// UndoLast deletes the most recent record of c.
func (s *RecordService) UndoLast(ctx context.Context, userID string, c domain.Category) (bool, int64, error) {
	if !c.Valid() {
		return false, 0, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
	}
	items, err := s.store.ListRecentRecords(ctx, userID, c, 1)
	if err != nil {
		return false, 0, err
	}
	if len(items) == 0 {
		return false, 0, nil
	}
	if err := s.store.DeleteRecord(ctx, userID, c, items[0].ID); err != nil {
		return false, 0, err
	}
	return true, items[0].ID, nil
}
