package domain

import (
	"context"
	"time"
)

// RecordStore is the port for health record persistence. Fetch errors should
// wrap ErrCategoryUnavailable or ErrUnauthorized; any other error is treated
// as the category being unavailable.
type RecordStore interface {
	// FetchCategory returns the user's raw records of one category. A nil
	// range returns every record.
	FetchCategory(ctx context.Context, userID string, c Category, r *TimeRange) ([]RawRecord, error)
	InsertRecord(ctx context.Context, userID string, c Category, occurredAt time.Time, data map[string]any) (int64, error)
	DeleteRecord(ctx context.Context, userID string, c Category, id int64) error
	// ListRecentRecords returns up to limit records ordered newest first.
	ListRecentRecords(ctx context.Context, userID string, c Category, limit int) ([]RawRecord, error)
}
