package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"vitals/internal/domain"
)

var _ domain.RecordStore = (*DB)(nil)

// SQLSTATE insufficient_privilege, raised by row level security policies.
const codeInsufficientPrivilege = "42501"

// FetchCategory returns the user's records of c occurring within r. Rows with
// no occurred_at are included so the caller can count them as malformed.
func (d *DB) FetchCategory(ctx context.Context, userID string, c domain.Category, r *domain.TimeRange) ([]domain.RawRecord, error) {
	query := "SELECT id, payload, created_at FROM health_records WHERE user_id=$1 AND category=$2"
	args := []any{userID, string(c)}
	if r != nil {
		query += " AND (occurred_at IS NULL OR (occurred_at >= $3 AND occurred_at < $4))"
		args = append(args, r.Start.UTC(), r.End.UTC())
	}
	query += " ORDER BY occurred_at NULLS LAST, id;"

	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(c, err)
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.RawRecord
	for rows.Next() {
		rec, err := scanRecord(rows, userID, c)
		if err != nil {
			return nil, classify(c, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(c, err)
	}
	return out, nil
}

// InsertRecord stores payload as JSONB and returns the new ID.
func (d *DB) InsertRecord(ctx context.Context, userID string, c domain.Category, occurredAt time.Time, data map[string]any) (int64, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("encode payload: %w", err)
	}
	var at sql.NullTime
	if !occurredAt.IsZero() {
		at = sql.NullTime{Time: occurredAt.UTC(), Valid: true}
	}

	var id int64
	err = d.sql.QueryRowContext(ctx,
		"INSERT INTO health_records(user_id, category, occurred_at, payload, created_at) VALUES($1, $2, $3, $4, $5) RETURNING id;",
		userID, string(c), at, payload, time.Now().UTC(),
	).Scan(&id)
	return id, err
}

// DeleteRecord removes a record by ID, scoped to a user and category.
func (d *DB) DeleteRecord(ctx context.Context, userID string, c domain.Category, id int64) error {
	res, err := d.sql.ExecContext(ctx,
		"DELETE FROM health_records WHERE id=$1 AND user_id=$2 AND category=$3;", id, userID, string(c))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// ListRecentRecords returns the most recent records up to limit for a user.
func (d *DB) ListRecentRecords(ctx context.Context, userID string, c domain.Category, limit int) ([]domain.RawRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, payload, created_at FROM health_records WHERE user_id=$1 AND category=$2 ORDER BY occurred_at DESC NULLS LAST, id DESC LIMIT $3;",
		userID, string(c), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.RawRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows, userID, c)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecord(rows *sql.Rows, userID string, c domain.Category) (domain.RawRecord, error) {
	rec := domain.RawRecord{UserID: userID, Category: c}
	var payload []byte
	if err := rows.Scan(&rec.ID, &payload, &rec.CreatedAt); err != nil {
		return rec, err
	}
	data, err := decodePayload(payload)
	if err != nil {
		return rec, fmt.Errorf("record %d: %w", rec.ID, err)
	}
	rec.Data = data
	return rec, nil
}

// decodePayload keeps numbers as json.Number so integer fields survive intact.
func decodePayload(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return data, nil
}

// classify maps driver errors onto the domain's fetch failures.
func classify(c domain.Category, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("fetch %s: %w: %w", c, domain.ErrCategoryUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeInsufficientPrivilege {
		return fmt.Errorf("fetch %s: %w: %s", c, domain.ErrUnauthorized, pqErr.Message)
	}
	return fmt.Errorf("fetch %s: %w: %w", c, domain.ErrCategoryUnavailable, err)
}
