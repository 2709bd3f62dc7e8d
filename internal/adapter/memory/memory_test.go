package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"vitals/internal/domain"
)

func TestRecordStore(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := "alice"

	// Add records
	now := time.Now()
	id, err := db.InsertRecord(ctx, userID, domain.CategoryWater, now, map[string]any{"amountMl": 250.0})
	if err != nil {
		t.Fatalf("InsertRecord: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero ID")
	}
	id2, _ := db.InsertRecord(ctx, userID, domain.CategoryWater, now.Add(time.Minute), map[string]any{"amountMl": 500.0})

	// List newest first
	records, err := db.ListRecentRecords(ctx, userID, domain.CategoryWater, 10)
	if err != nil {
		t.Fatalf("ListRecentRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != id2 {
		t.Errorf("expected newest record %d first, got %d", id2, records[0].ID)
	}
	if records[0].CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be populated")
	}

	// Limit
	records, _ = db.ListRecentRecords(ctx, userID, domain.CategoryWater, 1)
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}

	// Other user and other category see nothing
	if other, _ := db.ListRecentRecords(ctx, "bob", domain.CategoryWater, 10); len(other) != 0 {
		t.Error("expected 0 records for other user")
	}
	if other, _ := db.ListRecentRecords(ctx, userID, domain.CategoryMood, 10); len(other) != 0 {
		t.Error("expected 0 records for other category")
	}

	// Delete
	if err := db.DeleteRecord(ctx, userID, domain.CategoryWater, id); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	if err := db.DeleteRecord(ctx, userID, domain.CategoryWater, id); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
	records, _ = db.ListRecentRecords(ctx, userID, domain.CategoryWater, 10)
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
}

func TestFetchCategory_Range(t *testing.T) {
	db := New()
	ctx := context.Background()
	base := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

	_, _ = db.InsertRecord(ctx, "u", domain.CategoryActivity, base.AddDate(0, 0, -10), map[string]any{"steps": 1.0})
	_, _ = db.InsertRecord(ctx, "u", domain.CategoryActivity, base.AddDate(0, 0, -1), map[string]any{"steps": 2.0})
	_, _ = db.InsertRecord(ctx, "u", domain.CategoryActivity, time.Time{}, map[string]any{"steps": 3.0})

	r := &domain.TimeRange{Start: base.AddDate(0, 0, -7), End: base}
	got, err := db.FetchCategory(ctx, "u", domain.CategoryActivity, r)
	if err != nil {
		t.Fatalf("FetchCategory: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected in-range record plus undated record, got %d", len(got))
	}

	all, _ := db.FetchCategory(ctx, "u", domain.CategoryActivity, nil)
	if len(all) != 3 {
		t.Fatalf("expected 3 records without a range, got %d", len(all))
	}
}

func TestFetchCategory_ReturnsCopies(t *testing.T) {
	db := New()
	ctx := context.Background()
	_, _ = db.InsertRecord(ctx, "u", domain.CategoryMood, time.Now(), map[string]any{"moodRating": 4.0})

	got, _ := db.FetchCategory(ctx, "u", domain.CategoryMood, nil)
	got[0].Data["moodRating"] = 1.0

	again, _ := db.FetchCategory(ctx, "u", domain.CategoryMood, nil)
	if again[0].Data["moodRating"] != 4.0 {
		t.Error("stored payload was modified through a fetched copy")
	}
}

func TestFailCategory(t *testing.T) {
	db := New()
	ctx := context.Background()

	db.FailCategory(domain.CategorySleep, domain.ErrUnauthorized)
	if _, err := db.FetchCategory(ctx, "u", domain.CategorySleep, nil); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := db.FetchCategory(ctx, "u", domain.CategoryWater, nil); err != nil {
		t.Fatalf("other categories should still load: %v", err)
	}

	db.FailCategory(domain.CategorySleep, nil)
	if _, err := db.FetchCategory(ctx, "u", domain.CategorySleep, nil); err != nil {
		t.Fatalf("expected failure cleared, got %v", err)
	}
}

func TestFetchCategory_CanceledContext(t *testing.T) {
	db := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := db.FetchCategory(ctx, "u", domain.CategoryWater, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
