package postgres

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/lib/pq"

	"vitals/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"insufficient privilege", &pq.Error{Code: codeInsufficientPrivilege, Message: "permission denied"}, domain.ErrUnauthorized},
		{"other driver error", &pq.Error{Code: "08006", Message: "connection failure"}, domain.ErrCategoryUnavailable},
		{"plain error", errors.New("boom"), domain.ErrCategoryUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(domain.CategoryMood, tc.err)
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDecodePayload(t *testing.T) {
	data, err := decodePayload([]byte(`{"steps": 12000, "caloriesBurned": 320.5, "type": "run"}`))
	if err != nil {
		t.Fatalf("decodePayload: %v", err)
	}
	if n, ok := data["steps"].(json.Number); !ok || n.String() != "12000" {
		t.Errorf("expected json.Number 12000, got %#v", data["steps"])
	}
	if data["type"] != "run" {
		t.Errorf("expected label to survive, got %#v", data["type"])
	}

	if _, err := decodePayload([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid payload")
	}
}
