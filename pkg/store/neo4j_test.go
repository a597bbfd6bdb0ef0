package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

func TestRecordFromFields(t *testing.T) {
	fields := map[string]any{
		"entity":      "AAPL",
		"fact_type":   "10-Q",
		"date":        "2024-05-03",
		"description": "Quarterly report",
		"count":       int64(3),
	}

	rec := RecordFromFields(fields)

	if rec.Entity != "AAPL" || rec.FactType != "10-Q" || rec.Description != "Quarterly report" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Date.Format("2006-01-02") != "2024-05-03" {
		t.Errorf("Date = %v, want 2024-05-03", rec.Date)
	}
	if rec.Fields["count"] != int64(3) {
		t.Error("extra fields must stay available")
	}
}

func TestRecordFromFieldsPartialRow(t *testing.T) {
	rec := RecordFromFields(map[string]any{"entity": "MSFT"})

	if rec.Entity != "MSFT" {
		t.Errorf("Entity = %q", rec.Entity)
	}
	if !rec.Date.IsZero() {
		t.Errorf("Date should be zero for missing field, got %v", rec.Date)
	}
}

func TestNormalizeDate(t *testing.T) {
	want := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		ok   bool
	}{
		{"dbtype date", dbtype.Date(want), true},
		{"time", want, true},
		{"iso string", "2024-05-03", true},
		{"rfc3339 string", "2024-05-03T00:00:00Z", true},
		{"garbage string", "yesterday", false},
		{"int", 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeDate(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(want) {
				t.Errorf("NormalizeDate = %v, want %v", got, want)
			}
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind types.StoreErrorKind
	}{
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			kind: types.StoreErrorTimeout,
		},
		{
			name: "driver syntax error",
			err:  &db.Neo4jError{Code: "Neo.ClientError.Statement.SyntaxError", Msg: "bad query"},
			kind: types.StoreErrorSyntax,
		},
		{
			name: "syntax in message",
			err:  errors.New("syntax error near LIMIT"),
			kind: types.StoreErrorSyntax,
		},
		{
			name: "timeout in message",
			err:  errors.New("i/o timeout"),
			kind: types.StoreErrorTimeout,
		},
		{
			name: "anything else is connection",
			err:  errors.New("connection refused"),
			kind: types.StoreErrorConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if got.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", got.Kind, tt.kind)
			}
			if !errors.Is(got, tt.err) && got.Unwrap() == nil {
				t.Error("classified error must wrap the cause")
			}
		})
	}
}

func TestStoreErrorRetryable(t *testing.T) {
	if types.NewStoreError(types.StoreErrorSyntax, errors.New("x")).Retryable() {
		t.Error("syntax errors must not be retryable")
	}
	if !types.NewStoreError(types.StoreErrorConnection, errors.New("x")).Retryable() {
		t.Error("connection errors are retryable")
	}
	if !types.NewStoreError(types.StoreErrorTimeout, errors.New("x")).Retryable() {
		t.Error("timeouts are retryable")
	}
}
