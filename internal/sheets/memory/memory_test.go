package memory

import (
	"context"
	"testing"

	"kasbot/internal/core"
)

func TestAppendStoresRows(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, core.Transaction{ID: 1, Date: "01-01-2025", Kind: core.Inflow, Amount: 1000, Note: "a"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "mem:1" {
		t.Fatalf("unexpected ref %q", ref)
	}
	if rows := s.Rows(); len(rows) != 1 || rows[0].Note != "a" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestAppendValidates(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), core.Transaction{Kind: core.Inflow, Amount: 0, Note: "a"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(s.Rows()) != 0 {
		t.Fatalf("invalid transaction must not be stored")
	}
}

func TestAppendFailureMode(t *testing.T) {
	s := New()
	s.SetFail(true)
	if _, err := s.Append(context.Background(), core.Transaction{ID: 1, Date: "01-01-2025", Kind: core.Inflow, Amount: 1, Note: "a"}); err == nil {
		t.Fatalf("expected injected failure")
	}
	if s.Calls() != 1 {
		t.Fatalf("expected one attempted call, got %d", s.Calls())
	}
}
