package repositories

import (
	"testing"
)

func TestBuildUpdateSetOrdersColumnsDeterministically(t *testing.T) {
	patch := map[string]any{
		"status":       "accepted",
		"access_level": 2,
		"name":         "Alice",
	}

	clause, args := buildUpdateSet(patch, 1)

	wantClause := "name = $1, access_level = $2, status = $3"
	if clause != wantClause {
		t.Fatalf("expected clause %q, got %q", wantClause, clause)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0] != "Alice" || args[1] != 2 || args[2] != "accepted" {
		t.Fatalf("args out of order: %v", args)
	}
}

func TestBuildUpdateSetIgnoresUnknownColumns(t *testing.T) {
	patch := map[string]any{
		"name":       "Bob",
		"is_deleted": true, // not patchable through Update
	}

	clause, args := buildUpdateSet(patch, 1)

	if clause != "name = $1" {
		t.Fatalf("expected only name to be set, got %q", clause)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(args))
	}
}

func TestBuildUpdateSetEmptyPatch(t *testing.T) {
	clause, args := buildUpdateSet(map[string]any{}, 1)
	if clause != "" || len(args) != 0 {
		t.Fatalf("expected empty clause for empty patch, got %q / %v", clause, args)
	}
}

func TestBuildUpdateSetRespectsStartIndex(t *testing.T) {
	clause, _ := buildUpdateSet(map[string]any{"status": "pending"}, 4)
	if clause != "status = $4" {
		t.Fatalf("expected placeholder numbering from 4, got %q", clause)
	}
}
