package catalog_repo

import (
	"testing"

	"quarryledger/internal/core/apperror"
)

func newTestRepo() baseRepo[any] {
	return baseRepo[any]{
		tableName:  "test_table",
		selectCols: []string{"id", "name", "location"},
		newFn:      func() any { return nil },
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
	}{
		{"Default", "", "name ASC"},
		{"Plain field", "location", "location ASC"},
		{"Descending", "-name", "name DESC"},
		{"Explicit ascending", "+name", "name ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if err != nil {
				t.Fatalf("parseOrderBy(%q) failed: %v", tt.orderBy, err)
			}
			if got != tt.want {
				t.Errorf("parseOrderBy(%q)\nwant: %s\ngot:  %s", tt.orderBy, tt.want, got)
			}
		})
	}
}

func TestParseOrderBy_RejectsUnknownColumn(t *testing.T) {
	repo := newTestRepo()

	// Unknown fields must not reach the SQL text.
	for _, orderBy := range []string{"password_hash", "-1; DROP TABLE users"} {
		_, err := repo.parseOrderBy(orderBy)
		if err == nil {
			t.Fatalf("parseOrderBy(%q) should fail", orderBy)
		}
		appErr, ok := err.(*apperror.AppError)
		if !ok {
			t.Fatalf("parseOrderBy(%q) returned %T, want *apperror.AppError", orderBy, err)
		}
		if appErr.Code != apperror.CodeValidation {
			t.Errorf("parseOrderBy(%q) code = %s, want %s", orderBy, appErr.Code, apperror.CodeValidation)
		}
	}
}

func TestBaseSelect(t *testing.T) {
	repo := newTestRepo()

	sql, _, err := repo.baseSelect().ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT id, name, location FROM test_table"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
}
