package base

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(pgx.ErrNoRows) {
		t.Fatal("expected pgx.ErrNoRows to be not-found")
	}
	if !IsNotFound(fmt.Errorf("query row: %w", pgx.ErrNoRows)) {
		t.Fatal("expected wrapped pgx.ErrNoRows to be not-found")
	}
	if IsNotFound(errors.New("boom")) {
		t.Fatal("expected other errors not to be not-found")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("expected code 23505 to be a unique violation")
	}
	if !IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})) {
		t.Fatal("expected wrapped 23505 to be a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("expected foreign key violations not to match")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Fatal("expected plain errors not to match")
	}
}
