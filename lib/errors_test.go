package lib

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapPgError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, ErrConflict},
		{"no data found", &pgconn.PgError{Code: "P0002"}, ErrNotFound},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ErrConflict},
	}

	for _, tc := range cases {
		if got := MapPgError(tc.err); !errors.Is(got, tc.want) {
			t.Errorf("%s: MapPgError() = %v, want %v", tc.name, got, tc.want)
		}
	}

	plain := errors.New("connection refused")
	if got := MapPgError(plain); got != plain {
		t.Errorf("non-pg error was rewritten: %v", got)
	}
	if got := MapPgError(&pgconn.PgError{Code: "42601"}); !errors.As(got, new(*pgconn.PgError)) {
		t.Errorf("unmapped SQLSTATE should pass through, got %v", got)
	}
}
