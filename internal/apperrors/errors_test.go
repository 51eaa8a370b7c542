package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"classified", New(KindNotFound, "order not found"), KindNotFound},
		{"wrapped classified", fmt.Errorf("lookup: %w", New(KindForbidden, "nope")), KindForbidden},
		{"plain error", errors.New("boom"), KindInternal},
		{"wrap carries cause", Wrap(KindConflict, "duplicate email", errors.New("23505")), KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnavailable, http.StatusBadRequest},
		{KindUnauthenticated, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.kind); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestMessageOf(t *testing.T) {
	if got := MessageOf(New(KindValidation, "items array cannot be empty")); got != "items array cannot be empty" {
		t.Errorf("unexpected message: %q", got)
	}
	if got := MessageOf(errors.New("pg: connection refused")); got != "Internal server error" {
		t.Errorf("internal detail leaked: %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("no rows")
	err := Wrap(KindNotFound, "menu item not found", cause)
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}
