package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{E(CodeInvalidArgument, "op", "bad", nil), http.StatusBadRequest},
		{E(CodeInvalidIdentifier, "op", "invalid identifier", nil), http.StatusBadRequest},
		{E(CodeNotFound, "op", "user not found", ErrNotFound), http.StatusBadRequest},
		{E(CodeUnauthorized, "op", "", nil), http.StatusUnauthorized},
		{E(CodeForbidden, "op", "", nil), http.StatusForbidden},
		{E(CodeUnavailable, "op", "", nil), http.StatusServiceUnavailable},
		{E(CodeInternal, "op", "", errors.New("boom")), http.StatusInternalServerError},
		{fmt.Errorf("repo: %w", ErrNotFound), http.StatusBadRequest},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestAppErrorWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", E(CodeNotFound, "OrderService.Get", "order not found", ErrNotFound))

	if !IsCode(err, CodeNotFound) {
		t.Fatal("expected NOT_FOUND through wrapping")
	}
	if IsCode(err, CodeForbidden) {
		t.Fatal("unexpected code match")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected cause to unwrap")
	}
	if got, want := err.Error(), "handler: OrderService.Get: order not found: not found"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
