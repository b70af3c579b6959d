package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestService(t *testing.T, clock *fakeClock) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test-secret", WithClock(clock.now))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	for _, email := range []string{"u@x.com", "admin@bikeparts.io", "a.b+c@example.org"} {
		tok, err := svc.Issue(email)
		if err != nil {
			t.Fatalf("Issue(%q): %v", email, err)
		}

		got, err := svc.Verify(tok)
		if err != nil {
			t.Fatalf("Verify immediately after issue: %v", err)
		}
		if got != email {
			t.Fatalf("expected %q, got %q", email, got)
		}

		clock.t = clock.t.Add(23*time.Hour + 59*time.Minute)
		if got, err := svc.Verify(tok); err != nil || got != email {
			t.Fatalf("expected token valid just before expiry, got %q, %v", got, err)
		}
		clock.t = clock.t.Add(-(23*time.Hour + 59*time.Minute))
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, clock)

	tok, err := svc.Issue("u@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	clock.t = clock.t.Add(DefaultTTL + time.Second)
	_, err = svc.Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsMutatedToken(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(t, clock)

	tok, err := svc.Issue("u@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}

	// swap in claims for another subject, keep the original signature
	other, err := svc.Issue("attacker@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	forged := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

	cases := map[string]string{
		"forged payload": forged,
		"truncated":      tok[:len(tok)-4],
		"garbage":        "not-a-token",
		"empty":          "",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Verify(raw); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(t, clock)

	other, err := NewTokenService("another-secret", WithClock(clock.now))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	tok, err := other.Issue("u@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsUnsignedAndTokensWithoutExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(t, clock)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Email: "u@x.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := svc.Verify(none); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("alg none: expected ErrInvalidToken, got %v", err)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "u@x.com"}).
		SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(noExp); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("missing exp: expected ErrInvalidToken, got %v", err)
	}
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService(""); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestWithTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := NewTokenService("s", WithTTL(time.Hour), WithClock(clock.now))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	tok, err := svc.Issue("u@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	clock.t = clock.t.Add(2 * time.Hour)
	if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expiry after custom ttl, got %v", err)
	}
}
