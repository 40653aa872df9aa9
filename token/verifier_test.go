package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestVerifyReturnsSubject(t *testing.T) {
	issuer, codec := newTestIssuer(t)
	verifier := NewVerifier(codec)

	encoded, err := issuer.Issue(ScopeAccess, "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := verifier.Verify(encoded, ScopeAccess)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != "user@example.com" {
		t.Fatalf("subject = %q", got)
	}
}

func TestVerifyRejectsWrongScope(t *testing.T) {
	issuer, codec := newTestIssuer(t)
	verifier := NewVerifier(codec)

	pairs := []struct {
		issued   Scope
		expected Scope
	}{
		{ScopeRefresh, ScopeAccess},
		{ScopeAccess, ScopeRefresh},
		{ScopeEmailConfirm, ScopePasswordReset},
		{ScopePasswordReset, ScopeNewPassword},
		{ScopeNewPassword, ScopeAccess},
	}

	for _, pair := range pairs {
		encoded, err := issuer.Issue(pair.issued, "user@example.com")
		if err != nil {
			t.Fatalf("Issue(%q): %v", pair.issued, err)
		}

		_, err = verifier.Verify(encoded, pair.expected)
		if !errors.Is(err, ErrWrongScope) {
			t.Fatalf("Verify(%q as %q) = %v, want ErrWrongScope", pair.issued, pair.expected, err)
		}
		// Boundary code flattens on ErrTokenInvalid; the wrap must hold.
		if !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("ErrWrongScope should match ErrTokenInvalid, got %v", err)
		}
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer, codec := newTestIssuer(t)
	verifier := NewVerifier(codec)

	encoded, err := issuer.Issue(ScopeAccess, "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	verifier.now = func() time.Time { return time.Now().Add(DefaultLifetimes().Access + time.Second) }

	if _, err := verifier.Verify(encoded, ScopeAccess); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify expired = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyTreatsMissingExpiryAsExpired(t *testing.T) {
	codec := newTestCodec(t)
	verifier := NewVerifier(codec)

	encoded, err := codec.Encode(&Claims{Scope: ScopeAccess})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := verifier.Verify(encoded, ScopeAccess); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify without exp = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyRejectsEmptySubject(t *testing.T) {
	codec := newTestCodec(t)
	verifier := NewVerifier(codec)

	fixed := time.Now()

	encoded, err := codec.Encode(&Claims{
		Scope: ScopeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(fixed.Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := verifier.Verify(encoded, ScopeAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Verify empty subject = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifySubjectIgnoresScope(t *testing.T) {
	issuer, codec := newTestIssuer(t)
	verifier := NewVerifier(codec)

	for _, scope := range []Scope{ScopeAccess, ScopeRefresh, ScopeEmailConfirm} {
		encoded, err := issuer.Issue(scope, "user@example.com")
		if err != nil {
			t.Fatalf("Issue(%q): %v", scope, err)
		}

		got, err := verifier.VerifySubject(encoded)
		if err != nil {
			t.Fatalf("VerifySubject(%q): %v", scope, err)
		}
		if got != "user@example.com" {
			t.Fatalf("subject = %q", got)
		}
	}
}

func TestVerifySubjectStillEnforcesExpiry(t *testing.T) {
	issuer, codec := newTestIssuer(t)
	verifier := NewVerifier(codec)

	encoded, err := issuer.Issue(ScopeEmailConfirm, "user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	verifier.now = func() time.Time { return time.Now().Add(DefaultLifetimes().EmailConfirm + time.Second) }

	if _, err := verifier.VerifySubject(encoded); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("VerifySubject expired = %v, want ErrTokenExpired", err)
	}
}
