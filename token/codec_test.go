package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()

	codec, err := NewCodec([]byte("test-secret"))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func TestNewCodecRejectsEmptySecret(t *testing.T) {
	if _, err := NewCodec(nil); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	now := time.Now().Truncate(time.Second)
	in := &Claims{
		Scope: ScopeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user@example.com",
			ID:        "jti-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
	}

	encoded, err := codec.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	out, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if out.Scope != in.Scope {
		t.Fatalf("scope = %q, want %q", out.Scope, in.Scope)
	}
	if out.Subject != in.Subject {
		t.Fatalf("subject = %q, want %q", out.Subject, in.Subject)
	}
	if out.ID != in.ID {
		t.Fatalf("jti = %q, want %q", out.ID, in.ID)
	}
	if !out.IssuedAt.Time.Equal(in.IssuedAt.Time) {
		t.Fatalf("iat = %v, want %v", out.IssuedAt.Time, in.IssuedAt.Time)
	}
	if !out.ExpiresAt.Time.Equal(in.ExpiresAt.Time) {
		t.Fatalf("exp = %v, want %v", out.ExpiresAt.Time, in.ExpiresAt.Time)
	}
}

func TestCodecRejectsTamperedToken(t *testing.T) {
	codec := newTestCodec(t)

	encoded, err := codec.Encode(&Claims{
		Scope: ScopeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tampered := encoded[:len(encoded)-2] + "xx"
	if _, err := codec.Decode(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Decode tampered = %v, want ErrTokenInvalid", err)
	}
}

func TestCodecRejectsWrongSecret(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewCodec([]byte("different-secret"))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	encoded, err := codec.Encode(&Claims{
		Scope: ScopeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if _, err := other.Decode(encoded); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Decode with wrong secret = %v, want ErrTokenInvalid", err)
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec := newTestCodec(t)

	if _, err := codec.Decode("not-a-jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("Decode garbage = %v, want ErrTokenInvalid", err)
	}
}

// Decode proves authenticity only; an expired but well-signed token still
// decodes, and the expiry decision belongs to the Verifier.
func TestCodecDecodesExpiredToken(t *testing.T) {
	codec := newTestCodec(t)

	encoded, err := codec.Encode(&Claims{
		Scope: ScopeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	claims, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode expired = %v, want nil", err)
	}
	if claims.Subject != "user@example.com" {
		t.Fatalf("subject = %q", claims.Subject)
	}
}
