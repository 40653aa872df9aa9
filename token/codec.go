package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Scope defines a public type used by credkit APIs.
//
// Scope tags the single purpose a token may be used for. It is set exactly
// once at issuance and enforced by the Verifier independently of signature
// and expiry checks.
type Scope string

const (
	// ScopeAccess is an exported constant or variable used by the credential service.
	ScopeAccess Scope = "access_token"
	// ScopeRefresh is an exported constant or variable used by the credential service.
	ScopeRefresh Scope = "refresh_token"
	// ScopeEmailConfirm is an exported constant or variable used by the credential service.
	ScopeEmailConfirm Scope = "email_confirm"
	// ScopePasswordReset is an exported constant or variable used by the credential service.
	ScopePasswordReset Scope = "password_reset_token"
	// ScopeNewPassword is an exported constant or variable used by the credential service.
	ScopeNewPassword Scope = "new_password_token"
)

var (
	// ErrTokenInvalid is an exported constant or variable used by the credential service.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is an exported constant or variable used by the credential service.
	ErrTokenExpired = errors.New("token expired")
	// ErrWrongScope wraps ErrTokenInvalid so the scope distinction stays
	// internal while callers that flatten on ErrTokenInvalid keep working.
	ErrWrongScope = fmt.Errorf("%w: unexpected token scope", ErrTokenInvalid)
	// ErrInvalidLifetime is an exported constant or variable used by the credential service.
	ErrInvalidLifetime = errors.New("token lifetime must be positive")
)

// Claims defines a public type used by credkit APIs.
//
// Claims instances are intended to be configured during issuance and then
// treated as immutable for the lifetime of the encoded token.
type Claims struct {
	Scope Scope `json:"scope"`
	jwt.RegisteredClaims
}

// Codec defines a public type used by credkit APIs.
//
// Codec instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Codec struct {
	secret []byte
}

// NewCodec describes the newcodec operation and its observable behavior.
//
// NewCodec may return an error when input validation, dependency calls, or security checks fail.
// NewCodec does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("hs256 requires a shared secret")
	}
	return &Codec{secret: secret}, nil
}

// Encode serializes claims into a compact signed HS256 token.
//
// Encode may return an error when input validation, dependency calls, or security checks fail.
// Encode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Codec) Encode(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies the token's signature and structure and returns the
// embedded claims. Decode checks authenticity only; expiry and scope are
// the Verifier's job.
//
// Decode may return an error when input validation, dependency calls, or security checks fail.
// Decode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Codec) Decode(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	parsed, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
