package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Lifetimes holds the per-purpose default token lifetimes.
//
// Lifetimes instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Lifetimes struct {
	Access        time.Duration
	Refresh       time.Duration
	EmailConfirm  time.Duration
	PasswordReset time.Duration
	NewPassword   time.Duration
}

// DefaultLifetimes returns the stock purpose-to-lifetime table.
func DefaultLifetimes() Lifetimes {
	return Lifetimes{
		Access:        15 * time.Minute,
		Refresh:       7 * 24 * time.Hour,
		EmailConfirm:  7 * 24 * time.Hour,
		PasswordReset: 7 * 24 * time.Hour,
		NewPassword:   15 * time.Minute,
	}
}

func (l Lifetimes) forScope(scope Scope) (time.Duration, error) {
	switch scope {
	case ScopeAccess:
		return l.Access, nil
	case ScopeRefresh:
		return l.Refresh, nil
	case ScopeEmailConfirm:
		return l.EmailConfirm, nil
	case ScopePasswordReset:
		return l.PasswordReset, nil
	case ScopeNewPassword:
		return l.NewPassword, nil
	default:
		return 0, fmt.Errorf("unsupported token scope: %q", scope)
	}
}

// Issuer defines a public type used by credkit APIs.
//
// Issuer instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Issuer struct {
	codec     *Codec
	lifetimes Lifetimes
	now       func() time.Time
}

// NewIssuer describes the newissuer operation and its observable behavior.
//
// NewIssuer may return an error when input validation, dependency calls, or security checks fail.
// NewIssuer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewIssuer(codec *Codec, lifetimes Lifetimes) (*Issuer, error) {
	if codec == nil {
		return nil, errors.New("issuer requires a codec")
	}
	if lifetimes.Access <= 0 ||
		lifetimes.Refresh <= 0 ||
		lifetimes.EmailConfirm <= 0 ||
		lifetimes.PasswordReset <= 0 ||
		lifetimes.NewPassword <= 0 {
		return nil, ErrInvalidLifetime
	}

	return &Issuer{
		codec:     codec,
		lifetimes: lifetimes,
		now:       time.Now,
	}, nil
}

// Issue builds a claim set for the given purpose with iat = now,
// exp = now + the purpose's default lifetime, and the purpose as scope,
// then encodes it.
//
// Issue may return an error when input validation, dependency calls, or security checks fail.
// Issue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (i *Issuer) Issue(scope Scope, subject string) (string, error) {
	lifetime, err := i.lifetimes.forScope(scope)
	if err != nil {
		return "", err
	}
	return i.issue(scope, subject, lifetime)
}

// IssueWithLifetime issues a token with an explicit lifetime instead of the
// purpose default. Overrides are limited to the access and refresh purposes;
// the long-lived flow tokens always use their configured lifetimes.
//
// IssueWithLifetime may return an error when input validation, dependency calls, or security checks fail.
// IssueWithLifetime does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (i *Issuer) IssueWithLifetime(scope Scope, subject string, lifetime time.Duration) (string, error) {
	if scope != ScopeAccess && scope != ScopeRefresh {
		return "", fmt.Errorf("lifetime override is limited to access and refresh tokens, got %q", scope)
	}
	return i.issue(scope, subject, lifetime)
}

func (i *Issuer) issue(scope Scope, subject string, lifetime time.Duration) (string, error) {
	if lifetime <= 0 {
		return "", ErrInvalidLifetime
	}
	if subject == "" {
		return "", errors.New("token subject must not be empty")
	}

	now := i.now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	return i.codec.Encode(claims)
}
