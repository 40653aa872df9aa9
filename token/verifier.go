package token

import "time"

// Verifier defines a public type used by credkit APIs.
//
// Verifier instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Verifier struct {
	codec *Codec
	now   func() time.Time
}

// NewVerifier describes the newverifier operation and its observable behavior.
//
// NewVerifier does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewVerifier(codec *Codec) *Verifier {
	return &Verifier{
		codec: codec,
		now:   time.Now,
	}
}

// Verify decodes the token, rejects expired tokens, enforces that the token
// scope matches the expected purpose, and returns the subject. It never
// consults the user store; resolving the subject is the caller's job.
//
// Verify may return an error when input validation, dependency calls, or security checks fail.
// Verify does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (v *Verifier) Verify(tokenStr string, expected Scope) (string, error) {
	claims, err := v.codec.Decode(tokenStr)
	if err != nil {
		return "", err
	}
	if err := v.checkExpiry(claims); err != nil {
		return "", err
	}
	if claims.Scope != expected {
		return "", ErrWrongScope
	}
	return subject(claims)
}

// VerifySubject decodes the token and checks expiry but not scope. The
// email-confirmation flow historically accepted any authentic, unexpired
// token and extracted its subject; that looser contract is kept here so it
// stays an explicit, named decision rather than an accident.
//
// VerifySubject may return an error when input validation, dependency calls, or security checks fail.
// VerifySubject does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (v *Verifier) VerifySubject(tokenStr string) (string, error) {
	claims, err := v.codec.Decode(tokenStr)
	if err != nil {
		return "", err
	}
	if err := v.checkExpiry(claims); err != nil {
		return "", err
	}
	return subject(claims)
}

func (v *Verifier) checkExpiry(claims *Claims) error {
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(v.now()) {
		return ErrTokenExpired
	}
	return nil
}

func subject(claims *Claims) (string, error) {
	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
