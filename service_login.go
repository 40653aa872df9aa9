package credkit

import (
	"context"

	"github.com/credkit/credkit/token"
	"github.com/credkit/credkit/usercache"
)

// Login verifies the email/password pair and, on success, issues a fresh
// token pair and persists the refresh token on the user record. Unknown
// emails fail with [ErrInvalidEmail], unconfirmed accounts with
// [ErrEmailNotConfirmed], and wrong passwords with [ErrInvalidPassword].
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) Login(ctx context.Context, email, secret string) (*TokenPair, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.emit(ctx, eventLoginFailure, false, email, ErrInvalidEmail, nil)
		return nil, ErrInvalidEmail
	}
	if !user.Confirmed {
		s.emit(ctx, eventLoginFailure, false, email, ErrEmailNotConfirmed, nil)
		return nil, ErrEmailNotConfirmed
	}
	if !s.hasher.Verify(secret, user.PasswordHash) {
		s.emit(ctx, eventLoginFailure, false, email, ErrInvalidPassword, nil)
		return nil, ErrInvalidPassword
	}

	if s.config.Password.UpgradeOnLogin {
		s.maybeUpgradeHash(ctx, user, secret)
	}

	pair, err := s.issuePair(user.Email)
	if err != nil {
		return nil, err
	}

	user.RefreshToken = pair.RefreshToken
	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}

	s.emit(ctx, eventLoginSuccess, true, user.Email, nil, nil)
	return pair, nil
}

// maybeUpgradeHash transparently re-hashes the secret when the stored hash
// was produced with weaker parameters than the current configuration.
// Failure to upgrade never fails the login.
func (s *Service) maybeUpgradeHash(ctx context.Context, user *User, secret string) {
	upgrade, err := s.hasher.NeedsUpgrade(user.PasswordHash)
	if err != nil || !upgrade {
		return
	}
	rehash, err := s.hasher.Hash(secret)
	if err != nil {
		return
	}
	user.PasswordHash = rehash
}

// Authenticate resolves the user behind an access token, consulting the
// user cache before the store. Tokens with the wrong scope, an expired
// deadline, or a subject no account matches are rejected.
//
// Authenticate may return an error when input validation, dependency calls, or security checks fail.
// Authenticate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*User, error) {
	email, err := s.verifier.Verify(accessToken, token.ScopeAccess)
	if err != nil {
		s.emit(ctx, eventSessionRejected, false, "", err, nil)
		return nil, err
	}

	user, err := s.cache.Resolve(ctx, email, usercache.Loader(s.users.FindByEmail))
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.emit(ctx, eventSessionRejected, false, email, ErrTokenInvalid, nil)
		return nil, ErrTokenInvalid
	}

	s.emit(ctx, eventSessionResolved, true, user.Email, nil, nil)
	return user, nil
}
