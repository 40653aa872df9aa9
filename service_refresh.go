package credkit

import (
	"context"
	"crypto/subtle"

	"github.com/credkit/credkit/token"
)

// Refresh rotates a refresh token: the presented token must match the one
// stored on the user record, and a successful rotation replaces it with a
// freshly issued pair. Presenting a stale refresh token clears the stored
// token entirely, forcing a new login, and fails with [ErrRefreshReuse].
//
// Refresh may return an error when input validation, dependency calls, or security checks fail.
// Refresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	email, err := s.verifier.Verify(refreshToken, token.ScopeRefresh)
	if err != nil {
		s.emit(ctx, eventRefreshFailure, false, "", err, nil)
		return nil, err
	}

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.emit(ctx, eventRefreshFailure, false, email, ErrTokenInvalid, nil)
		return nil, ErrTokenInvalid
	}

	if subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		user.RefreshToken = ""
		if err := s.saveUser(ctx, user); err != nil {
			return nil, err
		}
		s.emit(ctx, eventRefreshReuseDetected, false, user.Email, ErrRefreshReuse, nil)
		return nil, ErrRefreshReuse
	}

	pair, err := s.issuePair(user.Email)
	if err != nil {
		return nil, err
	}

	user.RefreshToken = pair.RefreshToken
	if err := s.saveUser(ctx, user); err != nil {
		return nil, err
	}

	s.emit(ctx, eventRefreshSuccess, true, user.Email, nil, nil)
	return pair, nil
}
