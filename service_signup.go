package credkit

import (
	"context"
	"fmt"

	"github.com/credkit/credkit/token"
)

// Signup creates an unconfirmed account for the request's email, hashes the
// secret, and dispatches a confirmation email carrying an email-confirm
// token. An existing account for the email fails with [ErrAccountExists].
//
// Signup may return an error when input validation, dependency calls, or security checks fail.
// Signup does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	existing, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.emit(ctx, eventSignupConflict, false, req.Email, ErrAccountExists, nil)
		return nil, ErrAccountExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Confirmed:    false,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.dispatchConfirmation(created); err != nil {
		return nil, err
	}

	s.emit(ctx, eventSignupSuccess, true, created.Email, nil, nil)
	return created, nil
}

// RequestEmailConfirmation re-sends the confirmation email for an existing,
// not yet confirmed account. It reports false without sending when the
// account is already confirmed.
//
// RequestEmailConfirmation may return an error when input validation, dependency calls, or security checks fail.
// RequestEmailConfirmation does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) RequestEmailConfirmation(ctx context.Context, email string) (bool, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrInvalidEmail
	}
	if user.Confirmed {
		return false, nil
	}

	if err := s.dispatchConfirmation(user); err != nil {
		return false, err
	}

	s.emit(ctx, eventConfirmationRequest, true, user.Email, nil, nil)
	return true, nil
}

func (s *Service) dispatchConfirmation(user *User) error {
	confirmToken, err := s.issuer.Issue(token.ScopeEmailConfirm, user.Email)
	if err != nil {
		return err
	}

	email, username := user.Email, user.Username
	s.sendMail(email, func(ctx context.Context) error {
		return s.mailer.SendConfirmation(ctx, email, username, confirmToken)
	})
	return nil
}
