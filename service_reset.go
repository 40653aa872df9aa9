package credkit

import (
	"context"

	"github.com/credkit/credkit/token"
)

// ForgotPassword starts the reset flow for an existing account by mailing a
// password-reset token. Unknown emails fail with [ErrInvalidEmail] so the
// caller decides how much to disclose.
//
// ForgotPassword may return an error when input validation, dependency calls, or security checks fail.
// ForgotPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidEmail
	}

	resetToken, err := s.issuer.Issue(token.ScopePasswordReset, user.Email)
	if err != nil {
		return err
	}

	target, username := user.Email, user.Username
	s.sendMail(target, func(ctx context.Context) error {
		return s.mailer.SendPasswordReset(ctx, target, username, resetToken)
	})

	s.emit(ctx, eventPasswordResetRequest, true, user.Email, nil, nil)
	return nil
}

// ResetPassword exchanges a valid password-reset token for a short-lived
// new-password token. The exchange proves the caller controls the mailbox
// without yet accepting a new secret.
//
// ResetPassword may return an error when input validation, dependency calls, or security checks fail.
// ResetPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) ResetPassword(ctx context.Context, resetToken string) (string, error) {
	email, err := s.verifier.Verify(resetToken, token.ScopePasswordReset)
	if err != nil {
		return "", err
	}

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrTokenInvalid
	}

	npt, err := s.issuer.Issue(token.ScopeNewPassword, user.Email)
	if err != nil {
		return "", err
	}

	s.emit(ctx, eventPasswordResetStep, true, user.Email, nil, nil)
	return npt, nil
}

// SetNewPassword completes the reset flow: it consumes a new-password token
// and stores the hash of the replacement secret.
//
// SetNewPassword may return an error when input validation, dependency calls, or security checks fail.
// SetNewPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) SetNewPassword(ctx context.Context, newPasswordToken, newSecret string) error {
	email, err := s.verifier.Verify(newPasswordToken, token.ScopeNewPassword)
	if err != nil {
		return err
	}

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrTokenInvalid
	}

	hash, err := s.hasher.Hash(newSecret)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	if err := s.saveUser(ctx, user); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, user.Email); err != nil {
		return err
	}

	s.emit(ctx, eventPasswordChanged, true, user.Email, nil, nil)
	return nil
}
