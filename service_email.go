package credkit

import "context"

// ConfirmEmail marks the account named by the confirmation token as
// confirmed. Tokens whose subject matches no account fail with
// [ErrVerification]; confirming an already confirmed account is a no-op
// reported as [EmailAlreadyConfirmed].
//
// ConfirmEmail may return an error when input validation, dependency calls, or security checks fail.
// ConfirmEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) ConfirmEmail(ctx context.Context, confirmToken string) (ConfirmEmailResult, error) {
	email, err := s.verifier.VerifySubject(confirmToken)
	if err != nil {
		s.emit(ctx, eventEmailConfirmFailure, false, "", err, nil)
		return 0, err
	}

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if user == nil {
		s.emit(ctx, eventEmailConfirmFailure, false, email, ErrVerification, nil)
		return 0, ErrVerification
	}
	if user.Confirmed {
		return EmailAlreadyConfirmed, nil
	}

	user.Confirmed = true
	if err := s.saveUser(ctx, user); err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(ctx, user.Email); err != nil {
		return 0, err
	}

	s.emit(ctx, eventEmailConfirmed, true, user.Email, nil, nil)
	return EmailConfirmed, nil
}
