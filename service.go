package credkit

import (
	"context"
	"fmt"
	"sync"
	"time"

	internalaudit "github.com/credkit/credkit/internal/audit"
	"github.com/credkit/credkit/password"
	"github.com/credkit/credkit/token"
	"github.com/credkit/credkit/usercache"
)

// Audit event names emitted by the service.
const (
	eventSignupSuccess        = "signup_success"
	eventSignupConflict       = "signup_conflict"
	eventLoginSuccess         = "login_success"
	eventLoginFailure         = "login_failure"
	eventSessionResolved      = "session_resolved"
	eventSessionRejected      = "session_rejected"
	eventRefreshSuccess       = "refresh_success"
	eventRefreshFailure       = "refresh_failure"
	eventRefreshReuseDetected = "refresh_reuse_detected"
	eventEmailConfirmed       = "email_confirmed"
	eventEmailConfirmFailure  = "email_confirm_failure"
	eventConfirmationRequest  = "confirmation_requested"
	eventPasswordResetRequest = "password_reset_requested"
	eventPasswordResetStep    = "password_reset_verified"
	eventPasswordChanged      = "password_changed"
	eventMailDeliveryFailure  = "mail_delivery_failure"
)

// Service is the credential façade combining token issuance and
// verification, password hashing, the user cache, and the external store
// and mailer collaborators. One Service is constructed per process via
// [Builder.Build] and passed by reference to request handlers; there is no
// implicit global instance.
//
// Service instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Service struct {
	config   Config
	issuer   *token.Issuer
	verifier *token.Verifier
	hasher   *password.Hasher
	cache    *usercache.Cache
	users    UserStore
	mailer   EmailSender
	audit    *internalaudit.Dispatcher
	now      func() time.Time

	mailWG sync.WaitGroup
}

// Close flushes background email deliveries and the audit dispatcher.
// The Service must not be used after Close.
func (s *Service) Close() {
	s.mailWG.Wait()
	s.audit.Close()
}

// Cache exposes the user cache for callers that need explicit invalidation
// after out-of-band user updates.
func (s *Service) Cache() *usercache.Cache {
	return s.cache
}

func (s *Service) emit(ctx context.Context, eventType string, success bool, email string, cause error, metadata map[string]string) {
	event := internalaudit.Event{
		Timestamp: s.now(),
		EventType: eventType,
		Email:     email,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	s.audit.Emit(ctx, event)
}

// findByEmail wraps store failures so the boundary can map them to a 5xx
// without inspecting collaborator-specific errors.
func (s *Service) findByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return user, nil
}

func (s *Service) saveUser(ctx context.Context, user *User) error {
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// sendMail dispatches a delivery attempt in the background. Delivery
// failure never fails the triggering operation; it is audited instead.
func (s *Service) sendMail(email string, send func(ctx context.Context) error) {
	s.mailWG.Add(1)
	go func() {
		defer s.mailWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.config.Mail.SendTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			s.emit(ctx, eventMailDeliveryFailure, false, email, err, nil)
		}
	}()
}

func (s *Service) issuePair(subject string) (*TokenPair, error) {
	access, err := s.issuer.Issue(token.ScopeAccess, subject)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.Issue(token.ScopeRefresh, subject)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
