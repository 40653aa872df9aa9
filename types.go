package credkit

import (
	"context"
	"io"

	internalaudit "github.com/credkit/credkit/internal/audit"
	"github.com/credkit/credkit/usercache"
)

// User is the account record exchanged with the external user store.
// The email is the identity key.
type User = usercache.User

// UserStore is the interface callers must implement to integrate credkit
// with their user database. FindByEmail returns (nil, nil) when no user
// exists for the email. Save upserts the mutable fields (password hash,
// confirmed flag, refresh token) and is expected to be atomic per record.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	Save(ctx context.Context, user *User) error
}

// EmailSender delivers confirmation and password-reset messages. Delivery
// is fire-and-forget from the service's point of view: a send failure is
// audited but never fails the credential operation that triggered it.
type EmailSender interface {
	SendConfirmation(ctx context.Context, email, username, confirmToken string) error
	SendPasswordReset(ctx context.Context, email, username, resetToken string) error
}

// TokenPair is the access+refresh pair returned by [Service.Login] and
// [Service.Refresh].
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// SignupRequest is the input for [Service.Signup].
type SignupRequest struct {
	Username string
	Email    string
	Password string
}

// ConfirmEmailResult distinguishes a first-time confirmation from the
// idempotent repeat case.
type ConfirmEmailResult int

const (
	// EmailConfirmed is an exported constant or variable used by the credential service.
	EmailConfirmed ConfirmEmailResult = iota
	// EmailAlreadyConfirmed is an exported constant or variable used by the credential service.
	EmailAlreadyConfirmed
)

// AuditEvent is a structured audit record emitted by the service.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the service's audit
// dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
