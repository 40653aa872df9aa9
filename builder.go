package credkit

import (
	"errors"
	"time"

	internalaudit "github.com/credkit/credkit/internal/audit"
	"github.com/credkit/credkit/password"
	"github.com/credkit/credkit/token"
	"github.com/credkit/credkit/usercache"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by credkit APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	users  UserStore
	mailer EmailSender

	auditSink AuditSink
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration wholesale.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithSecret sets the token signing secret without replacing the rest of
// the default configuration.
func (b *Builder) WithSecret(secret []byte) *Builder {
	b.config.Token.Secret = secret
	return b
}

// WithRedis sets the Redis client backing the user cache.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserStore sets the external user store collaborator.
func (b *Builder) WithUserStore(store UserStore) *Builder {
	b.users = store
	return b
}

// WithEmailSender sets the external email delivery collaborator.
func (b *Builder) WithEmailSender(mailer EmailSender) *Builder {
	b.mailer = mailer
	return b
}

// WithAuditSink sets the sink receiving audit events.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build validates the configuration and wires the service. Construction is
// allocation-only; no I/O happens until Service methods are called.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Service, error) {
	if b.redis == nil {
		return nil, errors.New("build requires a redis client")
	}
	if b.users == nil {
		return nil, errors.New("build requires a user store")
	}
	if b.mailer == nil {
		return nil, errors.New("build requires an email sender")
	}
	if err := b.config.validate(); err != nil {
		return nil, err
	}

	codec, err := token.NewCodec(b.config.Token.Secret)
	if err != nil {
		return nil, err
	}

	issuer, err := token.NewIssuer(codec, token.Lifetimes{
		Access:        b.config.Token.AccessTTL,
		Refresh:       b.config.Token.RefreshTTL,
		EmailConfirm:  b.config.Token.EmailConfirmTTL,
		PasswordReset: b.config.Token.PasswordResetTTL,
		NewPassword:   b.config.Token.NewPasswordTTL,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.Config{
		Memory:      b.config.Password.Memory,
		Time:        b.config.Password.Time,
		Parallelism: b.config.Password.Parallelism,
		SaltLength:  b.config.Password.SaltLength,
		KeyLength:   b.config.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	dispatcher := internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    b.config.Audit.Enabled,
		BufferSize: b.config.Audit.BufferSize,
		DropIfFull: b.config.Audit.DropIfFull,
	}, b.auditSink)

	return &Service{
		config:   b.config,
		issuer:   issuer,
		verifier: token.NewVerifier(codec),
		hasher:   hasher,
		cache:    usercache.New(b.redis, b.config.Cache.RedisPrefix, b.config.Cache.TTL),
		users:    b.users,
		mailer:   b.mailer,
		audit:    dispatcher,
		now:      time.Now,
	}, nil
}
