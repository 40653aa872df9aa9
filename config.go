package credkit

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config defines a public type used by credkit APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token    TokenConfig
	Password PasswordConfig
	Cache    CacheConfig
	Audit    AuditConfig
	Mail     MailConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by credkit APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	Secret           []byte
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	EmailConfirmTTL  time.Duration
	PasswordResetTTL time.Duration
	NewPasswordTTL   time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by credkit APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory         uint32 // in KB
	Time           uint32
	Parallelism    uint8
	SaltLength     uint32
	KeyLength      uint32
	UpgradeOnLogin bool
}

/*
====================================
CACHE CONFIG
====================================
*/

// CacheConfig defines a public type used by credkit APIs.
//
// CacheConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CacheConfig struct {
	RedisPrefix string
	TTL         time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by credkit APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
MAIL CONFIG
====================================
*/

// MailConfig defines a public type used by credkit APIs.
//
// MailConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MailConfig struct {
	// SendTimeout bounds each background delivery attempt.
	SendTimeout time.Duration
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			AccessTTL:        15 * time.Minute,
			RefreshTTL:       7 * 24 * time.Hour,
			EmailConfirmTTL:  7 * 24 * time.Hour,
			PasswordResetTTL: 7 * 24 * time.Hour,
			NewPasswordTTL:   15 * time.Minute,
		},
		Password: PasswordConfig{
			Memory:         64 * 1024,
			Time:           2,
			Parallelism:    2,
			SaltLength:     16,
			KeyLength:      32,
			UpgradeOnLogin: true,
		},
		Cache: CacheConfig{
			RedisPrefix: "uc",
			TTL:         15 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Mail: MailConfig{
			SendTimeout: 30 * time.Second,
		},
	}
}

func (c Config) validate() error {
	if len(c.Token.Secret) == 0 {
		return errors.New("token secret must be configured")
	}
	if c.Token.AccessTTL <= 0 ||
		c.Token.RefreshTTL <= 0 ||
		c.Token.EmailConfirmTTL <= 0 ||
		c.Token.PasswordResetTTL <= 0 ||
		c.Token.NewPasswordTTL <= 0 {
		return errors.New("invalid token TTL configuration")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("invalid cache TTL configuration")
	}
	if c.Mail.SendTimeout <= 0 {
		return errors.New("invalid mail send timeout")
	}
	return nil
}

/*
====================================
ENVIRONMENT LOADING
====================================
*/

// FromEnv builds a Config from the process environment, loading a .env file
// first when one is present (missing files are not an error). SECRET_KEY is
// required; TTL variables are optional Go durations.
//
// FromEnv may return an error when input validation, dependency calls, or security checks fail.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return Config{}, errors.New("SECRET_KEY must be set")
	}
	cfg.Token.Secret = []byte(secret)

	durations := map[string]*time.Duration{
		"ACCESS_TOKEN_TTL":   &cfg.Token.AccessTTL,
		"REFRESH_TOKEN_TTL":  &cfg.Token.RefreshTTL,
		"EMAIL_CONFIRM_TTL":  &cfg.Token.EmailConfirmTTL,
		"PASSWORD_RESET_TTL": &cfg.Token.PasswordResetTTL,
		"NEW_PASSWORD_TTL":   &cfg.Token.NewPasswordTTL,
		"USER_CACHE_TTL":     &cfg.Cache.TTL,
	}
	for name, target := range durations {
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %v", name, err)
		}
		*target = parsed
	}

	if prefix := os.Getenv("USER_CACHE_PREFIX"); prefix != "" {
		cfg.Cache.RedisPrefix = prefix
	}

	return cfg, nil
}

// RedisAddrFromEnv returns the Redis address from REDIS_HOST/REDIS_PORT,
// defaulting to localhost:6379.
func RedisAddrFromEnv() string {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	return host + ":" + port
}
