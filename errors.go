package credkit

import (
	"errors"
	"fmt"

	"github.com/credkit/credkit/token"
	"github.com/credkit/credkit/usercache"
)

var (
	// ErrInvalidCredentials is an exported constant or variable used by the credential service.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidEmail wraps ErrInvalidCredentials; the boundary distinguishes
	// the two login failure messages, so both must stay matchable on the
	// shared parent.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email", ErrInvalidCredentials)
	// ErrInvalidPassword is an exported constant or variable used by the credential service.
	ErrInvalidPassword = fmt.Errorf("%w: invalid password", ErrInvalidCredentials)
	// ErrEmailNotConfirmed is an exported constant or variable used by the credential service.
	ErrEmailNotConfirmed = errors.New("email not confirmed")
	// ErrAccountExists is an exported constant or variable used by the credential service.
	ErrAccountExists = errors.New("account already exists")
	// ErrVerification is an exported constant or variable used by the credential service.
	ErrVerification = errors.New("verification error")
	// ErrStoreUnavailable is an exported constant or variable used by the credential service.
	ErrStoreUnavailable = errors.New("user store unavailable")
	// ErrServiceNotReady is an exported constant or variable used by the credential service.
	ErrServiceNotReady = errors.New("service not initialized")

	// ErrTokenInvalid is an exported constant or variable used by the credential service.
	ErrTokenInvalid = token.ErrTokenInvalid
	// ErrTokenExpired is an exported constant or variable used by the credential service.
	ErrTokenExpired = token.ErrTokenExpired
	// ErrWrongScope matches ErrTokenInvalid under errors.Is; the distinction
	// exists for logging and tests, not for callers.
	ErrWrongScope = token.ErrWrongScope
	// ErrRefreshReuse wraps ErrTokenInvalid: presenting a superseded refresh
	// token is reported to callers as a plain invalid token.
	ErrRefreshReuse = fmt.Errorf("%w: refresh token reuse detected", token.ErrTokenInvalid)

	// ErrCacheUnavailable is an exported constant or variable used by the credential service.
	ErrCacheUnavailable = usercache.ErrCacheUnavailable
)
