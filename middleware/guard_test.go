package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	credkit "github.com/credkit/credkit"
	"github.com/redis/go-redis/v9"
)

type memoryStore struct {
	mu    sync.Mutex
	users map[string]*credkit.User
}

func (m *memoryStore) FindByEmail(ctx context.Context, email string) (*credkit.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	return user.Clone(), nil
}

func (m *memoryStore) Create(ctx context.Context, user *credkit.User) (*credkit.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := user.Clone()
	stored.ID = int64(len(m.users) + 1)
	m.users[stored.Email] = stored
	return stored.Clone(), nil
}

func (m *memoryStore) Save(ctx context.Context, user *credkit.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[user.Email] = user.Clone()
	return nil
}

type channelMailer struct {
	confirmations chan string
}

func (m *channelMailer) SendConfirmation(ctx context.Context, email, username, confirmToken string) error {
	m.confirmations <- confirmToken
	return nil
}

func (m *channelMailer) SendPasswordReset(ctx context.Context, email, username, resetToken string) error {
	return nil
}

func newTestService(t *testing.T) (*credkit.Service, *channelMailer) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	mailer := &channelMailer{confirmations: make(chan string, 8)}

	service, err := credkit.New().
		WithSecret([]byte("test-secret")).
		WithRedis(client).
		WithUserStore(&memoryStore{users: make(map[string]*credkit.User)}).
		WithEmailSender(mailer).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(service.Close)

	return service, mailer
}

func loginTestUser(t *testing.T, service *credkit.Service, mailer *channelMailer) string {
	t.Helper()

	ctx := context.Background()
	if _, err := service.Signup(ctx, credkit.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw123456",
	}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	var confirmToken string
	select {
	case confirmToken = <-mailer.confirmations:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for confirmation token")
	}

	if _, err := service.ConfirmEmail(ctx, confirmToken); err != nil {
		t.Fatalf("ConfirmEmail: %v", err)
	}

	pair, err := service.Login(ctx, "alice@example.com", "pw123456")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return pair.AccessToken
}

func TestGuardResolvesUserIntoContext(t *testing.T) {
	service, mailer := newTestService(t)
	accessToken := loginTestUser(t, service, mailer)

	var resolved *credkit.User
	handler := Guard(service)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			t.Fatal("user missing from request context")
		}
		resolved = user
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resolved == nil || resolved.Email != "alice@example.com" {
		t.Fatalf("resolved user = %+v", resolved)
	}
}

func TestGuardRejectsMissingToken(t *testing.T) {
	service, _ := newTestService(t)

	handler := Guard(service)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["detail"] != "Could not validate credentials" {
		t.Fatalf("detail = %q", body["detail"])
	}
}

func TestGuardRejectsMalformedAuthorizationHeader(t *testing.T) {
	service, _ := newTestService(t)

	handler := Guard(service)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for _, value := range []string{"Token abc", "Bearer", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", value)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", value, rec.Code)
		}
	}
}

func TestGuardRejectsGarbageToken(t *testing.T) {
	service, _ := newTestService(t)

	handler := Guard(service)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{credkit.ErrInvalidEmail, http.StatusUnauthorized, "Invalid email"},
		{credkit.ErrInvalidPassword, http.StatusUnauthorized, "Invalid password"},
		{credkit.ErrEmailNotConfirmed, http.StatusUnauthorized, "Email not confirmed"},
		{credkit.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{credkit.ErrTokenExpired, http.StatusUnauthorized, "Could not validate credentials"},
		{credkit.ErrTokenInvalid, http.StatusUnauthorized, "Could not validate credentials"},
		{credkit.ErrWrongScope, http.StatusUnauthorized, "Could not validate credentials"},
		{credkit.ErrRefreshReuse, http.StatusUnauthorized, "Could not validate credentials"},
		{credkit.ErrAccountExists, http.StatusConflict, "Account already exists"},
		{credkit.ErrVerification, http.StatusBadRequest, "Verification error"},
		{credkit.ErrStoreUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable"},
		{credkit.ErrCacheUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable"},
		{errors.New("surprise"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		status, message := StatusForError(tc.err)
		if status != tc.status || message != tc.message {
			t.Fatalf("StatusForError(%v) = %d %q, want %d %q", tc.err, status, message, tc.status, tc.message)
		}
	}
}

func TestStatusForErrorUnwrapsWrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), credkit.ErrEmailNotConfirmed)
	status, message := StatusForError(wrapped)
	if status != http.StatusUnauthorized || message != "Email not confirmed" {
		t.Fatalf("StatusForError(wrapped) = %d %q", status, message)
	}
}
