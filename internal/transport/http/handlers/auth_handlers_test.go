package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlearn/platform-api/internal/application/auth"
	"github.com/smartlearn/platform-api/internal/application/chat"
	"github.com/smartlearn/platform-api/internal/application/contact"
	"github.com/smartlearn/platform-api/internal/infrastructure/memory"
	"github.com/smartlearn/platform-api/internal/infrastructure/security"
	"github.com/smartlearn/platform-api/internal/transport/http/handlers"
	"github.com/smartlearn/platform-api/internal/transport/http/middleware"
	"github.com/smartlearn/platform-api/internal/transport/http/response"
	"github.com/smartlearn/platform-api/internal/transport/http/router"
)

// capturePublisher records events so tests can read the reset code.
type capturePublisher struct {
	mu     sync.Mutex
	resets []auth.PasswordResetEvent
}

func (p *capturePublisher) PublishPasswordReset(ctx context.Context, evt auth.PasswordResetEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resets = append(p.resets, evt)
	return nil
}

func (p *capturePublisher) PublishContactMessage(ctx context.Context, evt contact.MessageReceivedEvent) error {
	return nil
}

func (p *capturePublisher) lastReset(t *testing.T) auth.PasswordResetEvent {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.resets)
	return p.resets[len(p.resets)-1]
}

type env struct {
	handler http.Handler
	pub     *capturePublisher
}

func newEnv(t *testing.T) *env {
	t.Helper()

	signer := security.NewJWTSigner("test-secret", "platform-api-test")
	hasher := security.NewBcryptHasher(4) // min cost, tests only
	pub := &capturePublisher{}

	authSvc := auth.NewService(
		memory.NewUserRepo(),
		hasher,
		signer,
		memory.NewResetCodeStore(),
		pub,
		auth.Config{AccessTTL: time.Hour, ResetCodeTTL: 15 * time.Minute},
	)

	chatSvc := chat.NewService(nil) // tutor disabled in these tests
	contactSvc := contact.NewService(memory.NewContactRepo(), pub)

	h, err := router.New(router.Deps{
		Health:  handlers.NewHealthHandler(nil),
		Auth:    handlers.NewAuthHandler(authSvc),
		Chat:    handlers.NewChatHandler(chatSvc),
		Contact: handlers.NewContactHandler(contactSvc),
		AuthMW:  middleware.Auth(signer, response.WriteError),
	})
	require.NoError(t, err)

	return &env{handler: h, pub: pub}
}

func (e *env) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func msgOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func tokenOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestSignupLoginProtectedFlow(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/signup", `{"username":"alice@example.com","password":"hunter2hunter2"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User registered", msgOf(t, rec))

	// duplicate signup
	rec = e.do(t, http.MethodPost, "/api/signup", `{"username":"alice@example.com","password":"hunter2hunter2"}`, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already exists", msgOf(t, rec))

	rec = e.do(t, http.MethodPost, "/api/login", `{"username":"alice@example.com","password":"hunter2hunter2"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	token := tokenOf(t, rec)

	rec = e.do(t, http.MethodGet, "/api/protected", "", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello alice@example.com, you are authorized!", msgOf(t, rec))
}

func TestLoginFailures(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/signup", `{"username":"bob@example.com","password":"correct-horse"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("unknown user", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/login", `{"username":"nobody@example.com","password":"whatever"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "User not found", msgOf(t, rec))
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/login", `{"username":"bob@example.com","password":"wrong"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid credentials", msgOf(t, rec))
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/login", `{"username":"bob@example.com"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProtectedRejections(t *testing.T) {
	e := newEnv(t)

	t.Run("no header", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/api/protected", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "No token provided", msgOf(t, rec))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/api/protected", "", map[string]string{"Authorization": "Basic abc"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := e.do(t, http.MethodGet, "/api/protected", "", map[string]string{"Authorization": "Bearer not.a.jwt"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		signer := security.NewJWTSigner("test-secret", "platform-api-test")
		stale, err := signer.Sign("u1", "alice@example.com", -time.Minute)
		require.NoError(t, err)

		rec := e.do(t, http.MethodGet, "/api/protected", "", map[string]string{"Authorization": "Bearer " + stale})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Token is expired", msgOf(t, rec))
	})
}

func TestPasswordResetFlow(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/signup", `{"username":"carol@example.com","password":"old-password-1"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Requesting a reset for an unknown email still answers 200.
	rec = e.do(t, http.MethodPost, "/api/request-reset", `{"email":"ghost@example.com"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/request-reset", `{"email":"carol@example.com"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	evt := e.pub.lastReset(t)
	require.Len(t, evt.Code, 6)

	t.Run("wrong code rejected", func(t *testing.T) {
		bad := "000000"
		if evt.Code == bad {
			bad = "000001"
		}
		rec := e.do(t, http.MethodPost, "/api/reset-password",
			`{"email":"carol@example.com","code":"`+bad+`","newPassword":"new-password-1"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	rec = e.do(t, http.MethodPost, "/api/reset-password",
		`{"email":"carol@example.com","code":"`+evt.Code+`","newPassword":"new-password-1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Code is single use.
	rec = e.do(t, http.MethodPost, "/api/reset-password",
		`{"email":"carol@example.com","code":"`+evt.Code+`","newPassword":"another-pass-2"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Old password no longer works, new one does.
	rec = e.do(t, http.MethodPost, "/api/login", `{"username":"carol@example.com","password":"old-password-1"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/login", `{"username":"carol@example.com","password":"new-password-1"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChatDisabledAnswers501(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/chat", `{"messages":[{"role":"user","content":"hi"}]}`, nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, "AI tutor is not available", msgOf(t, rec))

	rec = e.do(t, http.MethodGet, "/api/models", "", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestContactSubmit(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/api/contact",
		`{"name":"Dana","email":"dana@example.com","message":"love the platform"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Message received", msgOf(t, rec))

	rec = e.do(t, http.MethodPost, "/api/contact", `{"name":"","email":"dana@example.com","message":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
