package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlearn/platform-api/internal/transport/http/router"
)

type stubHandlers struct{}

func (stubHandlers) Healthz(w http.ResponseWriter, r *http.Request)       { w.WriteHeader(200) }
func (stubHandlers) Readyz(w http.ResponseWriter, r *http.Request)        { w.WriteHeader(200) }
func (stubHandlers) Signup(w http.ResponseWriter, r *http.Request)        { w.WriteHeader(201) }
func (stubHandlers) Login(w http.ResponseWriter, r *http.Request)         { w.WriteHeader(200) }
func (stubHandlers) Protected(w http.ResponseWriter, r *http.Request)     { w.WriteHeader(200) }
func (stubHandlers) RequestReset(w http.ResponseWriter, r *http.Request)  { w.WriteHeader(200) }
func (stubHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) }
func (stubHandlers) Chat(w http.ResponseWriter, r *http.Request)          { w.WriteHeader(200) }
func (stubHandlers) Models(w http.ResponseWriter, r *http.Request)        { w.WriteHeader(200) }
func (stubHandlers) Submit(w http.ResponseWriter, r *http.Request)        { w.WriteHeader(200) }

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h, err := router.New(router.Deps{
		Health:  stubHandlers{},
		Auth:    stubHandlers{},
		Chat:    stubHandlers{},
		Contact: stubHandlers{},
		AuthMW:  passthrough,
	})
	require.NoError(t, err)
	return h
}

func TestRoutesAreMounted(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodPost, "/api/signup", 201},
		{http.MethodPost, "/api/login", 200},
		{http.MethodGet, "/api/protected", 200},
		{http.MethodPost, "/api/request-reset", 200},
		{http.MethodPost, "/api/reset-password", 200},
		{http.MethodPost, "/api/chat", 200},
		{http.MethodGet, "/api/models", 200},
		{http.MethodPost, "/api/contact", 200},
		{http.MethodGet, "/healthz", 200},
		{http.MethodGet, "/readyz", 200},
		{http.MethodGet, "/metrics", 200},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestWrongMethodIs405(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/signup", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMissingHandlersRejected(t *testing.T) {
	_, err := router.New(router.Deps{})
	require.Error(t, err)
}
