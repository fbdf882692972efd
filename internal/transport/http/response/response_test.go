package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlearn/platform-api/internal/domain"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) MessageBody {
	t.Helper()
	var body MessageBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteError_KindMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", domain.ErrUserNotFound(), http.StatusBadRequest, "User not found"},
		{"unauthenticated", domain.ErrTokenMissing(), http.StatusUnauthorized, "No token provided"},
		{"forbidden", domain.ErrTokenExpired(), http.StatusForbidden, "Token is expired"},
		{"conflict", domain.ErrUserAlreadyExists(), http.StatusConflict, "User already exists"},
		{"rate limited", domain.ErrRateLimited("login"), http.StatusTooManyRequests, "Too many requests"},
		{"not implemented", domain.ErrChatUnavailable(), http.StatusNotImplemented, "AI tutor is not available"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)

			WriteError(rec, req, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantMsg, decodeBody(t, rec).Message)
		})
	}
}

func TestWriteError_InternalNeverLeaksCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	WriteError(rec, req, domain.ErrStoreUnavailable(assert.AnError))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error. Please try again.", decodeBody(t, rec).Message)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestWriteError_NonDomainErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	WriteError(rec, req, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error. Please try again.", decodeBody(t, rec).Message)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Username string `json:"username"`
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"alice"}`))
		var p payload
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, "alice", p.Username)
	})

	t.Run("garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
		var p payload
		err := DecodeJSON(req, &p)
		require.Error(t, err)
		assert.True(t, domain.Is(err, "invalid_json"))
	})

	t.Run("trailing data", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"a"}{"username":"b"}`))
		var p payload
		err := DecodeJSON(req, &p)
		require.Error(t, err)
		assert.True(t, domain.Is(err, "invalid_json"))
	})
}
