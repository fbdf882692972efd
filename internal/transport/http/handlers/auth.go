package handlers

import (
	"fmt"
	"net/http"

	"github.com/smartlearn/platform-api/internal/application/auth"
	"github.com/smartlearn/platform-api/internal/domain"
	"github.com/smartlearn/platform-api/internal/logger"
	"github.com/smartlearn/platform-api/internal/transport/http/dto"
	"github.com/smartlearn/platform-api/internal/transport/http/middleware"
	"github.com/smartlearn/platform-api/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Str("username", u.Username).
		Msg("user_registered")

	response.Message(w, http.StatusCreated, "User registered")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case domain.Is(err, "user_not_found"):
			middleware.LoginAttemptsTotal.WithLabelValues("user_not_found").Inc()
		case domain.Is(err, "invalid_credentials"):
			middleware.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		default:
			middleware.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		response.WriteError(w, r, err)
		return
	}

	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()
	response.WriteJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// Protected greets the authenticated user; it exists so the frontend can
// probe whether its stored token is still good.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	response.Message(w, http.StatusOK, fmt.Sprintf("Hello %s, you are authorized!", username))
}

// RequestReset always answers 200 so the route cannot be used to probe
// which emails have accounts.
func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req dto.RequestResetRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "If that account exists, a reset code has been sent")
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("username", req.Email).
		Msg("password_reset_completed")

	response.Message(w, http.StatusOK, "Password has been reset")
}
