package handlers

import (
	"net/http"

	"github.com/smartlearn/platform-api/internal/application/contact"
	"github.com/smartlearn/platform-api/internal/logger"
	"github.com/smartlearn/platform-api/internal/transport/http/dto"
	"github.com/smartlearn/platform-api/internal/transport/http/response"
)

type ContactHandler struct {
	svc *contact.Service
}

func NewContactHandler(svc *contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	msg, err := h.svc.Submit(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("message_id", msg.ID).
		Msg("contact_message_received")

	response.Message(w, http.StatusCreated, "Message received")
}
