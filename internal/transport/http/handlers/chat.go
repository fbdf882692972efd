package handlers

import (
	"net/http"

	"github.com/smartlearn/platform-api/internal/application/chat"
	"github.com/smartlearn/platform-api/internal/transport/http/dto"
	"github.com/smartlearn/platform-api/internal/transport/http/middleware"
	"github.com/smartlearn/platform-api/internal/transport/http/response"
)

type ChatHandler struct {
	svc *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Chat proxies the transcript to the tutor model. When the upstream fails
// the service substitutes a canned reply, so a 200 here does not mean the
// model answered.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	transcript := make([]chat.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		transcript = append(transcript, chat.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := h.svc.Reply(r.Context(), transcript)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if reply.Content == chat.FallbackReply {
		middleware.ChatRepliesTotal.WithLabelValues("fallback").Inc()
	} else {
		middleware.ChatRepliesTotal.WithLabelValues("upstream").Inc()
	}

	response.WriteJSON(w, http.StatusOK, dto.ChatResponse{
		Message: dto.ChatTurn{Role: reply.Role, Content: reply.Content},
	})
}

// Models lists the upstream models; handy when rotating the configured one.
func (h *ChatHandler) Models(w http.ResponseWriter, r *http.Request) {
	models, err := h.svc.Models(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]any{"models": models})
}
