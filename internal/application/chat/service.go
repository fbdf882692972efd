package chat

import (
	"context"

	"github.com/smartlearn/platform-api/internal/domain"
	"github.com/smartlearn/platform-api/internal/logger"
)

// Message is one turn of the tutor conversation, as the frontend sends it.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelInfo describes one upstream model for the debug listing endpoint.
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
}

/*
Upstream
--------
The generative API behind the tutor. A nil upstream means the feature is
disabled; availability is decided at construction, not by a process-wide flag.
*/
type Upstream interface {
	GenerateReply(ctx context.Context, transcript []Message) (string, error)
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// FallbackReply is returned with a 200 whenever the upstream fails. The
// frontend chat widget relies on always getting an assistant turn back.
const FallbackReply = "I'm currently unable to process your request. Please try again later."

type Service struct {
	upstream Upstream
}

func NewService(upstream Upstream) *Service {
	return &Service{upstream: upstream}
}

func (s *Service) Enabled() bool {
	return s.upstream != nil
}

// Reply forwards the transcript and returns one assistant turn.
// Upstream failures degrade to FallbackReply instead of an error.
func (s *Service) Reply(ctx context.Context, transcript []Message) (Message, error) {
	if s.upstream == nil {
		return Message{}, domain.ErrChatUnavailable()
	}
	if len(transcript) == 0 {
		return Message{}, domain.ErrMissingField("messages")
	}

	text, err := s.upstream.GenerateReply(ctx, transcript)
	if err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Msg("tutor upstream failed, serving fallback")
		return Message{Role: "assistant", Content: FallbackReply}, nil
	}

	return Message{Role: "assistant", Content: text}, nil
}

func (s *Service) Models(ctx context.Context) ([]ModelInfo, error) {
	if s.upstream == nil {
		return nil, domain.ErrChatUnavailable()
	}

	models, err := s.upstream.ListModels(ctx)
	if err != nil {
		return nil, domain.ErrInternal(err)
	}
	return models, nil
}
