package dto

type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages []ChatTurn `json:"messages" validate:"required,min=1,dive"`
}

// ChatResponse carries one assistant turn back, under "message" like the
// widget expects.
type ChatResponse struct {
	Message ChatTurn `json:"message"`
}
