package models

import "agency-support-chat/internal/session"

// ChatRequest is one widget message. SessionID is optional; the server
// generates one when absent so the client can resume the conversation.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the turn result returned to the widget.
type ChatResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	SessionID   string `json:"session_id"`
	Intent      string `json:"intent"`
	ContextUsed bool   `json:"context_used"`
}

// SessionHistoryResponse wraps a session transcript.
type SessionHistoryResponse struct {
	ID           string            `json:"id"`
	Messages     []session.Message `json:"messages"`
	CreatedAt    string            `json:"created_at"`
	LastActivity string            `json:"last_activity"`
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
