package models

import "time"

type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// StatusResponse is the JSON acknowledgment of /send and the error body of
// /messages.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type MessagesResponse struct {
	Messages []string `json:"messages"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
