package service

import (
	"context"
	"time"
)

// VerificationEmailEvent asks the mail worker to send a verification email
type VerificationEmailEvent struct {
	RequestID       string    `json:"request_id,omitempty"` // For distributed tracing
	UserID          string    `json:"user_id"`
	Email           string    `json:"email"`
	Nickname        string    `json:"nickname"`
	FirstName       string    `json:"first_name,omitempty"`
	VerificationURL string    `json:"verification_url"`
	RequestedAt     time.Time `json:"requested_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishVerificationEmailEvent publishes a verification email request for async delivery
	PublishVerificationEmailEvent(ctx context.Context, event *VerificationEmailEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
