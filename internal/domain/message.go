package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MessageStatus represents the triage state of a contact message
type MessageStatus string

// Possible message status values
const (
	MessageStatusNew      MessageStatus = "new"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusArchived MessageStatus = "archived"
)

// Common validation errors for ContactMessage
var (
	ErrEmptyMessageID       = errors.New("message ID cannot be empty")
	ErrEmptyMessageName     = errors.New("message sender name cannot be empty")
	ErrEmptyMessageBody     = errors.New("message body cannot be empty")
	ErrMessageBodyTooLong   = errors.New("message body must be at most 5000 characters long")
	ErrInvalidMessageStatus = errors.New("invalid message status")
)

// ContactMessage represents a message submitted through the site's contact
// form. It tracks the sender details and the owner's triage state.
type ContactMessage struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Body      string        `json:"body"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewContactMessage creates a new ContactMessage with the given sender name,
// reply address, and body. It generates a new UUID for the message ID, sets
// the status to new, and sets the creation timestamp.
// Returns an error if validation fails.
func NewContactMessage(name, email, body string) (*ContactMessage, error) {
	msg := &ContactMessage{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Body:      body,
		Status:    MessageStatusNew,
		CreatedAt: time.Now().UTC(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks if the ContactMessage has valid data.
// Returns an error if any field fails validation.
func (m *ContactMessage) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMessageID
	}

	if m.Name == "" {
		return ErrEmptyMessageName
	}

	if m.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(m.Email) {
		return ErrInvalidEmail
	}

	if m.Body == "" {
		return ErrEmptyMessageBody
	}

	if len(m.Body) > 5000 {
		return ErrMessageBodyTooLong
	}

	if !isValidMessageStatus(m.Status) {
		return ErrInvalidMessageStatus
	}

	return nil
}

// UpdateStatus updates the message's triage status.
// Returns an error if the new status is invalid.
func (m *ContactMessage) UpdateStatus(status MessageStatus) error {
	if !isValidMessageStatus(status) {
		return ErrInvalidMessageStatus
	}

	m.Status = status
	return nil
}

// isValidMessageStatus checks if the given status is a valid MessageStatus.
func isValidMessageStatus(status MessageStatus) bool {
	switch status {
	case MessageStatusNew, MessageStatusRead, MessageStatusArchived:
		return true
	default:
		return false
	}
}
