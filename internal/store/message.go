package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jwhitfield/folio-api/internal/domain"
)

// MessageStore defines the interface for contact message persistence.
type MessageStore interface {
	// Create saves a new contact message to the store.
	// It handles domain validation internally.
	Create(ctx context.Context, msg *domain.ContactMessage) error

	// GetByID retrieves a contact message by its unique ID.
	// Returns ErrMessageNotFound if the message does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error)

	// ListByStatus retrieves contact messages with the given triage status,
	// newest first. Returns an empty slice if no messages match.
	ListByStatus(ctx context.Context, status domain.MessageStatus, limit, offset int) ([]*domain.ContactMessage, error)

	// UpdateStatus updates the triage status of an existing message.
	// Returns ErrMessageNotFound if the message does not exist.
	// Returns validation errors if the status is invalid.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error

	// Delete removes a contact message from the store by its ID.
	// Returns ErrMessageNotFound if the message does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new MessageStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller.
	WithTx(tx *sql.Tx) MessageStore
}
