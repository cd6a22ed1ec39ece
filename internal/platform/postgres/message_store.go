package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwhitfield/folio-api/internal/domain"
	"github.com/jwhitfield/folio-api/internal/platform/logger"
	"github.com/jwhitfield/folio-api/internal/store"
)

// PostgresMessageStore implements the store.MessageStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMessageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMessageStore creates a new PostgreSQL implementation of the
// MessageStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMessageStore(db store.DBTX, logger *slog.Logger) *PostgresMessageStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "message_store")),
	}
}

// Ensure PostgresMessageStore implements store.MessageStore interface
var _ store.MessageStore = (*PostgresMessageStore)(nil)

// WithTx returns a new MessageStore instance backed by the given transaction.
func (s *PostgresMessageStore) WithTx(tx *sql.Tx) store.MessageStore {
	return &PostgresMessageStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.MessageStore.Create
// It saves a new contact message to the database, handling domain validation.
func (s *PostgresMessageStore) Create(ctx context.Context, msg *domain.ContactMessage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := msg.Validate(); err != nil {
		log.Warn("message validation failed during create",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()))
		return err
	}

	query := `
		INSERT INTO contact_messages (id, name, email, body, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Body,
		msg.Status,
		msg.CreatedAt,
	)

	if err != nil {
		// The email never goes in the log line; visitor PII stays out of
		// log output.
		log.Error("failed to create contact message",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()))
		return MapError(err)
	}

	log.Info("contact message created successfully",
		slog.String("message_id", msg.ID.String()))
	return nil
}

// GetByID implements store.MessageStore.GetByID
// Returns store.ErrMessageNotFound if the message does not exist.
func (s *PostgresMessageStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ContactMessage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, body, status, created_at
		FROM contact_messages
		WHERE id = $1
	`

	var msg domain.ContactMessage
	var status string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&msg.ID,
		&msg.Name,
		&msg.Email,
		&msg.Body,
		&status,
		&msg.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("contact message not found", slog.String("message_id", id.String()))
			return nil, store.ErrMessageNotFound
		}
		log.Error("failed to get contact message by ID",
			slog.String("error", err.Error()),
			slog.String("message_id", id.String()))
		return nil, MapError(err)
	}

	msg.Status = domain.MessageStatus(status)
	return &msg, nil
}

// ListByStatus implements store.MessageStore.ListByStatus
// It retrieves contact messages with the given triage status, newest first.
// Returns an empty slice if no messages match.
func (s *PostgresMessageStore) ListByStatus(
	ctx context.Context,
	status domain.MessageStatus,
	limit, offset int,
) ([]*domain.ContactMessage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, name, email, body, status, created_at
		FROM contact_messages
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		log.Error("failed to query contact messages by status",
			slog.String("error", err.Error()),
			slog.String("status", string(status)))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	messages := []*domain.ContactMessage{}
	for rows.Next() {
		var msg domain.ContactMessage
		var statusStr string

		err := rows.Scan(
			&msg.ID,
			&msg.Name,
			&msg.Email,
			&msg.Body,
			&statusStr,
			&msg.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan contact message row",
				slog.String("error", err.Error()))
			return nil, err
		}

		msg.Status = domain.MessageStatus(statusStr)
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed contact messages by status",
		slog.String("status", string(status)),
		slog.Int("count", len(messages)))
	return messages, nil
}

// UpdateStatus implements store.MessageStore.UpdateStatus
// Returns store.ErrMessageNotFound if the message does not exist.
// Returns validation errors if the status is invalid.
func (s *PostgresMessageStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.MessageStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate before touching the database.
	probe := domain.ContactMessage{Status: status}
	if err := probe.UpdateStatus(status); err != nil {
		log.Warn("invalid message status for update",
			slog.String("message_id", id.String()),
			slog.String("status", string(status)))
		return err
	}

	query := `
		UPDATE contact_messages
		SET status = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		log.Error("failed to update contact message status",
			slog.String("error", err.Error()),
			slog.String("message_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "message"); err != nil {
		log.Debug("contact message not found for status update",
			slog.String("message_id", id.String()))
		return store.ErrMessageNotFound
	}

	log.Info("contact message status updated successfully",
		slog.String("message_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// Delete implements store.MessageStore.Delete
// Returns store.ErrMessageNotFound if the message does not exist.
func (s *PostgresMessageStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete contact message",
			slog.String("error", err.Error()),
			slog.String("message_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "message"); err != nil {
		log.Debug("contact message not found for delete",
			slog.String("message_id", id.String()))
		return store.ErrMessageNotFound
	}

	log.Info("contact message deleted successfully",
		slog.String("message_id", id.String()))
	return nil
}
