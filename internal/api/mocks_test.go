package api

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jwhitfield/folio-api/internal/domain"
	"github.com/jwhitfield/folio-api/internal/service/auth"
	"github.com/jwhitfield/folio-api/internal/store"
)

// stubProjectStore implements store.ProjectStore with per-method hooks.
type stubProjectStore struct {
	createFn    func(ctx context.Context, project *domain.Project) error
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	getBySlugFn func(ctx context.Context, slug string) (*domain.Project, error)
	listFn      func(ctx context.Context, filter store.ProjectFilter) ([]*domain.Project, error)
	updateFn    func(ctx context.Context, project *domain.Project) error
	deleteFn    func(ctx context.Context, id uuid.UUID) error
}

func (s *stubProjectStore) Create(ctx context.Context, project *domain.Project) error {
	return s.createFn(ctx, project)
}

func (s *stubProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubProjectStore) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	return s.getBySlugFn(ctx, slug)
}

func (s *stubProjectStore) List(ctx context.Context, filter store.ProjectFilter) ([]*domain.Project, error) {
	return s.listFn(ctx, filter)
}

func (s *stubProjectStore) Update(ctx context.Context, project *domain.Project) error {
	return s.updateFn(ctx, project)
}

func (s *stubProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func (s *stubProjectStore) WithTx(tx *sql.Tx) store.ProjectStore { return s }

// stubMessageStore implements store.MessageStore with per-method hooks.
type stubMessageStore struct {
	createFn       func(ctx context.Context, msg *domain.ContactMessage) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error)
	listByStatusFn func(ctx context.Context, status domain.MessageStatus, limit, offset int) ([]*domain.ContactMessage, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (s *stubMessageStore) Create(ctx context.Context, msg *domain.ContactMessage) error {
	return s.createFn(ctx, msg)
}

func (s *stubMessageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubMessageStore) ListByStatus(ctx context.Context, status domain.MessageStatus, limit, offset int) ([]*domain.ContactMessage, error) {
	return s.listByStatusFn(ctx, status, limit, offset)
}

func (s *stubMessageStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error {
	return s.updateStatusFn(ctx, id, status)
}

func (s *stubMessageStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func (s *stubMessageStore) WithTx(tx *sql.Tx) store.MessageStore { return s }

// stubUserStore implements store.UserStore with per-method hooks.
type stubUserStore struct {
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func (s *stubUserStore) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return nil, store.ErrUserNotFound
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserStore) Update(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

// stubTokenService implements auth.TokenService with per-method hooks.
type stubTokenService struct {
	generateFn func(ctx context.Context, userID uuid.UUID) (string, error)
	validateFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

func (s *stubTokenService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generateFn(ctx, userID)
}

func (s *stubTokenService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return s.validateFn(ctx, tokenString)
}
