package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jwhitfield/folio-api/internal/domain"
)

// ProjectFilter narrows the result set of ProjectStore.List.
type ProjectFilter struct {
	// PublishedOnly restricts the listing to projects visible on the public
	// site. Admin listings leave it false.
	PublishedOnly bool

	Limit  int
	Offset int
}

// ProjectStore defines the interface for project data persistence.
type ProjectStore interface {
	// Create saves a new project to the store.
	// It handles domain validation internally.
	// Returns ErrSlugExists if the slug is already taken.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID retrieves a project by its unique ID.
	// Returns ErrProjectNotFound if the project does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	// GetBySlug retrieves a project by its URL slug.
	// Returns ErrProjectNotFound if the project does not exist.
	GetBySlug(ctx context.Context, slug string) (*domain.Project, error)

	// List retrieves projects ordered by creation time, newest first.
	// Returns an empty slice if no projects match the filter.
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, error)

	// Update saves changes to an existing project.
	// Returns ErrProjectNotFound if the project does not exist.
	// Returns ErrSlugExists if updating to a slug that is already taken.
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes a project from the store by its ID.
	// Returns ErrProjectNotFound if the project does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ProjectStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller.
	WithTx(tx *sql.Tx) ProjectStore
}
