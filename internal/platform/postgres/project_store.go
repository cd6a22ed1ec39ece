package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwhitfield/folio-api/internal/domain"
	"github.com/jwhitfield/folio-api/internal/platform/logger"
	"github.com/jwhitfield/folio-api/internal/store"
)

// PostgresProjectStore implements the store.ProjectStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProjectStore creates a new PostgreSQL implementation of the
// ProjectStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProjectStore(db store.DBTX, logger *slog.Logger) *PostgresProjectStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "project_store")),
	}
}

// Ensure PostgresProjectStore implements store.ProjectStore interface
var _ store.ProjectStore = (*PostgresProjectStore)(nil)

// WithTx returns a new ProjectStore instance backed by the given transaction.
func (s *PostgresProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return &PostgresProjectStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ProjectStore.Create
// It saves a new project to the database, handling domain validation.
// Returns store.ErrSlugExists if the slug is already taken.
func (s *PostgresProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.Warn("project validation failed during create",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return err
	}

	tags, err := json.Marshal(project.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal project tags: %w", err)
	}

	query := `
		INSERT INTO projects (id, title, slug, summary, description, repo_url, live_url, tags, featured, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		project.ID,
		project.Title,
		project.Slug,
		project.Summary,
		project.Description,
		project.RepoURL,
		project.LiveURL,
		tags,
		project.Featured,
		project.Published,
		project.CreatedAt,
		project.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate slug during project creation",
				slog.String("project_id", project.ID.String()),
				slog.String("slug", project.Slug))
			return fmt.Errorf("%w: %s", store.ErrSlugExists, project.Slug)
		}

		log.Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return MapError(err)
	}

	log.Info("project created successfully",
		slog.String("project_id", project.ID.String()),
		slog.String("slug", project.Slug))
	return nil
}

// GetByID implements store.ProjectStore.GetByID
// Returns store.ErrProjectNotFound if the project does not exist.
func (s *PostgresProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, selectProjectQuery+` WHERE id = $1`, id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("project not found", slog.String("project_id", id.String()))
			return nil, store.ErrProjectNotFound
		}
		log.Error("failed to get project by ID",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return nil, MapError(err)
	}

	return project, nil
}

// GetBySlug implements store.ProjectStore.GetBySlug
// Returns store.ErrProjectNotFound if the project does not exist.
func (s *PostgresProjectStore) GetBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, selectProjectQuery+` WHERE slug = $1`, slug)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("project not found", slog.String("slug", slug))
			return nil, store.ErrProjectNotFound
		}
		log.Error("failed to get project by slug",
			slog.String("error", err.Error()),
			slog.String("slug", slug))
		return nil, MapError(err)
	}

	return project, nil
}

// List implements store.ProjectStore.List
// It retrieves projects ordered by creation time, newest first.
// Returns an empty slice if no projects match the filter.
func (s *PostgresProjectStore) List(
	ctx context.Context,
	filter store.ProjectFilter,
) ([]*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := selectProjectQuery
	args := []any{}
	if filter.PublishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query projects",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	projects := []*domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			log.Error("failed to scan project row",
				slog.String("error", err.Error()))
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed projects",
		slog.Bool("published_only", filter.PublishedOnly),
		slog.Int("count", len(projects)))
	return projects, nil
}

// Update implements store.ProjectStore.Update
// Returns store.ErrProjectNotFound if the project does not exist.
// Returns store.ErrSlugExists if updating to a slug that is already taken.
func (s *PostgresProjectStore) Update(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.Warn("project validation failed during update",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return err
	}

	tags, err := json.Marshal(project.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal project tags: %w", err)
	}

	project.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE projects
		SET title = $1, slug = $2, summary = $3, description = $4, repo_url = $5,
		    live_url = $6, tags = $7, featured = $8, published = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		project.Title,
		project.Slug,
		project.Summary,
		project.Description,
		project.RepoURL,
		project.LiveURL,
		tags,
		project.Featured,
		project.Published,
		project.UpdatedAt,
		project.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", store.ErrSlugExists, project.Slug)
		}
		log.Error("failed to update project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "project"); err != nil {
		log.Debug("project not found for update",
			slog.String("project_id", project.ID.String()))
		return store.ErrProjectNotFound
	}

	log.Info("project updated successfully",
		slog.String("project_id", project.ID.String()),
		slog.String("slug", project.Slug))
	return nil
}

// Delete implements store.ProjectStore.Delete
// Returns store.ErrProjectNotFound if the project does not exist.
func (s *PostgresProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete project",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "project"); err != nil {
		log.Debug("project not found for delete",
			slog.String("project_id", id.String()))
		return store.ErrProjectNotFound
	}

	log.Info("project deleted successfully",
		slog.String("project_id", id.String()))
	return nil
}

// selectProjectQuery is the shared column list for project reads.
const selectProjectQuery = `
	SELECT id, title, slug, summary, description, repo_url, live_url, tags, featured, published, created_at, updated_at
	FROM projects`

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProject reads one project row, decoding the JSONB tags column.
func scanProject(row rowScanner) (*domain.Project, error) {
	var project domain.Project
	var tags []byte

	err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Slug,
		&project.Summary,
		&project.Description,
		&project.RepoURL,
		&project.LiveURL,
		&tags,
		&project.Featured,
		&project.Published,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &project.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project tags: %w", err)
		}
	}
	if project.Tags == nil {
		project.Tags = []string{}
	}

	return &project, nil
}
