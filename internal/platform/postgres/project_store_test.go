package postgres

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhitfield/folio-api/internal/domain"
	"github.com/jwhitfield/folio-api/internal/store"
)

// newMockProjectStore builds a project store over a sqlmock handle.
func newMockProjectStore(t *testing.T) (*PostgresProjectStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresProjectStore(db, nil), mock
}

// testProject returns a valid project for store tests.
func testProject(t *testing.T) *domain.Project {
	t.Helper()

	project, err := domain.NewProject("Folio API", "Backend for the portfolio site.", "Full write-up.")
	require.NoError(t, err)
	project.Tags = []string{"go", "postgres"}
	return project
}

// projectRows builds a sqlmock row set for the shared project column list.
func projectRows(t *testing.T, projects ...*domain.Project) *sqlmock.Rows {
	t.Helper()

	rows := sqlmock.NewRows([]string{
		"id", "title", "slug", "summary", "description",
		"repo_url", "live_url", "tags", "featured", "published",
		"created_at", "updated_at",
	})
	for _, p := range projects {
		tags, err := json.Marshal(p.Tags)
		require.NoError(t, err)
		rows.AddRow(
			p.ID, p.Title, p.Slug, p.Summary, p.Description,
			p.RepoURL, p.LiveURL, tags, p.Featured, p.Published,
			p.CreatedAt, p.UpdatedAt,
		)
	}
	return rows
}

func TestProjectStoreCreate(t *testing.T) {
	t.Parallel()

	s, mock := newMockProjectStore(t)
	project := testProject(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO projects")).
		WithArgs(
			project.ID, project.Title, project.Slug, project.Summary,
			project.Description, project.RepoURL, project.LiveURL,
			sqlmock.AnyArg(), project.Featured, project.Published,
			project.CreatedAt, project.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Create(context.Background(), project)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStoreCreateDuplicateSlug(t *testing.T) {
	t.Parallel()

	s, mock := newMockProjectStore(t)
	project := testProject(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO projects")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	err := s.Create(context.Background(), project)
	assert.ErrorIs(t, err, store.ErrSlugExists)
}

func TestProjectStoreCreateInvalidProject(t *testing.T) {
	t.Parallel()

	s, mock := newMockProjectStore(t)
	project := testProject(t)
	project.Title = ""

	err := s.Create(context.Background(), project)
	assert.ErrorIs(t, err, domain.ErrEmptyProjectTitle)
	assert.NoError(t, mock.ExpectationsWereMet(), "no query should reach the database")
}

func TestProjectStoreGetBySlug(t *testing.T) {
	t.Parallel()

	s, mock := newMockProjectStore(t)
	project := testProject(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM projects")).
		WithArgs(project.Slug).
		WillReturnRows(projectRows(t, project))

	got, err := s.GetBySlug(context.Background(), project.Slug)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)
	assert.Equal(t, []string{"go", "postgres"}, got.Tags)
}

func TestProjectStoreGetBySlugNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockProjectStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM projects")).
		WithArgs("missing").
		WillReturnRows(projectRows(t))

	got, err := s.GetBySlug(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestProjectStoreListPublishedOnly(t *testing.T) {
	t.Parallel()

	s, mock := newMockProjectStore(t)
	published := testProject(t)
	published.Published = true

	mock.ExpectQuery("WHERE published = TRUE").
		WithArgs(20, 0).
		WillReturnRows(projectRows(t, published))

	got, err := s.List(context.Background(), store.ProjectFilter{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Published)
}

func TestProjectStoreListEmpty(t *testing.T) {
	t.Parallel()

	s, mock := newMockProjectStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM projects")).
		WithArgs(20, 0).
		WillReturnRows(projectRows(t))

	got, err := s.List(context.Background(), store.ProjectFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got, "List should return an empty slice, not nil")
	assert.Empty(t, got)
}

func TestProjectStoreUpdateNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockProjectStore(t)
	project := testProject(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), project)
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestProjectStoreDelete(t *testing.T) {
	t.Parallel()

	s, mock := newMockProjectStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.Delete(context.Background(), id))
	assert.ErrorIs(t, s.Delete(context.Background(), id), store.ErrProjectNotFound)
}

func TestProjectStoreWithTx(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewPostgresProjectStore(db, nil)
	project := testProject(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO projects")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, s.WithTx(tx).Create(context.Background(), project))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Scanning a stale row with invalid tags JSON should fail loudly rather than
// return a half-populated project.
func TestScanProjectBadTags(t *testing.T) {
	t.Parallel()

	s, mock := newMockProjectStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "title", "slug", "summary", "description",
		"repo_url", "live_url", "tags", "featured", "published",
		"created_at", "updated_at",
	}).AddRow(
		uuid.New(), "T", "t", "s", "", "", "", []byte("{not json"),
		false, false, time.Now(), time.Now(),
	)

	mock.ExpectQuery(regexp.QuoteMeta("FROM projects")).
		WithArgs("t").
		WillReturnRows(rows)

	got, err := s.GetBySlug(context.Background(), "t")
	assert.Nil(t, got)
	assert.Error(t, err)
}
