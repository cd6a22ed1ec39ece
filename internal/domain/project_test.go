package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewProject(t *testing.T) {
	t.Parallel()

	project, err := NewProject("Terminal Dashboard", "A TUI dashboard for homelab metrics.", "Longer write-up.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if project.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if project.Slug != "terminal-dashboard" {
		t.Errorf("Expected slug terminal-dashboard, got %s", project.Slug)
	}

	if project.Published {
		t.Error("Expected new project to start unpublished")
	}

	if project.CreatedAt.IsZero() || project.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	if project.Tags == nil {
		t.Error("Expected tags to be initialized to an empty slice")
	}
}

func TestNewProjectInvalid(t *testing.T) {
	t.Parallel()

	if _, err := NewProject("", "summary", ""); !errors.Is(err, ErrEmptyProjectTitle) {
		t.Errorf("Expected ErrEmptyProjectTitle, got %v", err)
	}

	if _, err := NewProject("Title", "", ""); !errors.Is(err, ErrEmptyProjectSummary) {
		t.Errorf("Expected ErrEmptyProjectSummary, got %v", err)
	}

	long := strings.Repeat("x", 201)
	if _, err := NewProject(long, "summary", ""); !errors.Is(err, ErrProjectTitleTooLong) {
		t.Errorf("Expected ErrProjectTitleTooLong, got %v", err)
	}
}

func TestProjectValidateURLs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		repoURL string
		liveURL string
		wantErr error
	}{
		{name: "both empty", wantErr: nil},
		{name: "valid https", repoURL: "https://github.com/owner/repo", liveURL: "https://example.com", wantErr: nil},
		{name: "relative URL", repoURL: "/owner/repo", wantErr: ErrInvalidProjectURL},
		{name: "unsupported scheme", liveURL: "ftp://example.com", wantErr: ErrInvalidProjectURL},
		{name: "missing host", repoURL: "https://", wantErr: ErrInvalidProjectURL},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			project := Project{
				ID:      uuid.New(),
				Title:   "Title",
				Slug:    "title",
				Summary: "summary",
				RepoURL: tt.repoURL,
				LiveURL: tt.liveURL,
			}

			err := project.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestProjectRename(t *testing.T) {
	t.Parallel()

	project, err := NewProject("Old Name", "summary", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := project.UpdatedAt

	if err := project.Rename("Shiny New Name"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if project.Slug != "shiny-new-name" {
		t.Errorf("Expected slug to be re-derived, got %s", project.Slug)
	}

	if !project.UpdatedAt.After(before) && !project.UpdatedAt.Equal(before) {
		t.Error("Expected UpdatedAt to be refreshed")
	}

	if err := project.Rename(""); !errors.Is(err, ErrEmptyProjectTitle) {
		t.Errorf("Expected ErrEmptyProjectTitle, got %v", err)
	}
}
