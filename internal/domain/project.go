package domain

import (
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Common validation errors for Project
var (
	ErrEmptyProjectID      = errors.New("project ID cannot be empty")
	ErrEmptyProjectTitle   = errors.New("project title cannot be empty")
	ErrProjectTitleTooLong = errors.New("project title must be at most 200 characters long")
	ErrEmptyProjectSlug    = errors.New("project slug cannot be empty")
	ErrEmptyProjectSummary = errors.New("project summary cannot be empty")
	ErrInvalidProjectURL   = errors.New("project URL is not a valid absolute URL")
)

// Project represents a portfolio entry: a piece of work shown on the site,
// with an optional link to its repository and a live deployment.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	RepoURL     string    `json:"repo_url,omitempty"`
	LiveURL     string    `json:"live_url,omitempty"`
	Tags        []string  `json:"tags"`
	Featured    bool      `json:"featured"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProject creates a new Project with the given title and summary.
// It generates a new UUID for the project ID, derives a URL slug from the
// title, and sets the creation/update timestamps. New projects start
// unpublished. Returns an error if validation fails.
func NewProject(title, summary, description string) (*Project, error) {
	project := &Project{
		ID:          uuid.New(),
		Title:       title,
		Slug:        slug.Make(title),
		Summary:     summary,
		Description: description,
		Tags:        []string{},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

// Validate checks if the Project has valid data.
// Returns an error if any field fails validation.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProjectID
	}

	if p.Title == "" {
		return ErrEmptyProjectTitle
	}

	if len(p.Title) > 200 {
		return ErrProjectTitleTooLong
	}

	if p.Slug == "" {
		return ErrEmptyProjectSlug
	}

	if p.Summary == "" {
		return ErrEmptyProjectSummary
	}

	if err := validateOptionalURL(p.RepoURL); err != nil {
		return err
	}

	if err := validateOptionalURL(p.LiveURL); err != nil {
		return err
	}

	return nil
}

// Rename updates the project's title, re-derives the slug, and refreshes the
// UpdatedAt timestamp. Returns an error if the new title is invalid.
func (p *Project) Rename(title string) error {
	if title == "" {
		return ErrEmptyProjectTitle
	}

	if len(title) > 200 {
		return ErrProjectTitleTooLong
	}

	p.Title = title
	p.Slug = slug.Make(title)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// SetPublished toggles the project's published flag and refreshes the
// UpdatedAt timestamp.
func (p *Project) SetPublished(published bool) {
	p.Published = published
	p.UpdatedAt = time.Now().UTC()
}

// validateOptionalURL accepts an empty string or an absolute http(s) URL.
func validateOptionalURL(raw string) error {
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrInvalidProjectURL
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidProjectURL
	}

	return nil
}
