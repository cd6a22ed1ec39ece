package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/jwhitfield/folio-api/internal/domain"
)

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginResponse represents the login response payload.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// CreateProjectRequest represents the payload for creating a project.
type CreateProjectRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Summary     string   `json:"summary" validate:"required"`
	Description string   `json:"description"`
	RepoURL     string   `json:"repo_url" validate:"omitempty,url"`
	LiveURL     string   `json:"live_url" validate:"omitempty,url"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
	Published   bool     `json:"published"`
}

// UpdateProjectRequest represents the payload for updating a project.
// Pointer fields distinguish "not provided" from zero values.
type UpdateProjectRequest struct {
	Title       *string   `json:"title" validate:"omitempty,max=200"`
	Summary     *string   `json:"summary"`
	Description *string   `json:"description"`
	RepoURL     *string   `json:"repo_url" validate:"omitempty,url"`
	LiveURL     *string   `json:"live_url" validate:"omitempty,url"`
	Tags        *[]string `json:"tags"`
	Featured    *bool     `json:"featured"`
	Published   *bool     `json:"published"`
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
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

// ProjectListResponse represents a page of projects.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ContactRequest represents a contact form submission.
type ContactRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	Body  string `json:"body" validate:"required,max=5000"`
}

// MessageResponse represents a contact message in API responses.
type MessageResponse struct {
	ID        uuid.UUID            `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Body      string               `json:"body"`
	Status    domain.MessageStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// MessageListResponse represents a page of contact messages.
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// UpdateMessageStatusRequest represents the payload for changing a contact
// message's triage status.
type UpdateMessageStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read archived"`
}

// newProjectResponse converts a domain project to its API representation.
func newProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Summary:     p.Summary,
		Description: p.Description,
		RepoURL:     p.RepoURL,
		LiveURL:     p.LiveURL,
		Tags:        p.Tags,
		Featured:    p.Featured,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// newMessageResponse converts a domain contact message to its API
// representation.
func newMessageResponse(m *domain.ContactMessage) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Body:      m.Body,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}
