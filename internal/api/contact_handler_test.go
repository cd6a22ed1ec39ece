package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhitfield/folio-api/internal/domain"
	"github.com/jwhitfield/folio-api/internal/store"
)

func newContactRouter(handler *ContactHandler) chi.Router {
	r := chi.NewRouter()
	r.Post("/api/contact", handler.Submit)
	r.Get("/api/admin/messages", handler.ListMessages)
	r.Patch("/api/admin/messages/{id}/status", handler.UpdateMessageStatus)
	r.Delete("/api/admin/messages/{id}", handler.DeleteMessage)
	return r
}

func TestSubmitContactMessage(t *testing.T) {
	t.Parallel()

	var created *domain.ContactMessage
	messageStore := &stubMessageStore{
		createFn: func(ctx context.Context, msg *domain.ContactMessage) error {
			created = msg
			return nil
		},
	}

	router := newContactRouter(NewContactHandler(messageStore))

	body, err := json.Marshal(ContactRequest{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Body:  "I would like to talk about a project.",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusAccepted, rr.Code)
	require.NotNil(t, created)
	assert.Equal(t, domain.MessageStatusNew, created.Status)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, created.ID.String(), resp["id"])
	// The public route must not echo sender details back.
	assert.NotContains(t, resp, "email")
}

func TestSubmitContactMessageInvalidPayload(t *testing.T) {
	t.Parallel()

	router := newContactRouter(NewContactHandler(&stubMessageStore{}))

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{"name": `},
		{name: "missing name", body: `{"email": "ada@example.com", "body": "hello"}`},
		{name: "invalid email", body: `{"name": "Ada", "email": "nope", "body": "hello"}`},
		{name: "missing body", body: `{"name": "Ada", "email": "ada@example.com"}`},
		{name: "body too long", body: `{"name": "Ada", "email": "ada@example.com", "body": "` + strings.Repeat("x", 5001) + `"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/contact",
				bytes.NewReader([]byte(tc.body)))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestListMessagesDefaultsToNew(t *testing.T) {
	t.Parallel()

	var gotStatus domain.MessageStatus
	messageStore := &stubMessageStore{
		listByStatusFn: func(ctx context.Context, status domain.MessageStatus, limit, offset int) ([]*domain.ContactMessage, error) {
			gotStatus = status
			msg, err := domain.NewContactMessage("Ada Lovelace", "ada@example.com", "hello")
			require.NoError(t, err)
			return []*domain.ContactMessage{msg}, nil
		},
	}

	router := newContactRouter(NewContactHandler(messageStore))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.MessageStatusNew, gotStatus)

	var resp MessageListResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, "ada@example.com", resp.Messages[0].Email)
}

func TestListMessagesByStatus(t *testing.T) {
	t.Parallel()

	var gotStatus domain.MessageStatus
	messageStore := &stubMessageStore{
		listByStatusFn: func(ctx context.Context, status domain.MessageStatus, limit, offset int) ([]*domain.ContactMessage, error) {
			gotStatus = status
			return nil, nil
		},
	}

	router := newContactRouter(NewContactHandler(messageStore))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages?status=archived", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.MessageStatusArchived, gotStatus)
}

func TestListMessagesInvalidStatus(t *testing.T) {
	t.Parallel()

	messageStore := &stubMessageStore{
		listByStatusFn: func(ctx context.Context, status domain.MessageStatus, limit, offset int) ([]*domain.ContactMessage, error) {
			return nil, domain.ErrInvalidMessageStatus
		},
	}

	router := newContactRouter(NewContactHandler(messageStore))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/messages?status=bogus", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateMessageStatus(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	var gotStatus domain.MessageStatus
	messageStore := &stubMessageStore{
		updateStatusFn: func(ctx context.Context, gotID uuid.UUID, status domain.MessageStatus) error {
			if gotID != id {
				return store.ErrMessageNotFound
			}
			gotStatus = status
			return nil
		},
	}

	router := newContactRouter(NewContactHandler(messageStore))

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/messages/"+id.String()+"/status",
		bytes.NewReader([]byte(`{"status": "read"}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, domain.MessageStatusRead, gotStatus)
}

func TestUpdateMessageStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	router := newContactRouter(NewContactHandler(&stubMessageStore{}))

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/messages/"+uuid.NewString()+"/status",
		bytes.NewReader([]byte(`{"status": "bogus"}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateMessageStatusNotFound(t *testing.T) {
	t.Parallel()

	messageStore := &stubMessageStore{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error {
			return store.ErrMessageNotFound
		},
	}

	router := newContactRouter(NewContactHandler(messageStore))

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/messages/"+uuid.NewString()+"/status",
		bytes.NewReader([]byte(`{"status": "read"}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteMessage(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	messageStore := &stubMessageStore{
		deleteFn: func(ctx context.Context, got uuid.UUID) error {
			if got == id {
				return nil
			}
			return store.ErrMessageNotFound
		},
	}

	router := newContactRouter(NewContactHandler(messageStore))

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/messages/"+id.String(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
