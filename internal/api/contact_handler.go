package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jwhitfield/folio-api/internal/api/shared"
	"github.com/jwhitfield/folio-api/internal/domain"
	"github.com/jwhitfield/folio-api/internal/store"
)

// ContactHandler handles contact form submissions and the admin message
// inbox.
type ContactHandler struct {
	messageStore store.MessageStore
	validate     *validator.Validate
}

// NewContactHandler creates a new ContactHandler with the given dependencies.
func NewContactHandler(messageStore store.MessageStore) *ContactHandler {
	return &ContactHandler{
		messageStore: messageStore,
		validate:     validator.New(),
	}
}

// Submit handles POST /api/contact. The response echoes only the message ID;
// sender details never leave the server on the public route.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid contact form data", err)
		return
	}

	msg, err := domain.NewContactMessage(req.Name, req.Email, req.Body)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Invalid contact form data", err)
		return
	}

	if err := h.messageStore.Create(r.Context(), msg); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to submit message", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, map[string]string{
		"id": msg.ID.String(),
	})
}

// ListMessages handles GET /api/admin/messages. The status query parameter
// selects the triage bucket and defaults to new.
func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	status := domain.MessageStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.MessageStatusNew
	}

	limit, offset := paginationParams(r)

	messages, err := h.messageStore.ListByStatus(r.Context(), status, limit, offset)
	if err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, "Failed to list messages", err)
		return
	}

	resp := MessageListResponse{
		Messages: make([]MessageResponse, 0, len(messages)),
		Limit:    limit,
		Offset:   offset,
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, newMessageResponse(m))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// UpdateMessageStatus handles PATCH /api/admin/messages/{id}/status.
func (h *ContactHandler) UpdateMessageStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid message ID")
		return
	}

	var req UpdateMessageStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid message status", err)
		return
	}

	if err := h.messageStore.UpdateStatus(r.Context(), id, domain.MessageStatus(req.Status)); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, "Failed to update message status", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteMessage handles DELETE /api/admin/messages/{id}.
func (h *ContactHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid message ID")
		return
	}

	if err := h.messageStore.Delete(r.Context(), id); err != nil {
		status := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, status, "Failed to delete message", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
