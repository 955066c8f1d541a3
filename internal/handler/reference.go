package handler

import (
	"net/http"

	"github.com/msomdec/newsdesk/internal/service"
)

// ReferenceHandler serves the lookup tables: statuses, genders and tags.
type ReferenceHandler struct {
	refs *service.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(refs *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{refs: refs}
}

// GET /statuses/
func (h *ReferenceHandler) HandleStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.refs.ListStatuses(r.Context())
	if err != nil {
		writeServiceError(w, err, "list statuses")
		return
	}
	writeJSON(w, http.StatusOK, toStatusResponses(statuses))
}

// GET /genders/
func (h *ReferenceHandler) HandleGenders(w http.ResponseWriter, r *http.Request) {
	genders, err := h.refs.ListGenders(r.Context())
	if err != nil {
		writeServiceError(w, err, "list genders")
		return
	}
	writeJSON(w, http.StatusOK, toGenderResponses(genders))
}

// GET /tags/
func (h *ReferenceHandler) HandleTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.refs.ListTags(r.Context())
	if err != nil {
		writeServiceError(w, err, "list tags")
		return
	}
	writeJSON(w, http.StatusOK, toTagResponses(tags))
}

// HandleCreateTag adds a tag. Names are unique regardless of case.
// POST /tags/
func (h *ReferenceHandler) HandleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if !bind(w, r, &req) {
		return
	}

	tag, err := h.refs.CreateTag(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err, "create tag")
		return
	}
	writeJSON(w, http.StatusCreated, namedResponse{ID: tag.ID, Name: tag.Name})
}
