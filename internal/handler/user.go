package handler

import (
	"net/http"
	"time"

	"github.com/msomdec/newsdesk/internal/domain"
	"github.com/msomdec/newsdesk/internal/service"
)

// UserHandler serves the user directory and the caller's own profile.
type UserHandler struct {
	auth     *service.AuthService
	users    *service.UserService
	renderer domain.DocumentRenderer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth *service.AuthService, users *service.UserService, renderer domain.DocumentRenderer) *UserHandler {
	return &UserHandler{auth: auth, users: users, renderer: renderer}
}

// HandleList returns a page of users.
// GET /users/?skip=0&limit=100
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r, defaultUserLimit)
	if err != nil {
		writeServiceError(w, err, "parse page")
		return
	}

	users, err := h.users.List(r.Context(), page)
	if err != nil {
		writeServiceError(w, err, "list users")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// HandleMe returns the authenticated user.
// GET /users/me
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toUserResponse(UserFromContext(r.Context())))
}

// HandleUpdateMe applies a partial profile update. Omitted fields are kept.
// PUT /users/me
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req updateProfileRequest
	if !bind(w, r, &req) {
		return
	}

	upd := domain.UserUpdate{
		FirstName:  fieldOf(req.FirstName),
		LastName:   fieldOf(req.LastName),
		MiddleName: req.MiddleName.field(),
		GenderID:   fieldOf(req.GenderID),
		Email:      fieldOf(req.Email),
		Login:      fieldOf(req.Login),
		Photo:      req.Photo.field(),
	}
	if req.BirthDate != nil {
		birth, err := time.Parse(dateLayout, *req.BirthDate)
		if err != nil || birth.After(time.Now()) {
			writeValidationError(w, &validationError{Fields: map[string]string{
				"birth_date": "must be a past date formatted as YYYY-MM-DD",
			}})
			return
		}
		upd.BirthDate = domain.Set(birth)
	}

	updated, err := h.users.UpdateProfile(r.Context(), user.ID, upd)
	if err != nil {
		writeServiceError(w, err, "update profile")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

// HandleChangePassword replaces the caller's password after checking the
// current one.
// PUT /users/me/password
func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req changePasswordRequest
	if !bind(w, r, &req) {
		return
	}

	if err := h.auth.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, err, "change password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "Password updated"})
}

// HandlePDF renders the caller's profile as a document.
// GET /users/me/pdf
func (h *UserHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	writeDocument(w, h.renderer, service.ProfileDocument(user), "profile-"+user.Login)
}
