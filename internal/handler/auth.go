package handler

import (
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/msomdec/newsdesk/internal/domain"
	"github.com/msomdec/newsdesk/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister processes a JSON registration request.
// POST /auth/register
// Request:  {"first_name":"...","last_name":"...","birth_date":"YYYY-MM-DD","gender_id":1,
//
//	"email":"...","login":"...","password":"..."}
//
// Response: 201 with the created user
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !bind(w, r, &req) {
		return
	}

	birth, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil || birth.After(time.Now()) {
		writeValidationError(w, &validationError{Fields: map[string]string{
			"birth_date": "must be a past date formatted as YYYY-MM-DD",
		}})
		return
	}

	user, err := h.auth.Register(r.Context(), service.Registration{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		BirthDate:  birth,
		GenderID:   req.GenderID,
		Email:      req.Email,
		Login:      req.Login,
		Password:   req.Password,
		Photo:      req.Photo,
	})
	if err != nil {
		writeServiceError(w, err, "register user")
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleLogin exchanges credentials for a bearer token. It accepts a JSON
// body {"login","password"} or a form with username and password fields.
// POST /auth/login
// Response: {"access_token":"...","token_type":"bearer"}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if mediaType := formType(r); mediaType != "" {
		if err := parseForm(r, mediaType); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid form body.")
			return
		}
		req.Login = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
		if err := validateStruct(&req); err != nil {
			writeValidationError(w, err)
			return
		}
	} else if !bind(w, r, &req) {
		return
	}

	token, err := h.auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeUnauthorized(w, "Incorrect login or password.")
			return
		}
		writeServiceError(w, err, "login user")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// maxFormMemory bounds the multipart parts kept in memory; the body itself
// is already capped by LimitBody.
const maxFormMemory = 1 << 20

// formType returns the media type of a form-encoded request, or "".
func formType(r *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return mediaType
	}
	return ""
}

func parseForm(r *http.Request, mediaType string) error {
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}
