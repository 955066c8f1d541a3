package handler

import (
	"net/http"

	"github.com/msomdec/newsdesk/internal/domain"
	"github.com/msomdec/newsdesk/internal/service"
)

// Deps is everything the HTTP layer needs from the rest of the program.
type Deps struct {
	DB           domain.Database
	Auth         *service.AuthService
	Users        *service.UserService
	Articles     *service.ArticleService
	References   *service.ReferenceService
	Renderer     domain.DocumentRenderer
	LoginLimiter *service.RateLimiter
	Metrics      *Metrics
	MaxBodyBytes int64
}

// RegisterRoutes sets up all HTTP routes on the given mux. Collection
// routes answer both with and without the trailing slash.
func RegisterRoutes(mux *http.ServeMux, deps Deps) {
	health := NewHealthHandler(deps.DB)
	auth := NewAuthHandler(deps.Auth)
	users := NewUserHandler(deps.Auth, deps.Users, deps.Renderer)
	articles := NewArticleHandler(deps.Articles, deps.Renderer)
	refs := NewReferenceHandler(deps.References)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(deps.Auth, h)
	}
	limited := func(h http.HandlerFunc) http.Handler {
		if deps.LoginLimiter == nil {
			return h
		}
		return RateLimit(deps.LoginLimiter, h)
	}
	collection := func(method, path string, h http.Handler) {
		mux.Handle(method+" "+path, h)
		mux.Handle(method+" "+path+"/{$}", h)
	}

	mux.HandleFunc("GET /healthz", health.HandleHealthz)
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}

	mux.Handle("POST /auth/register", limited(auth.HandleRegister))
	mux.Handle("POST /auth/login", limited(auth.HandleLogin))

	collection("GET", "/users", http.HandlerFunc(users.HandleList))
	mux.Handle("GET /users/me", protected(users.HandleMe))
	mux.Handle("PUT /users/me", protected(users.HandleUpdateMe))
	mux.Handle("PUT /users/me/password", protected(users.HandleChangePassword))
	mux.Handle("GET /users/me/pdf", protected(users.HandlePDF))

	collection("GET", "/articles", http.HandlerFunc(articles.HandleList))
	collection("POST", "/articles", protected(articles.HandleCreate))
	mux.HandleFunc("GET /articles/all", articles.HandleListAll)
	mux.HandleFunc("GET /articles/{id}", articles.HandleGet)
	mux.Handle("PUT /articles/{id}", protected(articles.HandleUpdate))
	mux.Handle("DELETE /articles/{id}", protected(articles.HandleDelete))
	mux.Handle("GET /articles/{id}/pdf", protected(articles.HandlePDF))

	collection("GET", "/tags", http.HandlerFunc(refs.HandleTags))
	collection("POST", "/tags", protected(refs.HandleCreateTag))
	collection("GET", "/statuses", http.HandlerFunc(refs.HandleStatuses))
	collection("GET", "/genders", http.HandlerFunc(refs.HandleGenders))
}

// NewHandler builds the full middleware chain around a fresh mux.
func NewHandler(deps Deps) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, deps)

	var h http.Handler = mux
	h = LimitBody(deps.MaxBodyBytes, h)
	if deps.Metrics != nil {
		h = deps.Metrics.Middleware(h)
	}
	h = RequestLogger(h)
	return SecurityHeaders(h)
}
