package handler

import (
	"net/http"
	"strconv"

	"github.com/msomdec/newsdesk/internal/domain"
	"github.com/msomdec/newsdesk/internal/service"
)

// ArticleHandler handles article HTTP requests.
type ArticleHandler struct {
	articles *service.ArticleService
	renderer domain.DocumentRenderer
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articles *service.ArticleService, renderer domain.DocumentRenderer) *ArticleHandler {
	return &ArticleHandler{articles: articles, renderer: renderer}
}

// HandleList returns published articles unless a status is requested.
// GET /articles/?skip&limit&status&q&tag
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, filter, ok := articleQuery(w, r, true)
	if !ok {
		return
	}

	var (
		articles []domain.Article
		err      error
	)
	if filter.StatusID != nil {
		articles, err = h.articles.List(r.Context(), filter, page)
	} else {
		articles, err = h.articles.ListPublished(r.Context(), filter, page)
	}
	if err != nil {
		writeServiceError(w, err, "list articles")
		return
	}
	writeJSON(w, http.StatusOK, toArticleResponses(articles))
}

// HandleListAll returns articles in every status.
// GET /articles/all?skip&limit&q&tag
func (h *ArticleHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	page, filter, ok := articleQuery(w, r, false)
	if !ok {
		return
	}

	articles, err := h.articles.List(r.Context(), filter, page)
	if err != nil {
		writeServiceError(w, err, "list articles")
		return
	}
	writeJSON(w, http.StatusOK, toArticleResponses(articles))
}

func articleQuery(w http.ResponseWriter, r *http.Request, withStatus bool) (domain.Page, domain.ArticleFilter, bool) {
	page, err := parsePage(r, defaultArticleLimit)
	if err != nil {
		writeServiceError(w, err, "parse page")
		return page, domain.ArticleFilter{}, false
	}
	filter, err := parseArticleFilter(r, withStatus)
	if err != nil {
		writeServiceError(w, err, "parse filter")
		return page, filter, false
	}
	return page, filter, true
}

// HandleGet returns one article.
// GET /articles/{id}
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err, "parse article id")
		return
	}

	article, err := h.articles.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "get article")
		return
	}
	writeJSON(w, http.StatusOK, toArticleResponse(article))
}

// HandleCreate creates an article authored by the caller.
// POST /articles/
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req createArticleRequest
	if !bind(w, r, &req) {
		return
	}

	article, err := h.articles.Create(r.Context(), user.ID, service.NewArticle{
		Title:    req.Title,
		Body:     req.Body,
		Image:    req.Image,
		StatusID: req.StatusID,
		TagIDs:   req.TagIDs,
	})
	if err != nil {
		writeServiceError(w, err, "create article")
		return
	}

	w.Header().Set("Location", "/articles/"+strconv.FormatInt(article.ID, 10))
	writeJSON(w, http.StatusCreated, toArticleResponse(article))
}

// HandleUpdate applies a partial update. A tag_ids array replaces the
// article's tags; an empty array clears them.
// PUT /articles/{id}
func (h *ArticleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err, "parse article id")
		return
	}

	var req updateArticleRequest
	if !bind(w, r, &req) {
		return
	}

	upd := domain.ArticleUpdate{
		Title:    fieldOf(req.Title),
		Body:     fieldOf(req.Body),
		StatusID: fieldOf(req.StatusID),
		Image:    req.Image.field(),
		TagIDs:   fieldOf(req.TagIDs),
	}
	if upd.TagIDs.Set && upd.TagIDs.Value == nil {
		upd.TagIDs.Value = []int64{}
	}

	article, err := h.articles.Update(r.Context(), id, upd)
	if err != nil {
		writeServiceError(w, err, "update article")
		return
	}
	writeJSON(w, http.StatusOK, toArticleResponse(article))
}

// HandleDelete removes an article.
// DELETE /articles/{id}
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err, "parse article id")
		return
	}

	if err := h.articles.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "delete article")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePDF renders an article as a document.
// GET /articles/{id}/pdf
func (h *ArticleHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err, "parse article id")
		return
	}

	article, err := h.articles.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "get article")
		return
	}
	writeDocument(w, h.renderer, service.ArticleDocument(article), "article-"+strconv.FormatInt(id, 10))
}
