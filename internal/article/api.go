package article

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blogconsole/internal/articleresponse"
	"github.com/SergeyParamoshkin/blogconsole/internal/errresponse"
	"github.com/SergeyParamoshkin/blogconsole/internal/logctx"
	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

// QueryFromRequest reads list filters from the URL query.
func QueryFromRequest(r *http.Request) model.ArticleQuery {
	v := r.URL.Query()
	q := model.ArticleQuery{
		Page:     atoi(v.Get("page")),
		PageSize: atoi(v.Get("page_size")),
		Keyword:  v.Get("keyword"),
	}
	if s := v.Get("status"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 8); err == nil {
			status := int8(n)
			q.Status = &status
		}
	}
	if id, ok := parseUint(v.Get("category_id")); ok {
		q.CategoryID = &id
	}
	if id, ok := parseUint(v.Get("tag_id")); ok {
		q.TagID = &id
	}

	return q
}

// ListArticles renders one page of articles filtered by the URL query.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, QueryFromRequest(r))
}

// SearchArticles lists the articles matching ?keyword=.
func (h *Handler) SearchArticles(w http.ResponseWriter, r *http.Request) {
	q := QueryFromRequest(r)
	if q.Keyword == "" {
		if err := render.Render(w, r, articleresponse.NewPageResponse(model.ArticlePage{})); err != nil {
			h.renderErr(w, r, err)
		}

		return
	}
	h.renderPage(w, r, q)
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, q model.ArticleQuery) {
	page, err := h.src.ListArticles(r.Context(), q)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	if err := render.Render(w, r, articleresponse.NewPageResponse(page)); err != nil {
		h.renderErr(w, r, err)
	}
}

// GetArticle returns the article loaded by ArticleCtx together with its
// approved comments.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	// ArticleCtx always runs before this handler.
	article := FromContext(r.Context())

	comments, err := h.src.ListComments(r.Context(), article.ID)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	resp := articleresponse.NewArticleResponse(article)
	resp.Comments = comments
	if err := render.Render(w, r, resp); err != nil {
		h.renderErr(w, r, err)
	}
}

// SubmitComment posts a reader's comment under the article in the URL. The
// comment goes through the public client and waits for moderation.
func (h *Handler) SubmitComment(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "articleID")
	if err != nil {
		h.invalid(w, r, err)

		return
	}

	data := &CommentRequest{}
	if err := render.Bind(r, data); err != nil {
		h.invalid(w, r, err)

		return
	}
	data.ArticleID = id

	comment, err := h.src.SubmitComment(r.Context(), *data.CommentInput)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, comment)
}

// CreateArticle posts the article to the backend and returns it
// back to the client as an acknowledgement.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		h.invalid(w, r, err)

		return
	}

	article, err := h.src.CreateArticle(r.Context(), *data.ArticleInput)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, articleresponse.NewArticleResponse(&article)); err != nil {
		h.renderErr(w, r, err)
	}
}

// UpdateArticle replaces an existing article.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "articleID")
	if err != nil {
		h.invalid(w, r, err)

		return
	}

	data := &ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		h.invalid(w, r, err)

		return
	}

	article, err := h.src.UpdateArticle(r.Context(), id, *data.ArticleInput)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	if err := render.Render(w, r, articleresponse.NewArticleResponse(&article)); err != nil {
		h.renderErr(w, r, err)
	}
}

// DeleteArticle removes an article from the blog.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := URLID(r, "articleID")
	if err != nil {
		h.invalid(w, r, err)

		return
	}

	if err := h.src.DeleteArticle(r.Context(), id); err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) invalid(w http.ResponseWriter, r *http.Request, err error) {
	if err := render.Render(w, r, errresponse.ErrInvalidRequest(err)); err != nil {
		logctx.From(r.Context()).Errorw(err.Error())
	}
}

func (h *Handler) renderErr(w http.ResponseWriter, r *http.Request, err error) {
	if err := render.Render(w, r, errresponse.ErrRender(err)); err != nil {
		logctx.From(r.Context()).Errorw(err.Error())
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)

	return n
}

func parseUint(s string) (uint, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(n), true
}
