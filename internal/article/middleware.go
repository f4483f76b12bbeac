package article

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blogconsole/internal/errresponse"
	"github.com/SergeyParamoshkin/blogconsole/internal/logctx"
	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

type ctxKey int8

const ctxKeyArticle ctxKey = iota

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404.
func (h *Handler) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := URLID(r, "articleID")
		if err != nil {
			if err = render.Render(w, r, errresponse.ErrNotFound); err != nil {
				logctx.From(r.Context()).Errorw(err.Error())
			}

			return
		}

		article, err := h.src.GetArticle(r.Context(), id)
		if err != nil {
			errresponse.Respond(w, r, err)

			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyArticle, &article)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the article loaded by ArticleCtx.
func FromContext(ctx context.Context) *model.Article {
	a, _ := ctx.Value(ctxKeyArticle).(*model.Article)

	return a
}

// URLID parses a numeric chi URL parameter.
func URLID(r *http.Request, key string) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, key), 10, 32)

	return uint(id), err
}
