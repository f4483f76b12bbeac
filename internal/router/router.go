// Package router serves the console: the public layout, the login page and
// the admin layout behind the navigation guard, plus the dev proxy.
package router

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blogconsole/internal/article"
	"github.com/SergeyParamoshkin/blogconsole/internal/errresponse"
	"github.com/SergeyParamoshkin/blogconsole/internal/guard"
	"github.com/SergeyParamoshkin/blogconsole/internal/logctx"
	"github.com/SergeyParamoshkin/blogconsole/internal/model"
	"github.com/SergeyParamoshkin/blogconsole/internal/session"
)

// Backend is the blog API as used by the console. *client.Blog satisfies it.
type Backend interface {
	article.Source

	ListCategories(ctx context.Context) ([]model.Category, error)
	CategoryStats(ctx context.Context) ([]model.CategoryStat, error)
	GetCategory(ctx context.Context, id uint) (model.Category, error)
	CreateCategory(ctx context.Context, in model.Category) (model.Category, error)
	UpdateCategory(ctx context.Context, id uint, in model.Category) (model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	ListTags(ctx context.Context) ([]model.Tag, error)
	TagStats(ctx context.Context) ([]model.TagStat, error)
	GetTag(ctx context.Context, id uint) (model.Tag, error)
	CreateTag(ctx context.Context, in model.Tag) (model.Tag, error)
	UpdateTag(ctx context.Context, id uint, in model.Tag) (model.Tag, error)
	DeleteTag(ctx context.Context, id uint) error

	ListAdminComments(ctx context.Context, q model.CommentQuery) (model.CommentPage, error)
	ApproveComment(ctx context.Context, id uint) error
	RejectComment(ctx context.Context, id uint) error
	DeleteComment(ctx context.Context, id uint) error

	UploadImage(ctx context.Context, name string, r io.Reader) (model.Upload, error)
	Dashboard(ctx context.Context) (model.Dashboard, error)

	Login(ctx context.Context, secretKey string) (model.Token, error)
	Logout() error
}

// About is shown on the about page.
type About struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Backend     string `json:"backend"`
}

type Deps struct {
	Backend Backend
	Store   session.Store
	Logger  *zap.SugaredLogger
	// Proxy forwards /api and /uploads to the backend; nil disables it.
	Proxy http.Handler
	Now   func() time.Time
	About About
}

// New builds the console router from the route table.
func New(d Deps) (chi.Router, error) {
	if d.Logger == nil {
		d.Logger = zap.NewNop().Sugar()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	g := guard.New(d.Store)
	g.Now = d.Now

	articles := article.NewHandler(d.Backend)
	v := &views{b: d.Backend, store: d.Store, now: d.Now, about: d.About}

	pages := map[string]http.Handler{
		ViewHome:            http.HandlerFunc(articles.ListArticles),
		ViewArticle:         articles.ArticleCtx(http.HandlerFunc(articles.GetArticle)),
		ViewCategories:      http.HandlerFunc(v.categories),
		ViewCategory:        http.HandlerFunc(v.category),
		ViewTags:            http.HandlerFunc(v.tags),
		ViewTag:             http.HandlerFunc(v.tag),
		ViewSearch:          http.HandlerFunc(articles.SearchArticles),
		ViewArchive:         http.HandlerFunc(v.archive),
		ViewAbout:           http.HandlerFunc(v.aboutPage),
		ViewLogin:           http.HandlerFunc(v.loginPage),
		ViewDashboard:       http.HandlerFunc(v.dashboard),
		ViewAdminArticles:   http.HandlerFunc(articles.ListArticles),
		ViewArticleCreate:   http.HandlerFunc(v.articleCreate),
		ViewArticleEdit:     articles.ArticleCtx(http.HandlerFunc(v.articleEdit)),
		ViewAdminCategories: http.HandlerFunc(v.adminCategories),
		ViewAdminTags:       http.HandlerFunc(v.adminTags),
		ViewAdminComments:   http.HandlerFunc(v.adminComments),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logctx.Middleware(d.Logger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if err := render.Render(w, r, errresponse.ErrNotFound); err != nil {
			logctx.From(r.Context()).Errorw(err.Error())
		}
	})

	for _, e := range Flatten(Routes) {
		var h http.Handler
		if e.Redirect != "" {
			h = http.RedirectHandler(e.Redirect, http.StatusFound)
		} else {
			page, ok := pages[e.View]
			if !ok {
				return nil, fmt.Errorf("route %s: unknown view %q", e.Path, e.View)
			}
			h = page
		}
		if e.RequiresAuth {
			h = g.RequireAuth(h)
		}
		r.Method(http.MethodGet, e.Path, h)
	}

	r.Post("/article/{articleID}/comments", articles.SubmitComment)

	r.Post("/admin/login", v.login)
	r.Post("/admin/logout", v.logout)

	// Admin actions sit behind the same guard as the admin layout.
	r.Group(func(r chi.Router) {
		r.Use(g.RequireAuth)

		r.Post("/admin/articles", articles.CreateArticle)
		r.Put("/admin/articles/{articleID}", articles.UpdateArticle)
		r.Delete("/admin/articles/{articleID}", articles.DeleteArticle)

		r.Post("/admin/categories", v.createCategory)
		r.Put("/admin/categories/{categoryID}", v.updateCategory)
		r.Delete("/admin/categories/{categoryID}", v.deleteCategory)

		r.Post("/admin/tags", v.createTag)
		r.Put("/admin/tags/{tagID}", v.updateTag)
		r.Delete("/admin/tags/{tagID}", v.deleteTag)

		r.Patch("/admin/comments/{commentID}/approve", v.approveComment)
		r.Patch("/admin/comments/{commentID}/reject", v.rejectComment)
		r.Delete("/admin/comments/{commentID}", v.deleteComment)

		r.Post("/admin/upload", v.upload)
	})

	if d.Proxy != nil {
		r.Handle("/api/*", d.Proxy)
		r.Handle("/uploads/*", d.Proxy)
	}

	return r, nil
}
