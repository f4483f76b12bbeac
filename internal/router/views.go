package router

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blogconsole/internal/article"
	"github.com/SergeyParamoshkin/blogconsole/internal/articleresponse"
	"github.com/SergeyParamoshkin/blogconsole/internal/errresponse"
	"github.com/SergeyParamoshkin/blogconsole/internal/logctx"
	"github.com/SergeyParamoshkin/blogconsole/internal/loginpayload"
	"github.com/SergeyParamoshkin/blogconsole/internal/model"
	"github.com/SergeyParamoshkin/blogconsole/internal/session"
)

const (
	archivePageSize = 50
	archiveMaxPages = 200
)

type views struct {
	b     Backend
	store session.Store
	now   func() time.Time
	about About
}

// listPage pairs a category or tag with its articles.
type listPage struct {
	Category *model.Category              `json:"category,omitempty"`
	Tag      *model.Tag                   `json:"tag,omitempty"`
	Articles *articleresponse.PageResponse `json:"articles"`
}

func (p *listPage) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// editorPage is what the article editor needs to fill its selectors.
type editorPage struct {
	Article    *articleresponse.ArticleResponse `json:"article,omitempty"`
	Categories []model.Category                 `json:"categories"`
	Tags       []model.Tag                      `json:"tags"`
}

func (p *editorPage) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

type ArchiveItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url"`
}

// ArchiveGroup holds the articles published in one month, e.g. "2024-05".
type ArchiveGroup struct {
	Period   string        `json:"period"`
	Articles []ArchiveItem `json:"articles"`
}

func (v *views) categories(w http.ResponseWriter, r *http.Request) {
	stats, err := v.b.CategoryStats(r.Context())
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}
	render.JSON(w, r, stats)
}

func (v *views) category(w http.ResponseWriter, r *http.Request) {
	id, err := article.URLID(r, "categoryID")
	if err != nil {
		notFound(w, r)

		return
	}

	c, err := v.b.GetCategory(r.Context(), id)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	q := article.QueryFromRequest(r)
	q.CategoryID = &id
	page, err := v.b.ListArticles(r.Context(), q)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	renderOrLog(w, r, &listPage{Category: &c, Articles: articleresponse.NewPageResponse(page)})
}

func (v *views) tags(w http.ResponseWriter, r *http.Request) {
	stats, err := v.b.TagStats(r.Context())
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}
	render.JSON(w, r, stats)
}

func (v *views) tag(w http.ResponseWriter, r *http.Request) {
	id, err := article.URLID(r, "tagID")
	if err != nil {
		notFound(w, r)

		return
	}

	t, err := v.b.GetTag(r.Context(), id)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	q := article.QueryFromRequest(r)
	q.TagID = &id
	page, err := v.b.ListArticles(r.Context(), q)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	renderOrLog(w, r, &listPage{Tag: &t, Articles: articleresponse.NewPageResponse(page)})
}

// archive walks every published article and groups them by month.
func (v *views) archive(w http.ResponseWriter, r *http.Request) {
	published := model.ArticlePublished
	var all []model.Article

	for p := 1; p <= archiveMaxPages; p++ {
		page, err := v.b.ListArticles(r.Context(), model.ArticleQuery{Page: p, PageSize: archivePageSize, Status: &published})
		if err != nil {
			errresponse.Respond(w, r, err)

			return
		}
		all = append(all, page.List...)
		if len(page.List) == 0 || int64(len(all)) >= page.Total {
			break
		}
	}

	render.JSON(w, r, BuildArchive(all))
}

// BuildArchive groups articles by creation month, newest first.
func BuildArchive(articles []model.Article) []ArchiveGroup {
	sorted := make([]model.Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	groups := []ArchiveGroup{}
	for _, a := range sorted {
		period := a.CreatedAt.Format("2006-01")
		if len(groups) == 0 || groups[len(groups)-1].Period != period {
			groups = append(groups, ArchiveGroup{Period: period})
		}
		g := &groups[len(groups)-1]
		g.Articles = append(g.Articles, ArchiveItem{
			ID:        a.ID,
			Title:     a.Title,
			CreatedAt: a.CreatedAt,
			URL:       fmt.Sprintf("/article/%d", a.ID),
		})
	}

	return groups
}

func (v *views) aboutPage(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, v.about)
}

func (v *views) loginPage(w http.ResponseWriter, r *http.Request) {
	state, s, err := session.Evaluate(v.store, v.now())
	if err != nil {
		renderOrLog(w, r, errresponse.ErrInternal(err))

		return
	}

	resp := &loginpayload.LoginResponse{State: state.String(), Redirect: r.URL.Query().Get("redirect")}
	if state == session.Authorized {
		resp.ExpiresAt = s.ExpiresAt
	}
	renderOrLog(w, r, resp)
}

func (v *views) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := v.b.Dashboard(r.Context())
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}
	render.JSON(w, r, d)
}

func (v *views) editor(r *http.Request, a *model.Article) (*editorPage, error) {
	cats, err := v.b.ListCategories(r.Context())
	if err != nil {
		return nil, err
	}
	tags, err := v.b.ListTags(r.Context())
	if err != nil {
		return nil, err
	}

	p := &editorPage{Categories: cats, Tags: tags}
	if a != nil {
		p.Article = articleresponse.NewArticleResponse(a)
	}

	return p, nil
}

func (v *views) articleCreate(w http.ResponseWriter, r *http.Request) {
	p, err := v.editor(r, nil)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}
	renderOrLog(w, r, p)
}

func (v *views) articleEdit(w http.ResponseWriter, r *http.Request) {
	p, err := v.editor(r, article.FromContext(r.Context()))
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}
	renderOrLog(w, r, p)
}

func (v *views) adminCategories(w http.ResponseWriter, r *http.Request) {
	list, err := v.b.ListCategories(r.Context())
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}
	render.JSON(w, r, list)
}

func (v *views) adminTags(w http.ResponseWriter, r *http.Request) {
	list, err := v.b.ListTags(r.Context())
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}
	render.JSON(w, r, list)
}

func (v *views) adminComments(w http.ResponseWriter, r *http.Request) {
	q := article.QueryFromRequest(r)
	page, err := v.b.ListAdminComments(r.Context(), model.CommentQuery{Page: q.Page, PageSize: q.PageSize, Status: q.Status})
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}
	render.JSON(w, r, page)
}

func renderOrLog(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		logctx.From(r.Context()).Errorw(err.Error())
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	renderOrLog(w, r, errresponse.ErrNotFound)
}
