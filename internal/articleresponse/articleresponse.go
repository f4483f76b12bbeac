package articleresponse

import (
	"fmt"
	"net/http"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

// ArticleResponse is the response payload for the Article data model.
//
// In the ArticleResponse object, first a Render() is called on itself,
// then the next field, and so on, all the way down the tree.
type ArticleResponse struct {
	*model.Article

	Comments []model.Comment `json:"comments,omitempty"`

	// Computed on render: where the console shows this article.
	URL     string `json:"url"`
	EditURL string `json:"edit_url"`
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	rd.URL = fmt.Sprintf("/article/%d", rd.ID)
	rd.EditURL = fmt.Sprintf("/admin/articles/edit/%d", rd.ID)

	return nil
}

// PageResponse is one page of articles.
type PageResponse struct {
	List     []*ArticleResponse `json:"list"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

func NewPageResponse(page model.ArticlePage) *PageResponse {
	resp := &PageResponse{
		List:     make([]*ArticleResponse, 0, len(page.List)),
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	for i := range page.List {
		resp.List = append(resp.List, NewArticleResponse(&page.List[i]))
	}

	return resp
}

// Render renders every item; render only walks struct fields, not slices.
func (p *PageResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for _, a := range p.List {
		if err := a.Render(w, r); err != nil {
			return err
		}
	}

	return nil
}
