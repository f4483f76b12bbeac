package model

import (
	"net/url"
	"strconv"
	"time"
)

// Article statuses as stored by the backend.
const (
	ArticleDraft     int8 = 0
	ArticlePublished int8 = 1
)

// Article data model as returned by the blog backend.
type Article struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Summary    string    `json:"summary"`
	CoverImg   string    `json:"cover_img"`
	CategoryID *uint     `json:"category_id"`
	Views      int       `json:"views"`
	Status     int8      `json:"status"`
	IsTop      bool      `json:"is_top"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Category *Category `json:"category,omitempty"`
	Tags     []Tag     `json:"tags,omitempty"`
}

// ArticleInput is the body of article create and update calls.
type ArticleInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Summary    string `json:"summary"`
	CoverImg   string `json:"cover_img"`
	CategoryID *uint  `json:"category_id"`
	TagIDs     []uint `json:"tag_ids"`
	Status     int8   `json:"status"`
	IsTop      bool   `json:"is_top"`
}

// ArticleQuery filters the article list. Zero values are left out of the
// query string so the backend applies its own defaults.
type ArticleQuery struct {
	Page       int
	PageSize   int
	Status     *int8
	CategoryID *uint
	TagID      *uint
	Keyword    string
}

// Values encodes q as URL query parameters.
func (q ArticleQuery) Values() url.Values {
	v := url.Values{}
	setPaging(v, q.Page, q.PageSize)
	if q.Status != nil {
		v.Set("status", strconv.Itoa(int(*q.Status)))
	}
	if q.CategoryID != nil {
		v.Set("category_id", strconv.FormatUint(uint64(*q.CategoryID), 10))
	}
	if q.TagID != nil {
		v.Set("tag_id", strconv.FormatUint(uint64(*q.TagID), 10))
	}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}

	return v
}

// ArticlePage is one page of the article list.
type ArticlePage struct {
	List     []Article `json:"list"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

func setPaging(v url.Values, page, pageSize int) {
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		v.Set("page_size", strconv.Itoa(pageSize))
	}
}
