package model

import (
	"net/url"
	"strconv"
	"time"
)

// Comment moderation statuses.
const (
	CommentPending  int8 = 0
	CommentApproved int8 = 1
	CommentRejected int8 = 2
)

type Comment struct {
	ID        uint      `json:"id"`
	ArticleID uint      `json:"article_id"`
	ParentID  *uint     `json:"parent_id"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	Status    int8      `json:"status"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"created_at"`

	Article *Article  `json:"article,omitempty"`
	Replies []Comment `json:"replies,omitempty"`
}

// CommentInput is what a reader submits under an article.
type CommentInput struct {
	ArticleID uint   `json:"article_id"`
	ParentID  *uint  `json:"parent_id,omitempty"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	Website   string `json:"website,omitempty"`
	Content   string `json:"content"`
}

// CommentQuery filters the moderation list.
type CommentQuery struct {
	Page     int
	PageSize int
	Status   *int8
}

func (q CommentQuery) Values() url.Values {
	v := url.Values{}
	setPaging(v, q.Page, q.PageSize)
	if q.Status != nil {
		v.Set("status", strconv.Itoa(int(*q.Status)))
	}

	return v
}

type CommentPage struct {
	List     []Comment `json:"list"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
