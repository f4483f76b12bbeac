package model

import "time"

type Tag struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TagStat is a tag with the number of articles carrying it.
type TagStat struct {
	Tag
	ArticleCount int64 `json:"article_count"`
}
