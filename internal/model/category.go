package model

import "time"

type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryStat is a category with the number of articles filed under it.
type CategoryStat struct {
	Category
	ArticleCount int64 `json:"article_count"`
}
