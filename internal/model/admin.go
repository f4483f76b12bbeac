package model

// Token is issued by the backend when the admin secret key checks out.
// ExpiresAt is in epoch seconds.
type Token struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// Dashboard holds the counters shown on the admin landing page.
type Dashboard struct {
	ArticleCount        int64 `json:"article_count"`
	PublishedCount      int64 `json:"published_count"`
	CategoryCount       int64 `json:"category_count"`
	TagCount            int64 `json:"tag_count"`
	CommentCount        int64 `json:"comment_count"`
	PendingCommentCount int64 `json:"pending_comment_count"`
	TotalViews          int64 `json:"total_views"`
}

// Upload is the stored location of an uploaded image.
type Upload struct {
	URL string `json:"url"`
}
