package client

import (
	"context"
	"fmt"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

// ListComments returns the approved comments under an article.
func (b *Blog) ListComments(ctx context.Context, articleID uint) ([]model.Comment, error) {
	var list []model.Comment
	err := b.Public.Get(ctx, fmt.Sprintf("/api/articles/%d/comments", articleID), nil, &list)

	return list, err
}

func (b *Blog) SubmitComment(ctx context.Context, in model.CommentInput) (model.Comment, error) {
	var c model.Comment
	err := b.Public.Post(ctx, "/api/comments", in, &c)

	return c, err
}

// ListAdminComments returns comments of every status for moderation.
func (b *Blog) ListAdminComments(ctx context.Context, q model.CommentQuery) (model.CommentPage, error) {
	var page model.CommentPage
	err := b.Admin.Get(ctx, "/api/admin/comments", q.Values(), &page)

	return page, err
}

func (b *Blog) ApproveComment(ctx context.Context, id uint) error {
	return b.Admin.Patch(ctx, fmt.Sprintf("/api/admin/comments/%d/approve", id), nil, nil)
}

func (b *Blog) RejectComment(ctx context.Context, id uint) error {
	return b.Admin.Patch(ctx, fmt.Sprintf("/api/admin/comments/%d/reject", id), nil, nil)
}

func (b *Blog) DeleteComment(ctx context.Context, id uint) error {
	return b.Admin.Delete(ctx, fmt.Sprintf("/api/admin/comments/%d", id), nil)
}
