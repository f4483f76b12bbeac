package router

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blogconsole/internal/article"
	"github.com/SergeyParamoshkin/blogconsole/internal/errresponse"
	"github.com/SergeyParamoshkin/blogconsole/internal/loginpayload"
	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

// maxUploadMemory bounds the multipart form kept in memory.
const maxUploadMemory = 10 << 20

type categoryRequest struct {
	*model.Category
}

func (c *categoryRequest) Bind(r *http.Request) error {
	if c.Category == nil {
		return errors.New("missing required Category fields.")
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return errors.New("missing name.")
	}

	return nil
}

type tagRequest struct {
	*model.Tag
}

func (t *tagRequest) Bind(r *http.Request) error {
	if t.Tag == nil {
		return errors.New("missing required Tag fields.")
	}
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return errors.New("missing name.")
	}

	return nil
}

// login verifies the secret key, persists the session and sends the visitor
// on to ?redirect= (or the dashboard).
func (v *views) login(w http.ResponseWriter, r *http.Request) {
	data := &loginpayload.LoginRequest{}
	if err := render.Bind(r, data); err != nil {
		invalid(w, r, err)

		return
	}

	if _, err := v.b.Login(r.Context(), data.SecretKey); err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	http.Redirect(w, r, loginpayload.SafeRedirect(r.URL.Query().Get("redirect")), http.StatusSeeOther)
}

func (v *views) logout(w http.ResponseWriter, r *http.Request) {
	if err := v.b.Logout(); err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (v *views) createCategory(w http.ResponseWriter, r *http.Request) {
	data := &categoryRequest{}
	if err := render.Bind(r, data); err != nil {
		invalid(w, r, err)

		return
	}

	c, err := v.b.CreateCategory(r.Context(), *data.Category)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, c)
}

func (v *views) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := article.URLID(r, "categoryID")
	if err != nil {
		invalid(w, r, err)

		return
	}

	data := &categoryRequest{}
	if err := render.Bind(r, data); err != nil {
		invalid(w, r, err)

		return
	}

	c, err := v.b.UpdateCategory(r.Context(), id, *data.Category)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	render.JSON(w, r, c)
}

func (v *views) deleteCategory(w http.ResponseWriter, r *http.Request) {
	v.byID(w, r, "categoryID", v.b.DeleteCategory)
}

func (v *views) createTag(w http.ResponseWriter, r *http.Request) {
	data := &tagRequest{}
	if err := render.Bind(r, data); err != nil {
		invalid(w, r, err)

		return
	}

	t, err := v.b.CreateTag(r.Context(), *data.Tag)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, t)
}

func (v *views) updateTag(w http.ResponseWriter, r *http.Request) {
	id, err := article.URLID(r, "tagID")
	if err != nil {
		invalid(w, r, err)

		return
	}

	data := &tagRequest{}
	if err := render.Bind(r, data); err != nil {
		invalid(w, r, err)

		return
	}

	t, err := v.b.UpdateTag(r.Context(), id, *data.Tag)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	render.JSON(w, r, t)
}

func (v *views) deleteTag(w http.ResponseWriter, r *http.Request) {
	v.byID(w, r, "tagID", v.b.DeleteTag)
}

func (v *views) approveComment(w http.ResponseWriter, r *http.Request) {
	v.byID(w, r, "commentID", v.b.ApproveComment)
}

func (v *views) rejectComment(w http.ResponseWriter, r *http.Request) {
	v.byID(w, r, "commentID", v.b.RejectComment)
}

func (v *views) deleteComment(w http.ResponseWriter, r *http.Request) {
	v.byID(w, r, "commentID", v.b.DeleteComment)
}

// byID runs an admin action keyed by a URL id and answers 204.
func (v *views) byID(w http.ResponseWriter, r *http.Request, key string, fn func(ctx context.Context, id uint) error) {
	id, err := article.URLID(r, key)
	if err != nil {
		invalid(w, r, err)

		return
	}

	if err := fn(r.Context(), id); err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (v *views) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		invalid(w, r, err)

		return
	}

	f, hdr, err := r.FormFile("file")
	if err != nil {
		invalid(w, r, err)

		return
	}
	defer f.Close()

	up, err := v.b.UploadImage(r.Context(), hdr.Filename, f)
	if err != nil {
		errresponse.Respond(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, up)
}

func invalid(w http.ResponseWriter, r *http.Request, err error) {
	renderOrLog(w, r, errresponse.ErrInvalidRequest(err))
}
