package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"

	"github.com/SergeyParamoshkin/blogconsole/internal/model"
)

// formFile is a single-file multipart body.
type formFile struct {
	field string
	name  string
	r     io.Reader
}

func (f formFile) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(f.field, f.name)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f.r); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

// UploadImage sends an image as the "file" form field and returns where the
// backend stored it.
func (b *Blog) UploadImage(ctx context.Context, name string, r io.Reader) (model.Upload, error) {
	var up model.Upload
	err := b.Admin.Post(ctx, "/api/admin/upload/image", formFile{field: "file", name: name, r: r}, &up)

	return up, err
}
