package errresponse

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blogconsole/client"
	"github.com/SergeyParamoshkin/blogconsole/internal/logctx"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	AppCode    int64  `json:"code,omitempty"`  // application-specific error code
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusUnprocessableEntity,
		StatusText:     "Error rendering response.",
		ErrorText:      err.Error(),
	}
}

// ErrUpstream reports a backend that could not be reached or answered with
// an unmapped HTTP status.
func ErrUpstream(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadGateway,
		StatusText:     "Backend request failed.",
		ErrorText:      err.Error(),
	}
}

// ErrInternal reports a local failure, such as an unreadable session store.
func ErrInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

// nolint
var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}

// FromClient maps a blog API failure onto a console response. The backend
// message is passed through as ErrorText.
func FromClient(err error) render.Renderer {
	if errors.Is(err, client.ErrSessionStore) {
		return ErrInternal(err)
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound {
			return &ErrResponse{
				Err:            err,
				HTTPStatusCode: http.StatusNotFound,
				StatusText:     ErrNotFound.StatusText,
				AppCode:        int64(apiErr.Code),
				ErrorText:      apiErr.Msg,
			}
		}

		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusBadRequest,
			StatusText:     "Request rejected by backend.",
			AppCode:        int64(apiErr.Code),
			ErrorText:      apiErr.Msg,
		}
	}

	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusNotFound,
			StatusText:     ErrNotFound.StatusText,
			ErrorText:      httpErr.Error(),
		}
	}

	return ErrUpstream(err)
}

// Respond writes err for a console view. Admin session failures send the
// visitor to the login page instead, remembering where they were headed
// when the request was a page load.
func Respond(w http.ResponseWriter, r *http.Request, err error) {
	if client.IsAuthFailure(err) || client.IsLocalAbort(err) {
		to := client.LoginPath
		if r.Method == http.MethodGet {
			to += "?" + url.Values{"redirect": {r.URL.RequestURI()}}.Encode()
		}
		http.Redirect(w, r, to, http.StatusFound)

		return
	}

	if rerr := render.Render(w, r, FromClient(err)); rerr != nil {
		logctx.From(r.Context()).Errorw(rerr.Error())
	}
}
