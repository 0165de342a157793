package controllers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lumarise-backend/apperrors"
	"lumarise-backend/forms"
	"lumarise-backend/middleware"
	"lumarise-backend/presenter"
	"lumarise-backend/services"
	"lumarise-backend/storage"
)

// route registers handlers for path with and without the trailing slash.
func route(g gin.IRouter, method, path string, handlers ...gin.HandlerFunc) {
	path = strings.TrimRight(path, "/")
	g.Handle(method, path+"/", handlers...)
	if path != "" {
		g.Handle(method, path, handlers...)
	}
}

// ----------------------------------------------------
// Origin / media
// ----------------------------------------------------

// requestOrigin is "scheme://host" as the client addressed us. Reverse
// proxy headers count only when the peer is a trusted proxy.
func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	host := c.Request.Host
	if !middleware.FromTrustedProxy(c) {
		return scheme + "://" + host
	}

	switch proto := strings.ToLower(firstHeaderValue(c, "X-Forwarded-Proto")); proto {
	case "http", "https":
		scheme = proto
	}
	if fwd := firstHeaderValue(c, "X-Forwarded-Host"); fwd != "" {
		host = fwd
	}
	return scheme + "://" + host
}

func firstHeaderValue(c *gin.Context, name string) string {
	v := c.GetHeader(name)
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

func mediaFor(c *gin.Context, store storage.Backend) presenter.Media {
	return presenter.NewMedia(requestOrigin(c), store)
}

// ----------------------------------------------------
// Path / query params
// ----------------------------------------------------

func parseID(c *gin.Context, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NotFound(label)
	}
	return uint(id), nil
}

func listQuery(c *gin.Context) (services.ListQuery, error) {
	q := services.ListQuery{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     1,
	}
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return q, apperrors.New(apperrors.CodeNotFound, "invalid page")
		}
		q.Page = n
	}
	return q, nil
}

func renderPage[T, V any](c *gin.Context, media presenter.Media, page *services.Page[T], view func(*T) V) {
	next, previous := media.PageLinks(c.Request.URL, page.Number, page.HasNext(), page.HasPrevious())
	c.JSON(http.StatusOK, presenter.PageView[V]{
		Count:    page.Count,
		Next:     next,
		Previous: previous,
		Results:  presenter.Render(page.Items, view),
	})
}

// ----------------------------------------------------
// Request bodies
// ----------------------------------------------------

// requestBody is a JSON, urlencoded or multipart body. Files are only
// present for multipart.
type requestBody struct {
	Values forms.Values
	Files  map[string][]services.Upload
}

// first returns the first upload of a multipart file field.
func (b *requestBody) first(name string) *services.Upload {
	if files := b.Files[name]; len(files) > 0 {
		return &files[0]
	}
	return nil
}

func readBody(c *gin.Context) (*requestBody, error) {
	switch c.ContentType() {
	case "multipart/form-data":
		form, err := c.MultipartForm()
		if err != nil {
			return nil, malformedBody(err)
		}
		body := &requestBody{
			Values: forms.FromForm(form.Value),
			Files:  make(map[string][]services.Upload, len(form.File)),
		}
		empty := map[string]string{}
		for name, headers := range form.File {
			for _, fh := range headers {
				up, err := readUpload(fh)
				if err != nil {
					return nil, malformedBody(err)
				}
				if len(up.Data) == 0 {
					empty[name] = "The submitted file is empty."
					continue
				}
				body.Files[name] = append(body.Files[name], up)
			}
		}
		if len(empty) > 0 {
			return nil, apperrors.New(apperrors.CodeValidation, "validation failed").WithDetails(empty)
		}
		return body, nil

	case "application/x-www-form-urlencoded":
		if err := c.Request.ParseForm(); err != nil {
			return nil, malformedBody(err)
		}
		return &requestBody{Values: forms.FromForm(c.Request.PostForm)}, nil

	default:
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, malformedBody(err)
		}
		vals, err := forms.FromJSON(raw)
		if err != nil {
			return nil, err
		}
		return &requestBody{Values: vals}, nil
	}
}

func readUpload(fh *multipart.FileHeader) (services.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return services.Upload{}, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.Upload{}, fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}
	return services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func malformedBody(err error) error {
	return apperrors.Wrap(apperrors.CodeValidation, err, "malformed request body")
}
