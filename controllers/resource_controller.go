package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumarise-backend/logger"
	"lumarise-backend/presenter"
	"lumarise-backend/services"
	"lumarise-backend/storage"
	"lumarise-backend/utils"
)

// Mounter registers a controller's routes on a router group.
type Mounter interface {
	Mount(g gin.IRouter)
}

// ResourceController serves list/create/retrieve/update/destroy for one flat
// resource.
type ResourceController[T, V any] struct {
	Svc   *services.ResourceService[T]
	View  func(presenter.Media, *T) V
	Store storage.Backend
	log   *logger.Logger
}

func NewResourceController[T, V any](svc *services.ResourceService[T], view func(presenter.Media, *T) V, store storage.Backend, logg *logger.Logger) *ResourceController[T, V] {
	if logg == nil {
		logg = logger.Nop()
	}
	return &ResourceController[T, V]{Svc: svc, View: view, Store: store, log: logg}
}

func (rc *ResourceController[T, V]) Mount(g gin.IRouter) {
	base := "/" + rc.Svc.Def.Name
	route(g, http.MethodGet, base, rc.List)
	route(g, http.MethodPost, base, rc.Create)
	route(g, http.MethodGet, base+"/:id", rc.Get)
	route(g, http.MethodPut, base+"/:id", rc.Update)
	route(g, http.MethodPatch, base+"/:id", rc.PartialUpdate)
	route(g, http.MethodDelete, base+"/:id", rc.Delete)
}

func (rc *ResourceController[T, V]) render(c *gin.Context, status int, item *T) {
	c.JSON(status, rc.View(mediaFor(c, rc.Store), item))
}

func (rc *ResourceController[T, V]) List(c *gin.Context) {
	q, err := listQuery(c)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	page, err := rc.Svc.List(c.Request.Context(), q)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	media := mediaFor(c, rc.Store)
	renderPage(c, media, page, func(item *T) V { return rc.View(media, item) })
}

func (rc *ResourceController[T, V]) Get(c *gin.Context) {
	id, err := parseID(c, rc.Svc.Def.Label)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	item, err := rc.Svc.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	rc.render(c, http.StatusOK, item)
}

func (rc *ResourceController[T, V]) Create(c *gin.Context) {
	w, err := rc.readWrite(c, false)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	item, err := rc.Svc.Create(c.Request.Context(), w)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	rc.render(c, http.StatusCreated, item)
}

func (rc *ResourceController[T, V]) Update(c *gin.Context) {
	rc.update(c, false)
}

func (rc *ResourceController[T, V]) PartialUpdate(c *gin.Context) {
	rc.update(c, true)
}

func (rc *ResourceController[T, V]) update(c *gin.Context, partial bool) {
	id, err := parseID(c, rc.Svc.Def.Label)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	if _, err := rc.Svc.Get(c.Request.Context(), id); err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	w, err := rc.readWrite(c, partial)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	item, err := rc.Svc.Update(c.Request.Context(), id, w)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	rc.render(c, http.StatusOK, item)
}

func (rc *ResourceController[T, V]) Delete(c *gin.Context) {
	id, err := parseID(c, rc.Svc.Def.Label)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	if err := rc.Svc.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// readWrite binds the schema and picks the declared file fields out of a
// multipart body.
func (rc *ResourceController[T, V]) readWrite(c *gin.Context, partial bool) (services.ResourceWrite[T], error) {
	body, err := readBody(c)
	if err != nil {
		return services.ResourceWrite[T]{}, err
	}
	fields, err := rc.Svc.Def.Schema.Bind(body.Values, partial)
	if err != nil {
		return services.ResourceWrite[T]{}, err
	}

	w := services.ResourceWrite[T]{Fields: fields}
	for _, f := range rc.Svc.Def.Files {
		if up := body.first(f.Name); up != nil {
			if w.Files == nil {
				w.Files = make(map[string]services.Upload)
			}
			w.Files[f.Name] = *up
		}
	}
	return w, nil
}
