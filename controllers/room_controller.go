package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumarise-backend/forms"
	"lumarise-backend/logger"
	"lumarise-backend/services"
	"lumarise-backend/storage"
	"lumarise-backend/utils"
)

// Multipart field names of a room write.
const (
	fieldMainImage     = "main_image"
	fieldGallery       = "images"
	fieldDeletedImages = "deleted_images"
)

type RoomController struct {
	Rooms  *services.RoomService
	Writes *services.RoomWriteService
	Store  storage.Backend
	log    *logger.Logger
}

func NewRoomController(rooms *services.RoomService, writes *services.RoomWriteService, store storage.Backend, logg *logger.Logger) *RoomController {
	if logg == nil {
		logg = logger.Nop()
	}
	return &RoomController{Rooms: rooms, Writes: writes, Store: store, log: logg}
}

func (rc *RoomController) Mount(g gin.IRouter) {
	route(g, http.MethodGet, "/rooms", rc.List)
	route(g, http.MethodPost, "/rooms", rc.Create)
	route(g, http.MethodGet, "/rooms/:id", rc.Get)
	route(g, http.MethodPut, "/rooms/:id", rc.Update)
	route(g, http.MethodPatch, "/rooms/:id", rc.PartialUpdate)
	route(g, http.MethodDelete, "/rooms/:id", rc.Delete)
}

// ----------------------------------------------------
// GET /rooms/
// ----------------------------------------------------

func (rc *RoomController) List(c *gin.Context) {
	q, err := listQuery(c)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	page, err := rc.Rooms.List(c.Request.Context(), q)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	media := mediaFor(c, rc.Store)
	renderPage(c, media, page, media.Room)
}

// ----------------------------------------------------
// GET /rooms/:id/
// ----------------------------------------------------

func (rc *RoomController) Get(c *gin.Context) {
	id, err := parseID(c, "room")
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	room, err := rc.Rooms.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	c.JSON(http.StatusOK, mediaFor(c, rc.Store).Room(room))
}

// ----------------------------------------------------
// POST /rooms/
// ----------------------------------------------------

func (rc *RoomController) Create(c *gin.Context) {
	w, err := readRoomWrite(c, false)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	w.DeletedImages = nil

	room, err := rc.Writes.Create(c.Request.Context(), w)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	c.JSON(http.StatusCreated, mediaFor(c, rc.Store).Room(room))
}

// ----------------------------------------------------
// PUT / PATCH /rooms/:id/
// ----------------------------------------------------

func (rc *RoomController) Update(c *gin.Context) {
	rc.update(c, false)
}

func (rc *RoomController) PartialUpdate(c *gin.Context) {
	rc.update(c, true)
}

func (rc *RoomController) update(c *gin.Context, partial bool) {
	id, err := parseID(c, "room")
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	if _, err := rc.Rooms.Get(c.Request.Context(), id); err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	w, err := readRoomWrite(c, partial)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}

	room, err := rc.Writes.Update(c.Request.Context(), id, w)
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	c.JSON(http.StatusOK, mediaFor(c, rc.Store).Room(room))
}

// ----------------------------------------------------
// DELETE /rooms/:id/
// ----------------------------------------------------

func (rc *RoomController) Delete(c *gin.Context) {
	id, err := parseID(c, "room")
	if err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	if err := rc.Rooms.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, rc.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// readRoomWrite validates the scalar fields and collects the image parts.
// Nothing is written when validation fails.
func readRoomWrite(c *gin.Context, partial bool) (services.RoomWrite, error) {
	body, err := readBody(c)
	if err != nil {
		return services.RoomWrite{}, err
	}
	fields, err := forms.Room.Bind(body.Values, partial)
	if err != nil {
		return services.RoomWrite{}, err
	}

	w := services.RoomWrite{
		Fields:    fields,
		MainImage: body.first(fieldMainImage),
		Gallery:   body.Files[fieldGallery],
	}
	// JSON null reads as absent.
	if raw, ok := body.Values[fieldDeletedImages]; ok && raw != nil {
		w.DeletedImages = raw
	}
	return w, nil
}
