// controllers/booking_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumarise-backend/logger"
	"lumarise-backend/services"
	"lumarise-backend/utils"
)

// BookingController carries booking actions. Plain CRUD is served by the
// bookings ResourceController.
type BookingController struct {
	Svc *services.BookingService
	log *logger.Logger
}

func NewBookingController(svc *services.BookingService, logg *logger.Logger) *BookingController {
	if logg == nil {
		logg = logger.Nop()
	}
	return &BookingController{Svc: svc, log: logg}
}

func (bc *BookingController) Mount(g gin.IRouter) {
	route(g, http.MethodPost, "/bookings/:id/confirm", bc.Confirm)
}

// ---------------------------
// POST /bookings/:id/confirm/
// ---------------------------

func (bc *BookingController) Confirm(c *gin.Context) {
	id, err := parseID(c, "Booking")
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
		return
	}
	if _, err := bc.Svc.Confirm(c.Request.Context(), id); err != nil {
		utils.RespondError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking confirmed successfully!"})
}
