package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumarise-backend/logger"
	"lumarise-backend/services"
	"lumarise-backend/utils"
)

type EnquiryController struct {
	Svc   *services.EnquiryService
	Limit gin.HandlerFunc
	log   *logger.Logger
}

// NewEnquiryController builds the controller. limit runs before the handler; nil
// means unlimited.
func NewEnquiryController(svc *services.EnquiryService, limit gin.HandlerFunc, logg *logger.Logger) *EnquiryController {
	if logg == nil {
		logg = logger.Nop()
	}
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}
	return &EnquiryController{Svc: svc, Limit: limit, log: logg}
}

func (ec *EnquiryController) Mount(g gin.IRouter) {
	route(g, http.MethodPost, "/send-enquiry", ec.Limit, ec.Send)
}

// ----------------------------------------------------
// POST /send-enquiry/
// ----------------------------------------------------

func (ec *EnquiryController) Send(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		utils.RespondError(c, ec.log, err)
		return
	}
	get := func(name string) string {
		v, _ := body.Values.Get(name)
		return v
	}

	err = ec.Svc.Send(c.Request.Context(), utils.Enquiry{
		Name:    get("name"),
		Place:   get("place"),
		Email:   get("email"),
		Phone:   get("phone"),
		Message: get("message"),
	})
	if err != nil {
		utils.RespondError(c, ec.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "Email sent successfully!"})
}
