package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumarise-backend/logger"
	"lumarise-backend/services"
	"lumarise-backend/utils"
)

type AuthController struct {
	Svc   *services.AuthService
	Limit gin.HandlerFunc
	log   *logger.Logger
}

// NewAuthController builds the controller. limit runs before the handler; nil
// means unlimited.
func NewAuthController(svc *services.AuthService, limit gin.HandlerFunc, logg *logger.Logger) *AuthController {
	if logg == nil {
		logg = logger.Nop()
	}
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}
	return &AuthController{Svc: svc, Limit: limit, log: logg}
}

func (ac *AuthController) Mount(g gin.IRouter) {
	route(g, http.MethodPost, "/login", ac.Limit, ac.Login)
}

// ----------------------------------------------------
// POST /login/
// ----------------------------------------------------

func (ac *AuthController) Login(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		utils.RespondError(c, ac.log, err)
		return
	}
	username, _ := body.Values.Get("username")
	password, _ := body.Values.Get("password")

	res, err := ac.Svc.Login(c.Request.Context(), username, password)
	if err != nil {
		utils.RespondError(c, ac.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":    res.Token,
		"username": res.Username,
	})
}
