package handler

import (
	"net/http"

	"github.com/LeZelote01/stock-manager/internal/apierror"
	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login handles POST /api/login — the legacy single-admin password exchange.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Mot de passe incorrect"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
