package handler

import (
	"net/http"

	"github.com/LeZelote01/stock-manager/internal/apierror"
	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DemandesHandler struct{ svc service.DemandeService }

func NewDemandesHandler(svc service.DemandeService) *DemandesHandler {
	return &DemandesHandler{svc: svc}
}

// CreerDemande handles POST /api/demandes: validates references, values the
// withdrawal, decrements stock atomically, and returns the approved demande.
func (h *DemandesHandler) CreerDemande(c *gin.Context) {
	var req dto.CreerDemandeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreerDemande(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListerDemandes handles GET /api/demandes — newest first, paginated.
func (h *DemandesHandler) ListerDemandes(c *gin.Context) {
	var filter dto.DemandeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListerDemandes(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la liste des demandes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenirDemande handles GET /api/demandes/:id.
func (h *DemandesHandler) ObtenirDemande(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.ObtenirDemande(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
