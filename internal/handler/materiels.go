package handler

import (
	"net/http"
	"strconv"

	"github.com/LeZelote01/stock-manager/internal/apierror"
	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/repository"
	"github.com/LeZelote01/stock-manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MaterielsHandler struct{ svc service.MaterielService }

func NewMaterielsHandler(svc service.MaterielService) *MaterielsHandler {
	return &MaterielsHandler{svc: svc}
}

func (h *MaterielsHandler) Creer(c *gin.Context) {
	var req dto.CreerMaterielRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Creer(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MaterielsHandler) Lister(c *gin.Context) {
	filter := repository.MaterielFilter{
		Nom:       c.Query("nom"),
		Categorie: c.Query("categorie"),
	}
	if raw := c.Query("page"); raw != "" {
		filter.Page, _ = strconv.Atoi(raw)
	}
	if raw := c.Query("limit"); raw != "" {
		filter.Limit, _ = strconv.Atoi(raw)
	}
	resp, err := h.svc.Lister(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la liste des matériels"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterielsHandler) ObtenirParID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.ObtenirParID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterielsHandler) Modifier(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	var req dto.ModifierMaterielRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Modifier(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterielsHandler) Supprimer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	if err := h.svc.Supprimer(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Matériel supprimé avec succès"})
}

// AjusterStock handles PATCH /api/materiels/:id/stock with body
// {"delta": n, "motif": "..."} — administrative corrections outside demandes.
func (h *MaterielsHandler) AjusterStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	var req struct {
		Delta int    `json:"delta" validate:"required"`
		Motif string `json:"motif"`
	}
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjusterStock(c.Request.Context(), id, req.Delta, req.Motif)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
