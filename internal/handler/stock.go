package handler

import (
	"net/http"
	"strconv"

	"github.com/LeZelote01/stock-manager/internal/apierror"
	"github.com/LeZelote01/stock-manager/internal/repository"
	"github.com/LeZelote01/stock-manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockHandler struct {
	stock    service.StockService
	forecast service.ForecastService
}

func NewStockHandler(stock service.StockService, forecast service.ForecastService) *StockHandler {
	return &StockHandler{stock: stock, forecast: forecast}
}

// ObtenirAlertes handles GET /api/stock-alerts: every material with its
// urgency level and a demand forecast.
func (h *StockHandler) ObtenirAlertes(c *gin.Context) {
	alertes, err := h.stock.ObtenirAlertes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du calcul des alertes"))
		return
	}
	c.JSON(http.StatusOK, alertes)
}

// ObtenirPrediction handles GET /api/predictions/:material_id?days_ahead=30.
func (h *StockHandler) ObtenirPrediction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("material_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	daysAhead := 30
	if raw := c.Query("days_ahead"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("days_ahead invalide"))
			return
		}
		daysAhead = n
	}

	resp, err := h.forecast.Predire(c.Request.Context(), id, daysAhead)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValeurStock handles GET /api/stock-value.
func (h *StockHandler) ValeurStock(c *gin.Context) {
	resp, err := h.stock.ValeurStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors du calcul de la valeur du stock"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListerMouvements handles GET /api/mouvements with optional materiel_id and
// type filters.
func (h *StockHandler) ListerMouvements(c *gin.Context) {
	filter := repository.MouvementStockFilter{Type: c.Query("type")}
	if raw := c.Query("materiel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("materiel_id invalide"))
			return
		}
		filter.MaterielID = &id
	}
	if raw := c.Query("page"); raw != "" {
		filter.Page, _ = strconv.Atoi(raw)
	}
	if raw := c.Query("limit"); raw != "" {
		filter.Limit, _ = strconv.Atoi(raw)
	}

	resp, err := h.stock.ListerMouvements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la liste des mouvements"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
