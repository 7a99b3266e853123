package handler

import (
	"net/http"

	"github.com/LeZelote01/stock-manager/internal/apierror"
	"github.com/LeZelote01/stock-manager/internal/dto"
	"github.com/LeZelote01/stock-manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PersonnelHandler serves the agents, superviseurs, and chef-section
// reference collections. The three groups share identical CRUD shapes, so
// each route set is generated from the same helpers.
type PersonnelHandler struct{ svc service.PersonnelService }

func NewPersonnelHandler(svc service.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{svc: svc}
}

type personnelOps struct {
	creer     func(c *gin.Context, req dto.PersonnelRequest) (*dto.PersonnelResponse, error)
	lister    func(c *gin.Context) ([]dto.PersonnelResponse, error)
	modifier  func(c *gin.Context, id uuid.UUID, req dto.PersonnelRequest) (*dto.PersonnelResponse, error)
	supprimer func(c *gin.Context, id uuid.UUID) error
	deleteMsg string
}

// Register mounts the three collections on the given router group.
func (h *PersonnelHandler) Register(g *gin.RouterGroup) {
	mount := func(path string, ops personnelOps) {
		g.GET(path, func(c *gin.Context) {
			resp, err := ops.lister(c)
			if err != nil {
				c.JSON(http.StatusInternalServerError, apierror.New("Erreur lors de la liste"))
				return
			}
			c.JSON(http.StatusOK, resp)
		})
		g.POST(path, func(c *gin.Context) {
			var req dto.PersonnelRequest
			if !bindAndValidate(c, &req) {
				return
			}
			resp, err := ops.creer(c, req)
			if err != nil {
				writeServiceError(c, err)
				return
			}
			c.JSON(http.StatusCreated, resp)
		})
		g.PUT(path+"/:id", func(c *gin.Context) {
			id, err := uuid.Parse(c.Param("id"))
			if err != nil {
				c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
				return
			}
			var req dto.PersonnelRequest
			if !bindAndValidate(c, &req) {
				return
			}
			resp, err := ops.modifier(c, id, req)
			if err != nil {
				writeServiceError(c, err)
				return
			}
			c.JSON(http.StatusOK, resp)
		})
		g.DELETE(path+"/:id", func(c *gin.Context) {
			id, err := uuid.Parse(c.Param("id"))
			if err != nil {
				c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
				return
			}
			if err := ops.supprimer(c, id); err != nil {
				writeServiceError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": ops.deleteMsg})
		})
	}

	mount("/agents", personnelOps{
		creer: func(c *gin.Context, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
			return h.svc.CreerAgent(c.Request.Context(), req)
		},
		lister: func(c *gin.Context) ([]dto.PersonnelResponse, error) {
			return h.svc.ListerAgents(c.Request.Context())
		},
		modifier: func(c *gin.Context, id uuid.UUID, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
			return h.svc.ModifierAgent(c.Request.Context(), id, req)
		},
		supprimer: func(c *gin.Context, id uuid.UUID) error {
			return h.svc.SupprimerAgent(c.Request.Context(), id)
		},
		deleteMsg: "Agent supprimé avec succès",
	})

	mount("/superviseurs", personnelOps{
		creer: func(c *gin.Context, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
			return h.svc.CreerSuperviseur(c.Request.Context(), req)
		},
		lister: func(c *gin.Context) ([]dto.PersonnelResponse, error) {
			return h.svc.ListerSuperviseurs(c.Request.Context())
		},
		modifier: func(c *gin.Context, id uuid.UUID, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
			return h.svc.ModifierSuperviseur(c.Request.Context(), id, req)
		},
		supprimer: func(c *gin.Context, id uuid.UUID) error {
			return h.svc.SupprimerSuperviseur(c.Request.Context(), id)
		},
		deleteMsg: "Superviseur supprimé avec succès",
	})

	mount("/chef-section", personnelOps{
		creer: func(c *gin.Context, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
			return h.svc.CreerChefSection(c.Request.Context(), req)
		},
		lister: func(c *gin.Context) ([]dto.PersonnelResponse, error) {
			return h.svc.ListerChefsSection(c.Request.Context())
		},
		modifier: func(c *gin.Context, id uuid.UUID, req dto.PersonnelRequest) (*dto.PersonnelResponse, error) {
			return h.svc.ModifierChefSection(c.Request.Context(), id, req)
		},
		supprimer: func(c *gin.Context, id uuid.UUID) error {
			return h.svc.SupprimerChefSection(c.Request.Context(), id)
		},
		deleteMsg: "Chef de section supprimé avec succès",
	})
}
