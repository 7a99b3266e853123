package router

import (
	"time"

	"github.com/LeZelote01/stock-manager/internal/config"
	"github.com/LeZelote01/stock-manager/internal/forecast"
	"github.com/LeZelote01/stock-manager/internal/handler"
	"github.com/LeZelote01/stock-manager/internal/middleware"
	"github.com/LeZelote01/stock-manager/internal/repository"
	"github.com/LeZelote01/stock-manager/internal/service"
	"github.com/LeZelote01/stock-manager/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns the configured Gin engine plus the
// forecast service, which the caller hands to the retrain cron.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, engine *forecast.Engine) (*gin.Engine, service.ForecastService, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	materielRepo := repository.NewMaterielRepository(db)
	demandeRepo := repository.NewDemandeRepository(db)
	personnelRepo := repository.NewPersonnelRepository(db)
	mouvementRepo := repository.NewMouvementStockRepository(db)

	// Worker dispatcher — injected into services that enqueue async events
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc, err := service.NewAuthService(cfg)
	if err != nil {
		return nil, nil, err
	}
	forecastSvc := service.NewForecastService(engine, demandeRepo, materielRepo)
	materielSvc := service.NewMaterielService(materielRepo, mouvementRepo)
	personnelSvc := service.NewPersonnelService(personnelRepo)
	demandeSvc := service.NewDemandeService(demandeRepo, materielRepo, personnelRepo, mouvementRepo, dispatcher)
	stockSvc := service.NewStockService(materielRepo, mouvementRepo, forecastSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	materielsH := handler.NewMaterielsHandler(materielSvc)
	personnelH := handler.NewPersonnelHandler(personnelSvc)
	demandesH := handler.NewDemandesHandler(demandeSvc)
	stockH := handler.NewStockHandler(stockSvc, forecastSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, engine))

	api := r.Group("/api")

	// Auth (public, throttled)
	api.POST("/login", middleware.LoginRateLimiter(), authH.Login)

	// Withdrawal pipeline — supervisors submit from the floor, no session
	api.POST("/demandes", demandesH.CreerDemande)
	api.GET("/demandes", demandesH.ListerDemandes)
	api.GET("/demandes/:id", demandesH.ObtenirDemande)

	// Stock monitoring & forecasting (read-only)
	api.GET("/stock-alerts", stockH.ObtenirAlertes)
	api.GET("/predictions/:material_id", stockH.ObtenirPrediction)
	api.GET("/stock-value", stockH.ValeurStock)
	api.GET("/mouvements", stockH.ListerMouvements)

	// Catalog reads
	api.GET("/materiels", materielsH.Lister)
	api.GET("/materiels/:id", materielsH.ObtenirParID)

	// Reference data — agents, superviseurs, chef-section
	personnelH.Register(api)

	// Admin-only writes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	admin := api.Group("", jwtMW)
	{
		admin.POST("/materiels", materielsH.Creer)
		admin.PUT("/materiels/:id", materielsH.Modifier)
		admin.DELETE("/materiels/:id", materielsH.Supprimer)
		admin.PATCH("/materiels/:id/stock", materielsH.AjusterStock)
	}

	return r, forecastSvc, nil
}
