package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/fizzbo19/dealercommand/internal/analytics"
	"github.com/fizzbo19/dealercommand/internal/billing"
	billingdomain "github.com/fizzbo19/dealercommand/internal/billing/domain"
	"github.com/fizzbo19/dealercommand/internal/config"
	"github.com/fizzbo19/dealercommand/internal/content"
	"github.com/fizzbo19/dealercommand/internal/entitlement"
	entitlementdomain "github.com/fizzbo19/dealercommand/internal/entitlement/domain"
	"github.com/fizzbo19/dealercommand/internal/inventory"
	inventorydomain "github.com/fizzbo19/dealercommand/internal/inventory/domain"
	"github.com/fizzbo19/dealercommand/internal/lock"
	"github.com/fizzbo19/dealercommand/internal/observability"
	obsmiddleware "github.com/fizzbo19/dealercommand/internal/observability/logger"
	"github.com/fizzbo19/dealercommand/internal/plan"
	"github.com/fizzbo19/dealercommand/internal/profile"
	profiledomain "github.com/fizzbo19/dealercommand/internal/profile/domain"
	"github.com/fizzbo19/dealercommand/internal/records"
	recordsdomain "github.com/fizzbo19/dealercommand/internal/records/domain"
	"github.com/fizzbo19/dealercommand/internal/sheetstore"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	sheetstore.Module,
	lock.Module,
	plan.Module,
	profile.Module,
	entitlement.Module,
	inventory.Module,
	records.Module,
	analytics.Module,
	content.Module,
	billing.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	defaultPlan  entitlementdomain.Plan
	entitlements entitlementdomain.Service
	profileSvc   profiledomain.Service
	inventorySvc inventorydomain.Service
	recordsSvc   recordsdomain.Service
	analyticsSvc *analytics.Service
	contentSvc   *content.Service
	billingSvc   billingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Entitlements entitlementdomain.Service
	ProfileSvc   profiledomain.Service
	InventorySvc inventorydomain.Service
	RecordsSvc   recordsdomain.Service
	AnalyticsSvc *analytics.Service
	ContentSvc   *content.Service
	BillingSvc   billingdomain.Service
}

func NewServer(p ServerParams) *Server {
	defaultPlan, err := entitlementdomain.ParsePlan(p.Cfg.DefaultPlan)
	if err != nil {
		defaultPlan = entitlementdomain.PlanFreeTrial
	}

	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		defaultPlan:  defaultPlan,
		entitlements: p.Entitlements,
		profileSvc:   p.ProfileSvc,
		inventorySvc: p.InventorySvc,
		recordsSvc:   p.RecordsSvc,
		analyticsSvc: p.AnalyticsSvc,
		contentSvc:   p.ContentSvc,
		billingSvc:   p.BillingSvc,
	}

	svc.registerRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/ping", s.Ping)

	// -------- Dealership --------
	r.GET("/dealership/profile", s.GetDealershipProfile)
	r.POST("/dealership/profile", s.SaveDealershipProfile)
	r.GET("/dealership/status", s.GetDealershipStatus)
	r.POST("/dealership/ensure", s.EnsureDealershipStatus)

	// -------- Trial / entitlement --------
	r.POST("/trial/increment", s.IncrementTrialUsage)
	r.POST("/trial/decrement", s.DecrementTrialUsage)
	r.POST("/trial/reset", s.ResetTrial)
	r.GET("/trial/limit", s.GetListingLimit)
	r.GET("/trial/days", s.GetRemainingDays)
	r.GET("/user/can-login", s.CanUserLogin)

	// -------- Inventory --------
	r.GET("/inventory", s.ListInventory)
	r.POST("/inventory", s.UpsertInventory)

	// -------- Records --------
	r.GET("/records", s.ListRecords)
	r.POST("/user/activity", s.saveRecord(recordsdomain.RecordTypeUserActivity))
	r.POST("/trial/usage", s.saveRecord(recordsdomain.RecordTypeTrialUsage))
	r.POST("/platinum/usage", s.saveRecord(recordsdomain.RecordTypePlatinumUsage))
	r.POST("/social/media", s.saveRecord(recordsdomain.RecordTypeSocialMedia))
	r.POST("/custom/report", s.saveRecord(recordsdomain.RecordTypeCustomReport))
	r.POST("/ai/script", s.saveRecord(recordsdomain.RecordTypeAIScript))
	r.POST("/performance", s.saveRecord(recordsdomain.RecordTypePerformance))

	// -------- Analytics --------
	r.GET("/performance", s.GetPerformanceDashboard)

	// -------- Content generation --------
	r.POST("/ai/listing", s.GenerateListing)
	r.POST("/ai/caption", s.GenerateCaption)
	r.POST("/ai/script/generate", s.GenerateScript)

	// -------- Billing --------
	r.POST("/billing/checkout", s.CreateCheckout)
	r.GET("/billing/checkout/:id", s.GetCheckout)
	r.POST("/billing/apply", s.ApplyCheckout)
}
