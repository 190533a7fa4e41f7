package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/ledgerdesk/internal/collections"
	"github.com/smallbiznis/ledgerdesk/internal/config"
	"github.com/smallbiznis/ledgerdesk/internal/ledgerstore"
	"github.com/smallbiznis/ledgerdesk/internal/observability"
	obsmiddleware "github.com/smallbiznis/ledgerdesk/internal/observability/logger"
	obstracing "github.com/smallbiznis/ledgerdesk/internal/observability/tracing"
	"github.com/smallbiznis/ledgerdesk/internal/reconciliation"
	reconciliationdomain "github.com/smallbiznis/ledgerdesk/internal/reconciliation/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	ledgerstore.Module,
	collections.Module,
	reconciliation.Module,
	fx.Provide(NewEngine, NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type ServerParams struct {
	fx.In

	Engine            *gin.Engine
	Cfg               config.Config
	ReconciliationSvc reconciliationdomain.Service
}

type Server struct {
	engine            *gin.Engine
	cfg               config.Config
	reconciliationSvc reconciliationdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:            p.Engine,
		cfg:               p.Cfg,
		reconciliationSvc: p.ReconciliationSvc,
	}
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1/reconciliation")
	api.POST("/refresh", s.PostRefresh)
	api.GET("/titles", s.GetTitles)
	api.GET("/invoices", s.GetInvoices)
	api.GET("/summary", s.GetSummary)
	api.GET("/statuses", s.GetStatuses)
	api.GET("/clients", s.GetClientSummaries)
	api.GET("/collections/debtors", s.GetDebtSummaries)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
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
