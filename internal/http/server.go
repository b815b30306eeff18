package http

import (
	"context"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	echo "github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ufosc/minihack-registration/internal/audit"
	"github.com/ufosc/minihack-registration/internal/config"
	"github.com/ufosc/minihack-registration/internal/http/middleware"
	"github.com/ufosc/minihack-registration/internal/metrics"
	"github.com/ufosc/minihack-registration/internal/ratelimit"
	"github.com/ufosc/minihack-registration/internal/repository"
	"github.com/ufosc/minihack-registration/internal/service/registration"
	"github.com/ufosc/minihack-registration/internal/storage"
	"github.com/ufosc/minihack-registration/internal/validate"
)

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, mysqlDB, clickhouseDB *sqlx.DB, rds *redis.Client, store storage.ObjectStorage) *Server {
	// repos
	regsRepo := repository.NewRegistrationsRepository(mysqlDB)
	auditRepo := repository.NewAuditRepository(clickhouseDB)

	// pipeline pieces
	auditor := audit.NewRecorder(auditRepo)
	limiter := ratelimit.New(ratelimit.Config{
		Redis:  rds,
		Limit:  cfg.RateLimit.Limit,
		Window: cfg.RateLimit.Window(),
	})
	validator := validate.New(cfg.Registration.EmailDomain)
	regSvc := registration.New(validator, limiter, regsRepo, auditor)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger(), echoMid.CORS())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// routes
	v1 := e.Group("/v1")
	v1.POST("/register", registerHandler(regSvc))
	v1.POST("/uploads/resume", uploadResumeHandler(store, cfg.Uploads.MaxBytes))

	adm := v1.Group("/admin", middleware.AdminKeyMiddleware(cfg.Admin.Key))
	adm.GET("/registrations", listRegistrationsHandler(regsRepo))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
