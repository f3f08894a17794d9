package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gift-server/internal/config"
	"gift-server/internal/domain/user"
	"gift-server/internal/infrastructure"
	middleware "gift-server/internal/interfaces/httpserver/middlewares"
	"gift-server/internal/interfaces/httpserver/routes/auth"
	v1 "gift-server/internal/interfaces/httpserver/routes/v1"
)

type HTTPServer struct {
	engine      *gin.Engine
	infra       *infrastructure.Infrastructure
	v1Route     *v1.V1Route
	authRoute   *auth.AuthRoute
	authService *user.AuthService
	config      *config.Config
}

func NewHttpServer(
	v1Route *v1.V1Route,
	authRoute *auth.AuthRoute,
	authService *user.AuthService,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		gin.New(),
		infra,
		v1Route,
		authRoute,
		authService,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		if db, err := server.infra.DB.DB(); err != nil || db.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	server.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &server
}

func (httpServer *HTTPServer) Run() error {
	// Public routes (no auth required)
	root := httpServer.engine.Group("/")

	// Protected routes (auth middleware applied)
	protected := httpServer.engine.Group("/")
	protected.Use(
		middleware.AuthMiddleware(httpServer.authService, httpServer.infra.Logger),
	)

	httpServer.authRoute.RegisterRouter(root)
	httpServer.v1Route.RegisterRouter(protected)

	if err := httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
