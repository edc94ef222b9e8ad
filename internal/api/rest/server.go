package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/api/websocket"
	"github.com/KevinKickass/SunSpecBridge/internal/auth"
	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/KevinKickass/SunSpecBridge/internal/interfaces"
	"github.com/KevinKickass/SunSpecBridge/internal/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router      *gin.Engine
	lm          interfaces.LifecycleManager
	logger      *zap.Logger
	server      *http.Server
	wsHub       *websocket.Hub
	authService *auth.AuthService
}

func NewServer(cfg *config.Config, lm interfaces.LifecycleManager, logger *zap.Logger, wsHub *websocket.Hub, authService *auth.AuthService) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:      gin.New(),
		lm:          lm,
		logger:      logger,
		wsHub:       wsHub,
		authService: authService,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("REST server failed", zap.Error(err))
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down REST API server")
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Middleware
	s.router.Use(gin.Recovery())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(CORSMiddleware())

	// Inject AuthService into Gin context
	s.router.Use(func(c *gin.Context) {
		c.Set("authService", s.authService)
		c.Next()
	})

	// Public routes (no auth required)
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// ==================== AUTH ENDPOINTS (PUBLIC) ====================
		authPublic := v1.Group("/auth")
		{
			authPublic.POST("/login", s.login)
		}

		authProtected := v1.Group("/auth")
		authProtected.Use(s.authService.AuthMiddleware())
		{
			authProtected.GET("/me", s.getCurrentUser)
		}

		// ==================== SYSTEM (OPERATOR+) ====================
		system := v1.Group("/system")
		system.Use(s.authService.AuthMiddleware())
		system.Use(auth.RequirePermission(auth.PermOperator))
		{
			system.GET("/status", s.getSystemStatus)
			system.POST("/shutdown", auth.RequirePermission(auth.PermAdmin), s.shutdown)
		}

		// ==================== AXS SESSION ====================
		api := v1.Group("")
		api.Use(s.authService.AuthMiddleware())
		{
			// Read operations: Operator+
			api.GET("/deployment", auth.RequirePermission(auth.PermOperator), s.getDeployment)
			api.GET("/devices", auth.RequirePermission(auth.PermOperator), s.listDevices)
			api.GET("/nodes", auth.RequirePermission(auth.PermOperator), s.listNodes)
			api.GET("/nodes/:address", auth.RequirePermission(auth.PermOperator), s.getNode)
			api.GET("/registers/:name", auth.RequirePermission(auth.PermOperator), s.readRegister)
			api.GET("/models/:model/dump", auth.RequirePermission(auth.PermOperator), s.dumpModel)
			api.GET("/readings/latest", auth.RequirePermission(auth.PermOperator), s.latestReadings)
			api.GET("/readings/:register/history", auth.RequirePermission(auth.PermOperator), s.readingHistory)
			api.GET("/sessions", auth.RequirePermission(auth.PermOperator), s.listSessions)

			// Write operations: Technician+
			api.PUT("/registers/:name", auth.RequirePermission(auth.PermTechnician), s.writeRegister)
			api.PUT("/nodes/:address/commands/:register", auth.RequirePermission(auth.PermTechnician), s.writeNodeCommand)
			api.POST("/session/reconnect", auth.RequirePermission(auth.PermTechnician), s.reconnect)
		}

		// ==================== WEBSOCKET (PUBLIC - Auth via first message) ====================
		ws := v1.Group("/ws")
		{
			ws.GET("/live", s.wsLiveConnection)
			ws.GET("/status", s.authService.AuthMiddleware(), auth.RequirePermission(auth.PermOperator), s.wsStatus)
		}
	}
}

// WebSocket handlers
func (s *Server) wsLiveConnection(c *gin.Context) {
	websocket.ServeWs(s.wsHub, c.Writer, c.Request)
}

func (s *Server) wsStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connected_clients": s.wsHub.GetClientCount(),
	})
}

// Health check (public)
func (s *Server) healthCheck(c *gin.Context) {
	info := s.lm.DeviceManager().Info()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"session":   info.State,
		"timestamp": time.Now().Unix(),
	})
}
