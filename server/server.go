package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/urbanreach/routing-gateway/config"
	"github.com/urbanreach/routing-gateway/dispatch"
)

// Server wires the dispatcher into a gin HTTP server.
type Server struct {
	cfg        config.AppConfig
	dispatcher *dispatch.Dispatcher
	cache      *planCache
	metrics    *Metrics
	log        *zap.Logger
	httpServer *http.Server
}

// New builds the server. The configuration is taken by value and never
// mutated afterwards.
func New(cfg config.AppConfig, dispatcher *dispatch.Dispatcher, log *zap.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		cache:      newPlanCache(cfg.Cache.Size, time.Duration(cfg.Cache.TTLSeconds)*time.Second),
		metrics:    NewMetrics(),
		log:        log,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	engine.Use(cors.New(corsCfg))

	engine.GET("/api/plan", s.handlePlan)
	engine.POST("/api/plan", s.handlePlan)
	engine.GET("/api/health", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler exposes the HTTP handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs one line per request with the fields the access log
// needs.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("requestId", c.Writer.Header().Get(requestIDHeader)),
		)
	}
}
