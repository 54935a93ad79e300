package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maksym-ppt/skins-price-alert/internal/usecase"
	"go.uber.org/zap"
)

// Server exposes the sweep trigger for the external scheduler plus a
// health probe.
type Server struct {
	sweeper    *usecase.SweepUsecase
	cronSecret string
	logger     *zap.Logger
	http       *http.Server
}

func NewServer(addr string, cronSecret string, sweeper *usecase.SweepUsecase, logger *zap.Logger) *Server {
	s := &Server{sweeper: sweeper, cronSecret: cronSecret, logger: logger}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.handleHealth)
	router.GET("/cron/check-alerts", s.handleCheckAlerts)
	// Any verb other than GET on the cron path is a 405, not a 404.
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		router.Handle(method, "/cron/check-alerts", s.handleWrongMethod)
	}

	s.http = &http.Server{Addr: addr, Handler: router}
	return s
}

// Router is exposed for handler tests.
func (s *Server) Router() http.Handler {
	return s.http.Handler
}

func (s *Server) Start() error {
	err := s.http.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleWrongMethod(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}

// handleCheckAlerts runs one sweep. Guarded by a shared bearer secret: an
// unconfigured secret disables the endpoint entirely.
func (s *Server) handleCheckAlerts(c *gin.Context) {
	if s.cronSecret == "" {
		s.logger.Error("cron secret not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "CRON_SECRET not configured"})
		return
	}
	if c.GetHeader("Authorization") != "Bearer "+s.cronSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	report, err := s.sweeper.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrSweepInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "sweep already running"})
			return
		}
		s.logger.Error("sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"processed": report.Processed,
		"triggered": report.Triggered,
		"errors":    report.Errors,
	})
}
