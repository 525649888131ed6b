package server

import (
	"fmt"
	"net/http"

	"github.com/krishigpt/server/internal/advisor"
	"github.com/krishigpt/server/internal/advisor/media"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the transport-level settings.
type Config struct {
	Port       int    `envconfig:"PORT" default:"5000"`
	AppVersion string `envconfig:"APP_VERSION" default:"1.0.0"`

	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`
}

// Server is the thin HTTP layer over the session engine: JSON chat API,
// the Twilio WhatsApp webhook, health and metrics. No request shaping
// beyond parsing; all decision logic lives in the engine.
type Server struct {
	echo    *echo.Echo
	engine  *advisor.Engine
	media   *media.Client
	fetcher *media.TwilioFetcher
	sig     *twilioValidator
	version string
}

func New(cfg Config, engine *advisor.Engine, mediaClient *media.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:    e,
		engine:  engine,
		media:   mediaClient,
		version: cfg.AppVersion,
	}
	if cfg.TwilioAuthToken != "" {
		s.sig = newTwilioValidator(cfg.TwilioAuthToken)
		s.fetcher = media.NewTwilioFetcher(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/", s.home)
	s.echo.GET("/health", s.health)
	s.echo.GET("/healthz", s.health)
	s.echo.GET("/api/docs", s.docs)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.POST("/api/chat", s.chat)
	s.echo.POST("/api/clear-history", s.clearHistory)
	s.echo.GET("/api/quick-info/:topic", s.quickInfo)

	s.echo.GET("/whatsapp/webhook", s.whatsappStatus)
	s.echo.POST("/whatsapp/webhook", s.whatsappWebhook)
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start(port int) error {
	return s.echo.Start(fmt.Sprintf(":%d", port))
}

func (s *Server) home(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "KrishiGPT",
		"message": "AI कृषि सलाहकार — POST /api/chat से सवाल पूछें",
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":         "healthy",
		"service":        "KrishiGPT",
		"version":        s.version,
		"ai_ready":       s.engine != nil,
		"model":          s.modelName(),
		"store_degraded": s.engine != nil && s.engine.StoreDegraded(),
		"whatsapp_ready": s.sig != nil,
	})
}

func (s *Server) docs(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "KrishiGPT API",
		"version": s.version,
		"endpoints": map[string]string{
			"GET /":                      "Service info",
			"GET /health":                "Health check",
			"GET /healthz":               "Health check alias",
			"GET /metrics":               "Prometheus metrics",
			"POST /api/chat":             "Web chat API { message, user_id? }",
			"POST /api/clear-history":    "Clear chat history { user_id }",
			"GET /api/quick-info/:topic": "Quick reference info",
			"POST /whatsapp/webhook":     "Twilio WhatsApp webhook",
		},
	})
}

func (s *Server) modelName() string {
	if s.engine == nil {
		return ""
	}
	return s.engine.Model()
}
