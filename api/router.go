package api

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/use-agent/reviewui/api/handler"
	"github.com/use-agent/reviewui/api/middleware"
	"github.com/use-agent/reviewui/config"
	"github.com/use-agent/reviewui/metrics"
	"github.com/use-agent/reviewui/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewRouter creates a configured Gin engine serving the review page.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	/ui:     RateLimit
//
// The page, health and metrics endpoints are not rate limited.
func NewRouter(store *session.Store, cfg *config.Config, m *metrics.Metrics, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))

	opts := handler.PageOptions{
		CookieName: cfg.Session.CookieName,
		Websites:   cfg.UI.Websites,
	}

	r.GET("/", handler.Index(store, opts))
	r.GET("/healthz", handler.Health(store, cfg.Backend.BaseURL, startTime))
	if m != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	actions := r.Group("/ui")
	actions.Use(middleware.RateLimit(cfg.RateLimit))
	actions.POST("/scrape", handler.Submit(store, opts))
	actions.POST("/export", handler.Export(store, opts))

	return r
}
