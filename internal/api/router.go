package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ward26-notification-service/internal/config"
	"ward26-notification-service/internal/deliverylog"
	"ward26-notification-service/internal/logging"
	"ward26-notification-service/internal/notification"
)

// NewRouter builds the diagnostics API. The complaint-facing HTTP surface
// lives in the main application; this router only exposes notification
// health, the delivery log, a manual test fire and the live report feed.
func NewRouter(svc *notification.Service, store *deliverylog.Store, hub *notification.Hub, cfg config.Config, logger *logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	h := NewHandler(svc, store, hub, cfg, logger)

	api := r.Group(cfg.API.BasePath)
	{
		api.GET("/diagnostics", h.GetDiagnostics)
		api.GET("/notifications/logs", h.GetDeliveryLog)
		api.POST("/notifications/test", h.TestNotification)
		api.GET("/notifications/ws", h.StreamReports)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
