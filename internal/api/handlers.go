package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ward26-notification-service/internal/config"
	"ward26-notification-service/internal/deliverylog"
	"ward26-notification-service/internal/logging"
	"ward26-notification-service/internal/models"
	"ward26-notification-service/internal/notification"
)

type Handler struct {
	svc    *notification.Service
	store  *deliverylog.Store
	hub    *notification.Hub
	cfg    config.Config
	logger *logging.Logger
}

func NewHandler(svc *notification.Service, store *deliverylog.Store, hub *notification.Hub, cfg config.Config, logger *logging.Logger) *Handler {
	return &Handler{svc: svc, store: store, hub: hub, cfg: cfg, logger: logger}
}

// GetDiagnostics reports channel availability and recipient configuration,
// replacing the pile of one-off diagnosis scripts the original system grew.
func (h *Handler) GetDiagnostics(c *gin.Context) {
	whatsapp, sms, email := h.svc.ChannelsConfigured()
	logEntries := 0
	if h.store != nil {
		logEntries = len(h.store.Entries())
	}
	c.JSON(http.StatusOK, gin.H{
		"whatsapp_configured": whatsapp,
		"sms_configured":      sms,
		"email_configured":    email,
		"admin_phones":        len(h.cfg.Recipients.AdminPhones),
		"admin_emails":        len(h.cfg.Recipients.AdminEmails),
		"config_warnings":     h.cfg.Warnings,
		"delivery_log_size":   logEntries,
	})
}

// GetDeliveryLog returns the persisted delivery log, oldest first. An
// optional ?limit=N keeps only the most recent N entries.
func (h *Handler) GetDeliveryLog(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, []deliverylog.Entry{})
		return
	}
	entries := h.store.Entries()
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		if limit < len(entries) {
			entries = entries[len(entries)-limit:]
		}
	}
	if entries == nil {
		entries = []deliverylog.Entry{}
	}
	h.logger.Infof("Retrieved %d delivery log entries", len(entries))
	c.JSON(http.StatusOK, entries)
}

// TestNotification fires a synchronous admin notification and returns the
// full delivery report, so operators can verify provider configuration
// end to end.
func (h *Handler) TestNotification(c *gin.Context) {
	var p models.ProblemNotice
	if err := c.ShouldBindJSON(&p); err != nil {
		h.logger.Errorf("Invalid test notification request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.ComplaintID == "" {
		p.ComplaintID = "TEST-" + uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	report := h.svc.NotifyAdmins(c.Request.Context(), p)
	h.logger.Infof("Test notification for %s: delivered=%t", p.ComplaintID, report.Delivered())
	c.JSON(http.StatusOK, report)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// diagnostics endpoint, dashboard origin is not fixed
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamReports upgrades the connection and feeds the client every delivery
// report as it is produced.
func (h *Handler) StreamReports(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report feed not enabled"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("Websocket upgrade failed: %v", err)
		return
	}
	h.hub.Add(conn)
	go func() {
		defer func() {
			h.hub.Remove(conn)
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
