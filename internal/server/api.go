// Package server provides the HearthGuard Gin-based REST API: the surface
// the dashboard front-end consumes. It exposes the device collection, the
// alert history, status transitions, and the aggregate views the dashboard
// pages chart. Operator actions carry no authentication: this is a
// simulation tool for a trusted LAN, not a hardened control plane.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veslo/hearthguard/internal/config"
	"github.com/veslo/hearthguard/internal/models"
	"github.com/veslo/hearthguard/internal/store"
	"github.com/veslo/hearthguard/internal/synth"
)

// Wiring is injected once at startup via Configure.
var (
	cfg       *config.Config
	devices   *store.DeviceStore
	alerts    *store.AlertLog
	archive   *store.Archive
	generator *synth.Generator
)

// Configure stores the service wiring; call this before registering routes.
// archiveDB may be nil when no archive is configured.
func Configure(c *config.Config, d *store.DeviceStore, a *store.AlertLog, ar *store.Archive, g *synth.Generator) {
	cfg = c
	devices = d
	alerts = a
	archive = ar
	generator = g
}

// RegisterRoutes wires up the API on the given engine.
func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// Devices
	api.GET("/devices", handleDeviceList)
	api.POST("/devices/:name/status", handleSetStatus)
	api.POST("/devices/:name/quarantine", handleQuarantine)
	api.POST("/devices/:name/release", handleRelease)

	// Alerts
	api.GET("/alerts", handleAlertList)
	api.POST("/alerts/simulate", handleSimulate)
	api.GET("/alerts/archive", handleAlertArchive)

	// Aggregates
	api.GET("/overview", handleOverview)
	api.GET("/vlans", handleVLANs)
	api.GET("/system", handleSystem)
}

// ── Handlers ──────────────────────────────────────────────────────────────────

// handleDeviceList returns the full device collection.
func handleDeviceList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": devices.Load()})
}

// handleSetStatus flips one device's status label (and optionally its VLAN).
//
//	POST /api/devices/:name/status
//	Body: { "status": "Suspicious", "vlan": 40 }
func handleSetStatus(c *gin.Context) {
	var body struct {
		Status models.Status `json:"status" binding:"required"`
		VLAN   *int          `json:"vlan"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
		return
	}
	if !body.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be Safe, Suspicious or Quarantined"})
		return
	}

	applyStatus(c, c.Param("name"), body.Status, body.VLAN)
}

// handleQuarantine isolates a device onto the quarantine VLAN.
func handleQuarantine(c *gin.Context) {
	vlan := cfg.QuarantineVLAN
	applyStatus(c, c.Param("name"), models.StatusQuarantined, &vlan)
}

// handleRelease returns a quarantined device to the release VLAN as Safe.
func handleRelease(c *gin.Context) {
	vlan := cfg.ReleaseVLAN
	applyStatus(c, c.Param("name"), models.StatusSafe, &vlan)
}

// applyStatus runs the transition and maps the not-found sentinel to 404.
func applyStatus(c *gin.Context, name string, status models.Status, vlan *int) {
	switch err := devices.SetStatus(name, status, vlan); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"name": name, "status": status})
	case store.ErrDeviceNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "no such device"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// handleAlertList returns the alert history, newest first.
//
//	GET /api/alerts?limit=20
//
// With simulate_on_read enabled, each read first pushes one synthetic alert
// into the log, mirroring the original dashboard's per-render simulation.
func handleAlertList(c *gin.Context) {
	if cfg.SimulateOnRead {
		if err := alerts.Append(generator.Generate(devices.Load())); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	history := alerts.Load()
	// newest first
	out := make([]models.Alert, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"data": out, "total": len(history)})
}

// handleSimulate appends one synthetic alert on demand and returns it.
func handleSimulate(c *gin.Context) {
	alert := generator.Generate(devices.Load())
	if err := alerts.Append(alert); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": alert})
}

// handleAlertArchive returns recently archived (rotated-out) alerts.
func handleAlertArchive(c *gin.Context) {
	if archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no archive configured"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	rows, err := archive.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total, err := archive.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "total": total})
}

// handleVLANs returns the fixed VLAN segment plan.
func handleVLANs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.VLANSegments})
}
