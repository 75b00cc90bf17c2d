// Host telemetry for the dashboard itself, via gopsutil. The simulated
// network has no real agents to report in, but the operator still wants to
// see whether the box serving the dashboard is healthy.
package server

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// hostSnapshot holds one collection cycle's data for the serving host.
type hostSnapshot struct {
	Hostname      string    `json:"hostname"`
	OS            string    `json:"os"`
	UptimeSeconds uint64    `json:"uptime_seconds"`
	CPUUsage      float64   `json:"cpu_usage"`  // percent 0-100
	MemUsage      float64   `json:"mem_usage"`  // percent 0-100
	DiskUsage     float64   `json:"disk_usage"` // percent 0-100
	CollectedAt   time.Time `json:"collected_at"`
}

// handleSystem returns a point-in-time snapshot of the serving host.
func handleSystem(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": collectHost()})
}

// collectHost gathers the snapshot. Individual probes failing just leave
// their field zeroed; a partially degraded reading beats none.
func collectHost() hostSnapshot {
	snap := hostSnapshot{
		OS:          detailedOS(),
		CollectedAt: time.Now(),
	}

	if h, err := os.Hostname(); err == nil {
		snap.Hostname = h
	}
	if up, err := host.Uptime(); err == nil {
		snap.UptimeSeconds = up
	}
	if pcts, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(pcts) > 0 {
		snap.CPUUsage = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemUsage = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		snap.DiskUsage = du.UsedPercent
	}
	return snap
}

// detailedOS returns a descriptive OS version string, or runtime.GOOS as fallback.
func detailedOS() string {
	info, err := host.Info()
	if err == nil && info.Platform != "" {
		if info.PlatformVersion != "" {
			return info.Platform + " " + info.PlatformVersion
		}
		return info.Platform
	}
	return runtime.GOOS
}
