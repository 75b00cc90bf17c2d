package server

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/veslo/hearthguard/internal/models"
)

// handleOverview returns the aggregates the dashboard's landing and network
// pages render: KPI counts plus the devices-per-VLAN and status
// distributions.
func handleOverview(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": buildOverview(devices.Load(), alerts.Load())})
}

// buildOverview computes the aggregate view from the two collections.
func buildOverview(devs []models.Device, history []models.Alert) models.Overview {
	ov := models.Overview{ActiveDevices: len(devs)}

	perVLAN := make(map[int]int)
	perStatus := make(map[models.Status]int)
	for _, d := range devs {
		perVLAN[d.VLAN]++
		perStatus[d.DisplayStatus()]++
		if d.Status == models.StatusQuarantined {
			ov.Quarantined++
		}
	}

	for _, a := range history {
		if a.Status == models.OutcomeBlocked {
			ov.BlockedAttacks++
		}
	}

	tags := make([]int, 0, len(perVLAN))
	for tag := range perVLAN {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	for _, tag := range tags {
		ov.DevicesPerVLAN = append(ov.DevicesPerVLAN, models.VLANCount{VLAN: tag, Count: perVLAN[tag]})
	}

	for _, s := range []models.Status{models.StatusSafe, models.StatusSuspicious, models.StatusQuarantined, models.StatusUnknown} {
		if n, ok := perStatus[s]; ok {
			ov.StatusCounts = append(ov.StatusCounts, models.StatusCount{Status: s, Count: n})
		}
	}
	return ov
}
