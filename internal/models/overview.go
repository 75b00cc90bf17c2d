package models

// VLANCount is one bucket of the devices-per-VLAN distribution.
type VLANCount struct {
	VLAN  int `json:"vlan"`
	Count int `json:"count"`
}

// StatusCount is one bucket of the device status distribution.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// Overview is the aggregate view behind the dashboard's KPI tiles and
// charts: device headcounts plus the two distributions the network page
// plots.
type Overview struct {
	ActiveDevices  int           `json:"active_devices"`
	BlockedAttacks int           `json:"blocked_attacks"`
	Quarantined    int           `json:"quarantined"`
	DevicesPerVLAN []VLANCount   `json:"devices_per_vlan"`
	StatusCounts   []StatusCount `json:"status_counts"`
}
