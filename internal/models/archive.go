package models

import "gorm.io/gorm"

// ArchivedAlert is the SQLite row shape for alerts rotated out of the live
// alert document once the retention cap is reached. The live document stays
// the source of truth for the dashboard; the archive only grows.
type ArchivedAlert struct {
	gorm.Model

	Timestamp string   `gorm:"index" json:"timestamp"`
	Device    string   `gorm:"index" json:"device"`
	IP        string   `json:"ip"`
	Type      string   `json:"type"`
	Severity  Severity `json:"severity"`
	VLAN      int      `json:"vlan"`
	Status    Outcome  `json:"status"`
}

// FromAlert converts a live alert into its archive row.
func FromAlert(a Alert) ArchivedAlert {
	return ArchivedAlert{
		Timestamp: a.Timestamp,
		Device:    a.Device,
		IP:        a.IP,
		Type:      a.Type,
		Severity:  a.Severity,
		VLAN:      a.VLAN,
		Status:    a.Status,
	}
}
