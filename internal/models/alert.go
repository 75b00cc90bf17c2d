// Package models defines the data model for HearthGuard.
package models

import "encoding/json"

// TimestampLayout is the wall-clock format used in the alert document.
const TimestampLayout = "2006-01-02 15:04:05"

// Severity grades an alert.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Severities lists all grades, in ascending order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

// Outcome describes what the simulated defense did with an event.
type Outcome string

const (
	OutcomeBlocked     Outcome = "Blocked"
	OutcomeDetected    Outcome = "Detected"
	OutcomeSuspicious  Outcome = "Suspicious"
	OutcomeQuarantined Outcome = "Quarantined"
)

// AlertTypes is the fixed catalog of synthesized event types.
var AlertTypes = []string{
	"Port Scan",
	"Malware Beacon",
	"Unauthorized Access",
	"Brute Force",
	"Cross-VLAN Attempt",
	"ARP Spoofing",
	"Suspicious Traffic",
	"Brute-Force Login",
}

// Alert is a single security-event record. Device is a weak reference: it
// names a device but nothing guarantees the device still exists, and a
// dangling name is displayed as-is. Alert records are append-only; nothing
// in HearthGuard mutates or deletes one once written.
//
// Like Device, unknown JSON fields survive a load/save round-trip.
type Alert struct {
	Timestamp string   `json:"timestamp"`
	Device    string   `json:"device"`
	IP        string   `json:"ip"`
	Type      string   `json:"type"`
	Severity  Severity `json:"severity"`
	VLAN      int      `json:"vlan"`
	Status    Outcome  `json:"status"`

	extra map[string]json.RawMessage
}

var alertKeys = []string{"timestamp", "device", "ip", "type", "severity", "vlan", "status"}

// legacyAlert is the older alert shape, which named the device "source",
// the address "destination", and carried no severity.
type legacyAlert struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// UnmarshalJSON decodes an alert record, migrating documents written in the
// legacy shape: source/destination map onto device/ip, and a missing
// severity is derived from the outcome.
func (a *Alert) UnmarshalJSON(data []byte) error {
	type plain Alert
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var legacy legacyAlert
	_ = json.Unmarshal(data, &legacy)
	if p.Device == "" && legacy.Source != "" {
		p.Device = legacy.Source
		delete(raw, "source")
	}
	if p.IP == "" && legacy.Destination != "" {
		p.IP = legacy.Destination
		delete(raw, "destination")
	}
	if p.Severity == "" {
		p.Severity = severityForOutcome(p.Status)
	}

	for _, k := range alertKeys {
		delete(raw, k)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*a = Alert(p)
	a.extra = raw
	return nil
}

// MarshalJSON encodes the alert in the canonical (richer) schema.
func (a Alert) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(a.extra)+7)
	for k, v := range a.extra {
		out[k] = v
	}

	fields := []struct {
		key string
		val any
	}{
		{"timestamp", a.Timestamp},
		{"device", a.Device},
		{"ip", a.IP},
		{"type", a.Type},
		{"severity", a.Severity},
		{"vlan", a.VLAN},
		{"status", a.Status},
	}
	for _, f := range fields {
		b, err := json.Marshal(f.val)
		if err != nil {
			return nil, err
		}
		out[f.key] = b
	}
	return json.Marshal(out)
}

// severityForOutcome assigns a grade to legacy alerts that never carried one.
func severityForOutcome(o Outcome) Severity {
	switch o {
	case OutcomeQuarantined:
		return SeverityHigh
	case OutcomeSuspicious:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
