// Package models defines the data model for HearthGuard.
package models

import "encoding/json"

// Status represents the security classification of a device.
type Status string

const (
	StatusSafe        Status = "Safe"
	StatusSuspicious  Status = "Suspicious"
	StatusQuarantined Status = "Quarantined"
	// StatusUnknown is the display fallback for devices persisted without a status.
	StatusUnknown Status = "Unknown"
)

// Valid reports whether s is one of the three storable classifications.
func (s Status) Valid() bool {
	switch s {
	case StatusSafe, StatusSuspicious, StatusQuarantined:
		return true
	}
	return false
}

// Well-known VLAN tags of the simulated network.
const (
	VLANAdmin      = 10
	VLANUsers      = 20
	VLANGuest      = 30
	VLANIoT        = 40
	VLANQuarantine = 99
)

// VLANSegment names a VLAN tag for display purposes.
type VLANSegment struct {
	Tag  int    `json:"vlan"`
	Name string `json:"name"`
}

// VLANSegments is the fixed segment plan of the simulated network.
var VLANSegments = []VLANSegment{
	{Tag: VLANAdmin, Name: "Admin"},
	{Tag: VLANUsers, Name: "Users"},
	{Tag: VLANGuest, Name: "Guest"},
	{Tag: VLANIoT, Name: "IoT"},
	{Tag: VLANQuarantine, Name: "Quarantine"},
}

// Device represents one node of the simulated smart-home network.
// Name is the primary key of the device document; IP is display-only and
// never validated as a real address. A Quarantined device conventionally
// sits on VLAN 99, but only SetStatus enforces that pairing.
//
// Unknown JSON fields found in the persisted document are retained and
// written back on save, so external tooling can annotate device records
// without HearthGuard silently dropping the annotations.
type Device struct {
	Name   string `json:"name"`
	IP     string `json:"ip"`
	VLAN   int    `json:"vlan"`
	Status Status `json:"status"`

	extra map[string]json.RawMessage
}

// DisplayStatus returns the status label to render, substituting Unknown
// when the persisted record carries no status at all.
func (d Device) DisplayStatus() Status {
	if d.Status == "" {
		return StatusUnknown
	}
	return d.Status
}

// deviceKeys are the JSON keys owned by the Device struct itself.
var deviceKeys = []string{"name", "ip", "vlan", "status"}

// UnmarshalJSON decodes a device record, stashing any unrecognized fields.
func (d *Device) UnmarshalJSON(data []byte) error {
	type plain Device
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range deviceKeys {
		delete(raw, k)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*d = Device(p)
	d.extra = raw
	return nil
}

// MarshalJSON encodes the device record, merging retained unknown fields
// back in. Keys come out in encoding/json's sorted map order, which keeps
// repeated save cycles byte-stable.
func (d Device) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.extra)+4)
	for k, v := range d.extra {
		out[k] = v
	}

	var err error
	if out["name"], err = json.Marshal(d.Name); err != nil {
		return nil, err
	}
	if out["ip"], err = json.Marshal(d.IP); err != nil {
		return nil, err
	}
	if out["vlan"], err = json.Marshal(d.VLAN); err != nil {
		return nil, err
	}
	if out["status"], err = json.Marshal(d.Status); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}
