package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayStatusFallsBackToUnknown(t *testing.T) {
	assert.Equal(t, StatusUnknown, Device{Name: "Mystery Box"}.DisplayStatus())
	assert.Equal(t, StatusSafe, Device{Status: StatusSafe}.DisplayStatus())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusQuarantined.Valid())
	assert.False(t, StatusUnknown.Valid(), "Unknown is display-only, never stored")
	assert.False(t, Status("Exploded").Valid())
}

func TestAlertLegacyShapeDecodes(t *testing.T) {
	raw := `{"timestamp": "2026-08-29 09:15:00", "source": "Baby Monitor", "destination": "10.0.40.12", "type": "ARP Spoofing", "vlan": 40, "status": "Detected"}`

	var a Alert
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	assert.Equal(t, "Baby Monitor", a.Device)
	assert.Equal(t, "10.0.40.12", a.IP)
	assert.Equal(t, SeverityLow, a.Severity)

	// re-encoding uses the canonical keys, not the legacy ones
	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"source"`)
	assert.Contains(t, string(out), `"device"`)
}

func TestAlertRoundTripKeepsExtras(t *testing.T) {
	raw := `{"timestamp": "2026-08-29 09:15:00", "device": "Smart Bulb", "ip": "10.0.40.5", "type": "Port Scan", "severity": "Low", "vlan": 40, "status": "Blocked", "analyst_note": "benign"}`

	var a Alert
	require.NoError(t, json.Unmarshal([]byte(raw), &a))

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestDeviceRoundTripKeepsExtras(t *testing.T) {
	raw := `{"name": "Smart Bulb", "ip": "10.0.40.5", "vlan": 40, "status": "Safe", "firmware": "1.2.3"}`

	var d Device
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	assert.Equal(t, "Smart Bulb", d.Name)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}
