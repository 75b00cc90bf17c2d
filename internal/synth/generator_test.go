package synth

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veslo/hearthguard/internal/models"
)

func fixedClock() func() time.Time {
	at := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func demoDevices() []models.Device {
	return []models.Device{
		{Name: "Smart Bulb", IP: "10.0.40.5", VLAN: 40, Status: models.StatusSafe},
		{Name: "Thermostat", IP: "10.0.40.6", VLAN: 40, Status: models.StatusSafe},
		{Name: "Door Camera", IP: "10.0.40.9", VLAN: 40, Status: models.StatusSuspicious},
	}
}

func TestDeterministicUnderFixedSeedAndClock(t *testing.T) {
	devices := demoDevices()

	a := New(rand.New(rand.NewSource(42)), fixedClock())
	b := New(rand.New(rand.NewSource(42)), fixedClock())

	for i := 0; i < 50; i++ {
		require.Equal(t, a.Generate(devices), b.Generate(devices), "draw %d diverged", i)
	}
}

func TestTimestampComesFromInjectedClock(t *testing.T) {
	g := New(rand.New(rand.NewSource(1)), fixedClock())
	alert := g.Generate(demoDevices())
	assert.Equal(t, "2026-08-30 10:30:00", alert.Timestamp)
}

func TestPrefersNonSafeDevices(t *testing.T) {
	g := New(rand.New(rand.NewSource(7)), fixedClock())
	devices := demoDevices()

	// exactly one non-Safe device, so every draw must land on it
	for i := 0; i < 100; i++ {
		alert := g.Generate(devices)
		assert.Equal(t, "Door Camera", alert.Device)
		assert.Equal(t, "10.0.40.9", alert.IP)
		assert.Equal(t, 40, alert.VLAN)
	}
}

func TestFallsBackToAllDevicesWhenAllSafe(t *testing.T) {
	g := New(rand.New(rand.NewSource(7)), fixedClock())
	devices := []models.Device{
		{Name: "Smart Bulb", IP: "10.0.40.5", VLAN: 40, Status: models.StatusSafe},
		{Name: "Thermostat", IP: "10.0.40.6", VLAN: 40, Status: models.StatusSafe},
	}

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		alert := g.Generate(devices)
		seen[alert.Device] = true
	}
	assert.Equal(t, map[string]bool{"Smart Bulb": true, "Thermostat": true}, seen)
}

func TestEmptyCollectionUsesPlaceholder(t *testing.T) {
	g := New(rand.New(rand.NewSource(3)), fixedClock())
	alert := g.Generate(nil)

	assert.Equal(t, UnknownDevice, alert.Device)
	assert.Empty(t, alert.IP)
	assert.Zero(t, alert.VLAN)
	assert.Contains(t, models.AlertTypes, alert.Type)
}

func TestFieldsDrawnFromCatalogs(t *testing.T) {
	g := New(rand.New(rand.NewSource(11)), fixedClock())
	devices := demoDevices()

	for i := 0; i < 500; i++ {
		alert := g.Generate(devices)
		assert.Contains(t, models.AlertTypes, alert.Type)
		assert.Contains(t, models.Severities, alert.Severity)
		assert.Contains(t, []models.Outcome{models.OutcomeBlocked, models.OutcomeDetected}, alert.Status)
	}
}

func TestOutcomeSkewsBlocked(t *testing.T) {
	g := New(rand.New(rand.NewSource(99)), fixedClock())
	devices := demoDevices()

	blocked := 0
	const draws = 10000
	for i := 0; i < draws; i++ {
		if g.Generate(devices).Status == models.OutcomeBlocked {
			blocked++
		}
	}

	ratio := float64(blocked) / draws
	assert.InDelta(t, 0.6, ratio, 0.03, "Blocked should occur with p=0.6")
}

func TestNilSourcesDefault(t *testing.T) {
	g := New(nil, nil)
	alert := g.Generate(demoDevices())

	_, err := time.Parse(models.TimestampLayout, alert.Timestamp)
	assert.NoError(t, err)
}
