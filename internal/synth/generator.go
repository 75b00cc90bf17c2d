// Package synth fabricates plausible-looking security alerts to simulate
// live traffic on the demo network. Nothing here inspects real packets;
// the generator only dresses up random draws as intrusion events.
package synth

import (
	"math/rand"
	"time"

	"github.com/veslo/hearthguard/internal/models"
)

// UnknownDevice is the alert source used when the device collection is empty.
const UnknownDevice = "Unknown Device"

// blockThreshold maps the random draw to an outcome: a draw above it is
// Blocked (p = 0.6), otherwise Detected.
const blockThreshold = 0.4

// Generator builds synthetic alerts. Apart from its random source and
// clock — both injected, so tests can pin them — generation is pure.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// New returns a Generator over the given random source and clock. Either
// may be nil to use a wall-clock-seeded source and time.Now.
func New(rng *rand.Rand, now func() time.Time) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now}
}

// Generate builds one alert against the given device collection. Devices
// already flagged non-Safe are preferred as the source, which keeps the
// simulated attacker activity clustered on devices the operator is already
// watching; with no devices at all the source falls back to a placeholder.
func (g *Generator) Generate(devices []models.Device) models.Alert {
	a := models.Alert{
		Timestamp: g.now().Format(models.TimestampLayout),
	}

	if d, ok := g.pickSource(devices); ok {
		a.Device = d.Name
		a.IP = d.IP
		a.VLAN = d.VLAN
	} else {
		a.Device = UnknownDevice
	}

	a.Type = models.AlertTypes[g.rng.Intn(len(models.AlertTypes))]
	a.Severity = models.Severities[g.rng.Intn(len(models.Severities))]

	if g.rng.Float64() > blockThreshold {
		a.Status = models.OutcomeBlocked
	} else {
		a.Status = models.OutcomeDetected
	}
	return a
}

// pickSource chooses the alert's source device: uniform over the non-Safe
// subset when one exists, uniform over all devices otherwise.
func (g *Generator) pickSource(devices []models.Device) (models.Device, bool) {
	if len(devices) == 0 {
		return models.Device{}, false
	}

	suspects := make([]models.Device, 0, len(devices))
	for _, d := range devices {
		if d.Status != models.StatusSafe {
			suspects = append(suspects, d)
		}
	}

	pool := devices
	if len(suspects) > 0 {
		pool = suspects
	}
	return pool[g.rng.Intn(len(pool))], true
}
