package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/veslo/hearthguard/internal/models"
)

// Backend is the storage behind an AlertLog. The file backend persists the
// alerts document across sessions; the memory backend keeps session-scoped
// state only. Which one a deployment gets is an explicit configuration
// choice, not an implicit code path.
type Backend interface {
	read() ([]models.Alert, map[string]json.RawMessage)
	write(alerts []models.Alert, extra map[string]json.RawMessage) error
}

// AlertLog owns the append-only alert history. No alert is ever mutated or
// deleted once appended; the only bound on growth is the optional retention
// cap, which rotates the oldest records out (into the archive, when one is
// configured).
type AlertLog struct {
	mu      sync.Mutex
	backend Backend

	// cap is the maximum number of live alerts; 0 keeps append-forever
	// behavior. archive receives rotated-out alerts and may be nil.
	cap     int
	archive *Archive
}

// NewAlertLog assembles a log over the given backend. cap <= 0 disables
// rotation; archive may be nil to discard rotated alerts.
func NewAlertLog(backend Backend, cap int, archive *Archive) *AlertLog {
	return &AlertLog{backend: backend, cap: cap, archive: archive}
}

// Load returns the alert history in append order. Same soft-fail semantics
// as DeviceStore.Load: missing or corrupt storage reads as empty.
func (l *AlertLog) Load() []models.Alert {
	l.mu.Lock()
	defer l.mu.Unlock()
	alerts, _ := l.backend.read()
	return alerts
}

// Append adds one alert to the history and persists the updated sequence.
// When the retention cap is exceeded the oldest overflow is rotated out
// first; a configured archive must accept the overflow before the live
// document shrinks, otherwise the append fails without losing anything.
func (l *AlertLog) Append(a models.Alert) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	alerts, extra := l.backend.read()
	alerts = append(alerts, a)

	if l.cap > 0 && len(alerts) > l.cap {
		overflow := alerts[:len(alerts)-l.cap]
		if l.archive != nil {
			if err := l.archive.Store(overflow); err != nil {
				return fmt.Errorf("archiving rotated alerts: %w", err)
			}
		}
		alerts = alerts[len(alerts)-l.cap:]
	}

	return l.backend.write(alerts, extra)
}

// ─── file backend ─────────────────────────────────────────────────────────────

// fileBackend persists the alerts document (conventionally alerts.json,
// shaped {"alerts": [...]}) with the same unknown-field retention as the
// device document.
type fileBackend struct {
	path string
}

// NewFileBackend returns a Backend persisting to the document at path.
func NewFileBackend(path string) Backend {
	return &fileBackend{path: path}
}

func (b *fileBackend) read() ([]models.Alert, map[string]json.RawMessage) {
	raw, ok := readJSONDocument(b.path)
	if !ok {
		return nil, nil
	}
	return splitCollection[models.Alert](raw, "alerts", b.path), raw
}

func (b *fileBackend) write(alerts []models.Alert, extra map[string]json.RawMessage) error {
	fields, err := joinCollection(extra, "alerts", alerts)
	if err != nil {
		return err
	}
	return writeJSONDocument(b.path, fields)
}

// ─── memory backend ───────────────────────────────────────────────────────────

// memoryBackend holds the alert sequence for the lifetime of the process.
type memoryBackend struct {
	alerts []models.Alert
}

// NewMemoryBackend returns a session-scoped Backend; its contents are lost
// when the process exits.
func NewMemoryBackend() Backend {
	return &memoryBackend{}
}

func (b *memoryBackend) read() ([]models.Alert, map[string]json.RawMessage) {
	out := make([]models.Alert, len(b.alerts))
	copy(out, b.alerts)
	return out, nil
}

func (b *memoryBackend) write(alerts []models.Alert, _ map[string]json.RawMessage) error {
	b.alerts = make([]models.Alert, len(alerts))
	copy(b.alerts, alerts)
	return nil
}
