package store

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/veslo/hearthguard/internal/models"
)

// ErrDeviceNotFound is returned by SetStatus when no device carries the
// given name. The document is left untouched in that case.
var ErrDeviceNotFound = errors.New("no such device")

// DeviceStore owns the device collection and its on-disk JSON document
// (conventionally network.json, shaped {"devices": [...]}).
//
// Every mutation reads the full document, applies the change, and rewrites
// the whole file before returning, so read-after-write is immediately
// consistent within the process. The mutex serializes writers; flat-file
// last-writer-wins across processes remains an accepted limitation.
type DeviceStore struct {
	mu   sync.Mutex
	path string
}

// NewDeviceStore creates a store over the document at path. The file does
// not need to exist yet.
func NewDeviceStore(path string) *DeviceStore {
	return &DeviceStore{path: path}
}

// Path returns the document location.
func (s *DeviceStore) Path() string { return s.path }

// Load returns the persisted device collection. A missing or corrupt
// document yields an empty collection, never an error.
func (s *DeviceStore) Load() []models.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	devices, _ := s.read()
	return devices
}

// Save replaces the entire persisted collection. Top-level fields other
// than "devices" already present in the document are carried over. Write
// failures propagate to the caller; they are never swallowed.
func (s *DeviceStore) Save(devices []models.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, extra := s.read()
	return s.write(devices, extra)
}

// SetStatus locates the first device named name, sets its status (and VLAN,
// when newVLAN is non-nil), and persists the updated collection. The write
// is fully durable before SetStatus returns.
//
// An unknown name returns ErrDeviceNotFound and performs no write at all,
// leaving the document byte-for-byte unchanged.
func (s *DeviceStore) SetStatus(name string, status models.Status, newVLAN *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices, extra := s.read()
	for i := range devices {
		if devices[i].Name != name {
			continue
		}
		devices[i].Status = status
		if newVLAN != nil {
			devices[i].VLAN = *newVLAN
		}
		return s.write(devices, extra)
	}
	return ErrDeviceNotFound
}

// read loads the collection plus any retained extra top-level fields.
// Caller must hold s.mu.
func (s *DeviceStore) read() ([]models.Device, map[string]json.RawMessage) {
	raw, ok := readJSONDocument(s.path)
	if !ok {
		return nil, nil
	}
	return splitCollection[models.Device](raw, "devices", s.path), raw
}

// write persists the collection alongside extra. Caller must hold s.mu.
func (s *DeviceStore) write(devices []models.Device, extra map[string]json.RawMessage) error {
	fields, err := joinCollection(extra, "devices", devices)
	if err != nil {
		return err
	}
	return writeJSONDocument(s.path, fields)
}
