package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veslo/hearthguard/internal/models"
)

func intPtr(n int) *int { return &n }

func testDevices() []models.Device {
	return []models.Device{
		{Name: "Smart Bulb", IP: "10.0.40.5", VLAN: 40, Status: models.StatusSafe},
		{Name: "Door Camera", IP: "10.0.40.9", VLAN: 40, Status: models.StatusSuspicious},
		{Name: "Admin Console", IP: "10.0.10.2", VLAN: 10, Status: models.StatusSafe},
	}
}

func newTestStore(t *testing.T) *DeviceStore {
	t.Helper()
	return NewDeviceStore(filepath.Join(t.TempDir(), "network.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.Load())
}

func TestLoadCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"devices": [oops`), 0o644))

	// Corruption reads as an empty collection, never an error.
	assert.Empty(t, s.Load())
}

func TestLoadMalformedDevicesArray(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"devices": 42}`), 0o644))
	assert.Empty(t, s.Load())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := testDevices()

	require.NoError(t, s.Save(want))
	require.Equal(t, want, s.Load(), "round-trip must preserve fields and order")
}

func TestSaveEmptyCollectionWritesDocument(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(nil))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"devices": []}`, string(data))
}

func TestSetStatusQuarantineConvention(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(testDevices()))

	require.NoError(t, s.SetStatus("Smart Bulb", models.StatusQuarantined, intPtr(99)))

	got := s.Load()
	assert.Equal(t, models.StatusQuarantined, got[0].Status)
	assert.Equal(t, 99, got[0].VLAN)
}

func TestSetStatusNilVLANKeepsVLAN(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(testDevices()))

	require.NoError(t, s.SetStatus("Smart Bulb", models.StatusSuspicious, nil))

	got := s.Load()
	assert.Equal(t, models.StatusSuspicious, got[0].Status)
	assert.Equal(t, 40, got[0].VLAN)
}

func TestSetStatusUnknownName(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(testDevices()))
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	err = s.SetStatus("nonexistent", models.StatusSafe, nil)
	assert.ErrorIs(t, err, ErrDeviceNotFound)

	after, readErr := os.ReadFile(s.Path())
	require.NoError(t, readErr)
	assert.Equal(t, before, after, "unknown name must leave the document byte-for-byte unchanged")
}

func TestSetStatusIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(testDevices()))

	require.NoError(t, s.SetStatus("Door Camera", models.StatusQuarantined, intPtr(99)))
	once, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.SetStatus("Door Camera", models.StatusQuarantined, intPtr(99)))
	twice, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestSetStatusFirstMatchOnly(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]models.Device{
		{Name: "Sensor", IP: "10.0.40.20", VLAN: 40, Status: models.StatusSafe},
		{Name: "Sensor", IP: "10.0.40.21", VLAN: 40, Status: models.StatusSafe},
	}))

	require.NoError(t, s.SetStatus("Sensor", models.StatusQuarantined, intPtr(99)))

	got := s.Load()
	assert.Equal(t, models.StatusQuarantined, got[0].Status)
	assert.Equal(t, models.StatusSafe, got[1].Status, "only the first match is updated")
}

func TestQuarantineReleaseScenario(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save([]models.Device{
		{Name: "Bulb", IP: "10.0.40.5", VLAN: 40, Status: models.StatusSafe},
	}))

	require.NoError(t, s.SetStatus("Bulb", models.StatusQuarantined, intPtr(99)))
	got := s.Load()
	require.Len(t, got, 1)
	assert.Equal(t, "Bulb", got[0].Name)
	assert.Equal(t, "10.0.40.5", got[0].IP)
	assert.Equal(t, 99, got[0].VLAN)
	assert.Equal(t, models.StatusQuarantined, got[0].Status)

	require.NoError(t, s.SetStatus("Bulb", models.StatusSafe, intPtr(40)))
	got = s.Load()
	require.Len(t, got, 1)
	assert.Equal(t, 40, got[0].VLAN)
	assert.Equal(t, models.StatusSafe, got[0].Status)
}

func TestUnknownFieldsSurviveRewrite(t *testing.T) {
	s := newTestStore(t)
	doc := `{
		"schema_version": 2,
		"devices": [
			{"name": "Bulb", "ip": "10.0.40.5", "vlan": 40, "status": "Safe", "firmware": "1.2.3"}
		]
	}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(doc), 0o644))

	require.NoError(t, s.SetStatus("Bulb", models.StatusQuarantined, intPtr(99)))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `2`, string(raw["schema_version"]), "document-level unknown field dropped")

	var devs []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["devices"], &devs))
	require.Len(t, devs, 1)
	assert.JSONEq(t, `"1.2.3"`, string(devs[0]["firmware"]), "record-level unknown field dropped")
	assert.JSONEq(t, `"Quarantined"`, string(devs[0]["status"]))
	assert.JSONEq(t, `99`, string(devs[0]["vlan"]))
}

func TestSaveFailurePropagates(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root; directory permissions are not enforced")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	s := NewDeviceStore(filepath.Join(dir, "network.json"))
	assert.Error(t, s.Save(testDevices()))
}
