package jsonstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"station-chat-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func testStation(id, city, status string, updatedAt int64) *entity.Station {
	lat, lng := 39.9, 116.4
	return &entity.Station{
		ID:        id,
		City:      city,
		Name:      city + "-示例站",
		Vendor:    "Huawei",
		Band:      "n78",
		Status:    status,
		Lat:       &lat,
		Lng:       &lng,
		UpdatedAt: updatedAt,
	}
}

func TestStationStoreLoadWrappedAndBare(t *testing.T) {
	wrapped := tempPath(t, "wrapped.json")
	require.NoError(t, os.WriteFile(wrapped, []byte(`{"stations":[{"id":"BJS-001","city":"北京","status":"online"}]}`), 0o644))
	s, err := NewStationStore(wrapped)
	require.NoError(t, err)
	st, ok := s.Get("BJS-001")
	require.True(t, ok)
	assert.Equal(t, "北京", st.City)

	bare := tempPath(t, "bare.json")
	require.NoError(t, os.WriteFile(bare, []byte(`[{"id":"SHS-001","city":"上海","status":"offline"}]`), 0o644))
	s2, err := NewStationStore(bare)
	require.NoError(t, err)
	_, ok = s2.Get("SHS-001")
	assert.True(t, ok)
}

func TestStationStoreMissingFileIsEmpty(t *testing.T) {
	s, err := NewStationStore(tempPath(t, "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, s.All())
}

func TestStationStoreInitIfMissing(t *testing.T) {
	path := tempPath(t, "stations.json")
	s, err := NewStationStore(path)
	require.NoError(t, err)
	require.NoError(t, s.InitIfMissing([]*entity.Station{testStation("BJS-001", "北京", "online", 100)}))

	// Second init with different data must be a no-op.
	s2, err := NewStationStore(path)
	require.NoError(t, err)
	require.NoError(t, s2.InitIfMissing([]*entity.Station{testStation("GZS-001", "广州", "online", 100)}))
	_, ok := s2.Get("BJS-001")
	assert.True(t, ok)
	_, ok = s2.Get("GZS-001")
	assert.False(t, ok)
}

func TestStationStoreSearchOrderAndFilters(t *testing.T) {
	s, err := NewStationStore(tempPath(t, "stations.json"))
	require.NoError(t, err)
	require.NoError(t, s.UpsertAll([]*entity.Station{
		testStation("BJS-001", "北京", "online", 100),
		testStation("BJS-002", "北京", "offline", 300),
		testStation("BJS-003", "北京", "online", 300),
		testStation("SHS-001", "上海", "online", 200),
	}))

	all := s.All()
	require.Len(t, all, 4)
	// updated_at desc, id asc as tie-break
	assert.Equal(t, []string{"BJS-002", "BJS-003", "SHS-001", "BJS-001"},
		[]string{all[0].ID, all[1].ID, all[2].ID, all[3].ID})

	online := s.Search(StationFilter{City: "北京", Status: "online", Limit: 10})
	require.Len(t, online, 2)
	assert.Equal(t, "BJS-003", online[0].ID)

	like := s.Search(StationFilter{IDLike: "shs", Limit: 10})
	require.Len(t, like, 1)
	assert.Equal(t, "SHS-001", like[0].ID)
}

func TestStationStoreUpdateStatusBumps(t *testing.T) {
	s, err := NewStationStore(tempPath(t, "stations.json"))
	require.NoError(t, err)
	require.NoError(t, s.UpsertAll([]*entity.Station{testStation("BJS-001", "北京", "online", 100)}))

	before := time.Now().Unix()
	st, ok := s.UpdateStatus("BJS-001", entity.StatusMaintenance)
	require.True(t, ok)
	assert.Equal(t, entity.StatusMaintenance, st.Status)
	assert.GreaterOrEqual(t, st.UpdatedAt, before)

	_, ok = s.UpdateStatus("NOPE-001", entity.StatusOffline)
	assert.False(t, ok)
}

func TestStationStoreSnapshotRoundTrip(t *testing.T) {
	path := tempPath(t, "stations.json")
	s, err := NewStationStore(path)
	require.NoError(t, err)
	require.NoError(t, s.UpsertAll([]*entity.Station{testStation("BJS-001", "北京", "online", 100)}))
	_, ok := s.UpdateStatus("BJS-001", entity.StatusOffline)
	require.True(t, ok)
	require.NoError(t, s.SaveSnapshot())

	reloaded, err := NewStationStore(path)
	require.NoError(t, err)
	st, ok := reloaded.Get("BJS-001")
	require.True(t, ok)
	assert.Equal(t, entity.StatusOffline, st.Status)
}
