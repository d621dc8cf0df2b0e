package geo

import (
	"math"
	"testing"

	"station-chat-be/internal/entity"
)

func f(v float64) *float64 { return &v }

func TestDistanceM(t *testing.T) {
	// Same point is exactly zero.
	if d := DistanceM(39.9042, 116.4074, 39.9042, 116.4074); d != 0 {
		t.Errorf("distance to self = %f; want 0", d)
	}

	// Beijing <-> Shanghai is roughly 1068 km.
	d := DistanceM(39.9042, 116.4074, 31.2304, 121.4737)
	if d < 1_000_000 || d > 1_150_000 {
		t.Errorf("Beijing-Shanghai = %f m; want ~1068 km", d)
	}

	// Symmetric.
	rev := DistanceM(31.2304, 121.4737, 39.9042, 116.4074)
	if math.Abs(d-rev) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", d, rev)
	}
}

func TestClampRadius(t *testing.T) {
	if got := ClampRadius(50, 100, 5000); got != 100 {
		t.Errorf("clamp low = %d; want 100", got)
	}
	if got := ClampRadius(9000, 100, 5000); got != 5000 {
		t.Errorf("clamp high = %d; want 5000", got)
	}
	if got := ClampRadius(800, 100, 5000); got != 800 {
		t.Errorf("clamp in-range = %d; want 800", got)
	}
}

func TestNearby(t *testing.T) {
	center := struct{ lat, lng float64 }{31.2304, 121.4737}
	pool := []*entity.Station{
		{ID: "SHS-001", Lat: f(31.2304), Lng: f(121.4737)}, // at center
		{ID: "SHS-002", Lat: f(31.2404), Lng: f(121.4737)}, // ~1.1km north
		{ID: "SHS-003", Lat: f(31.3304), Lng: f(121.4737)}, // ~11km north
		{ID: "SHS-004"},                                    // no coords
	}

	got := Nearby(pool, center.lat, center.lng, 2000, 20)
	if len(got) != 2 {
		t.Fatalf("Nearby = %d results; want 2", len(got))
	}
	if got[0].Station.ID != "SHS-001" || got[1].Station.ID != "SHS-002" {
		t.Errorf("order wrong: %s, %s", got[0].Station.ID, got[1].Station.ID)
	}
	if got[0].DistanceM != 0 {
		t.Errorf("distance at center = %f; want 0", got[0].DistanceM)
	}

	// A smaller radius yields a prefix of the larger result.
	small := Nearby(pool, center.lat, center.lng, 500, 20)
	if len(small) != 1 || small[0].Station.ID != got[0].Station.ID {
		t.Errorf("smaller radius is not a prefix: %+v", small)
	}

	// Limit truncates after sorting.
	limited := Nearby(pool, center.lat, center.lng, 20000, 1)
	if len(limited) != 1 || limited[0].Station.ID != "SHS-001" {
		t.Errorf("limit kept wrong station: %+v", limited)
	}
}

func TestCoverageRadiusM(t *testing.T) {
	base := &entity.Station{ID: "BJS-001", Band: "n78", Status: entity.StatusOnline}

	r := CoverageRadiusM(base)
	if r < 300 || r > 800 {
		t.Fatalf("n78 radius = %d; want within [300,800]", r)
	}
	// Deterministic across calls.
	if again := CoverageRadiusM(base); again != r {
		t.Errorf("radius not stable: %d vs %d", r, again)
	}

	off := &entity.Station{ID: "BJS-001", Band: "n78", Status: entity.StatusOffline}
	if got := CoverageRadiusM(off); got != 0 {
		t.Errorf("offline radius = %d; want 0", got)
	}

	maint := &entity.Station{ID: "BJS-001", Band: "n78", Status: entity.StatusMaintenance}
	if got := CoverageRadiusM(maint); got != int(float64(r)*0.7) {
		t.Errorf("maintenance radius = %d; want %d", got, int(float64(r)*0.7))
	}

	dense := &entity.Station{ID: "BJS-001", Band: "n78", Status: entity.StatusOnline, Desc: "位于写字楼密集区域"}
	if got := CoverageRadiusM(dense); got != int(float64(r)*0.9) {
		t.Errorf("dense radius = %d; want %d", got, int(float64(r)*0.9))
	}

	open := &entity.Station{ID: "BJS-001", Band: "n78", Status: entity.StatusOnline, Desc: "周边为公园绿地"}
	if got := CoverageRadiusM(open); got != int(float64(r)*1.05) {
		t.Errorf("open radius = %d; want %d", got, int(float64(r)*1.05))
	}

	unknown := &entity.Station{ID: "BJS-009", Band: "x1", Status: entity.StatusOnline}
	if got := CoverageRadiusM(unknown); got < 600 || got > 1200 {
		t.Errorf("unknown band radius = %d; want within [600,1200]", got)
	}
}
