package geo

import (
	"sort"

	"station-chat-be/internal/entity"
)

// NearbyStation pairs a station with its distance from the query center.
type NearbyStation struct {
	Station   *entity.Station
	DistanceM float64
}

// Nearby ranks the pool by distance from (lat,lng), keeping only stations
// within radiusM. Stations without usable coordinates are skipped, never
// treated as distance zero. The result is ascending by distance and
// truncated to limit.
func Nearby(pool []*entity.Station, lat, lng float64, radiusM, limit int) []NearbyStation {
	var out []NearbyStation
	for _, st := range pool {
		if !st.HasCoords() {
			continue
		}
		d := DistanceM(lat, lng, *st.Lat, *st.Lng)
		if d > float64(radiusM) {
			continue
		}
		out = append(out, NearbyStation{Station: st, DistanceM: d})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceM < out[j].DistanceM
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
