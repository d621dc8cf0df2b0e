// Package geo holds the pure geospatial math: great-circle distance, nearby
// ranking, and the deterministic coverage-radius estimator.
package geo

import "math"

// EarthRadiusM is the mean earth radius used by the haversine formula.
const EarthRadiusM = 6371000.0

// DistanceM returns the great-circle distance between two points in meters.
func DistanceM(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := lat1 * math.Pi / 180
	p2 := lat2 * math.Pi / 180
	dp := (lat2 - lat1) * math.Pi / 180
	dl := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dp/2)*math.Sin(dp/2) +
		math.Cos(p1)*math.Cos(p2)*math.Sin(dl/2)*math.Sin(dl/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}

// ClampRadius bounds a requested search radius to the configured window.
func ClampRadius(r, min, max int) int {
	if r < min {
		return min
	}
	if r > max {
		return max
	}
	return r
}
