package geo

import (
	"crypto/md5"
	"strings"

	"station-chat-be/internal/entity"
)

// bandRadiusM maps a radio band to its plausible coverage window in meters.
// Low bands carry farther.
var bandRadiusM = map[string][2]int{
	"n78": {300, 800},
	"n41": {500, 1200},
	"n1":  {800, 2000},
	"n28": {1500, 5000},
}

var defaultRadiusM = [2]int{600, 1200}

const coverageJitter = 0.18

// CoverageRadiusM estimates a station's coverage radius in meters. The
// estimate is a pure function of the station record: the same station always
// yields the same radius across restarts.
//
// Offline stations cover nothing. Maintenance scales to 70%. Dense
// surroundings (offices, metro, malls mentioned in the description) shrink
// the radius; open surroundings (residential, parks, greenery) stretch it.
func CoverageRadiusM(st *entity.Station) int {
	band := strings.ToLower(st.Band)
	rng, ok := bandRadiusM[band]
	if !ok {
		rng = defaultRadiusM
	}
	r := stableJitter(st.ID+"|"+band, rng[0], rng[1], coverageJitter)

	switch strings.ToLower(st.Status) {
	case entity.StatusOffline:
		return 0
	case entity.StatusMaintenance:
		r = int(float64(r) * 0.7)
	}

	if containsAny(st.Desc, "写字楼", "地铁", "商场") {
		r = int(float64(r) * 0.9)
	}
	if containsAny(st.Desc, "居民区", "公园", "绿地") {
		r = int(float64(r) * 1.05)
	}

	if r < 0 {
		return 0
	}
	return r
}

// stableJitter perturbs the midpoint of [low,high] by up to jitter·midpoint,
// keyed on an md5 of the input so the value survives restarts.
func stableJitter(key string, low, high int, jitter float64) int {
	base := (low + high) / 2
	span := int(float64(base) * jitter)
	mod := 2*span + 1

	sum := md5.Sum([]byte(key))
	h := 0
	for _, b := range sum {
		h = (h*256 + int(b)) % mod
	}

	r := base + h - span
	if r < low {
		return low
	}
	if r > high {
		return high
	}
	return r
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
