package extract

import (
	"regexp"
	"strings"
)

// Cue words gating the loose POI fallback and the flow entry.
var (
	nearbyCuePattern = regexp.MustCompile(`附近|周边|旁边|周围`)
	// StationCue marks "base station" mentions; a POI key containing it is noise.
	StationCue = "基站"
)

// NearbyCue reports whether the text contains a "nearby" cue word.
func NearbyCue(text string) bool {
	return nearbyCuePattern.MatchString(text)
}

var (
	// Venue-type suffixes; longer alternatives listed before their substrings.
	poiSuffixPattern = regexp.MustCompile(`([\p{Han}A-Za-z0-9]{1,8}(?:购物中心|火车站|高铁站|体育馆|博物馆|步行街|广场|商场|百货|大厦|中心|公园|医院|大学|学校|机场|酒店))`)
	// Text immediately preceding a nearby cue, e.g. 国贸 out of 国贸附近.
	preCuePattern = regexp.MustCompile(`([\p{Han}A-Za-z0-9]{2,12})(?:的)?(?:附近|周边|旁边|周围)`)

	adminSuffixes = []string{"省", "市", "区", "县", "镇", "街道", "开发区"}
	roadSuffixes  = []string{"大道", "路", "街", "道", "巷", "弄"}
)

// POIKey extracts a landmark name candidate using a cascade of strategies:
// quoted text (minus any city names), a venue-suffix pattern, and, only when
// a nearby cue or a station cue is present, the loose text-before-cue
// fallback. Candidates that are really city names, administrative areas, or
// street names are rejected outright so they cannot masquerade as POIs.
func POIKey(text string) (string, bool) {
	if m := quotedPattern.FindStringSubmatch(text); m != nil {
		cand := m[1]
		for _, c := range Cities {
			cand = strings.ReplaceAll(cand, c, "")
		}
		cand = strings.Trim(cand, "的 \t")
		if validPOIKey(cand) {
			return cand, true
		}
	}

	if m := poiSuffixPattern.FindStringSubmatch(text); m != nil {
		cand := trimCityPrefix(m[1])
		if validPOIKey(cand) {
			return cand, true
		}
	}

	if NearbyCue(text) || strings.Contains(text, StationCue) {
		if m := preCuePattern.FindStringSubmatch(text); m != nil {
			cand := trimCityPrefix(m[1])
			if validPOIKey(cand) {
				return cand, true
			}
		}
	}

	return "", false
}

// trimCityPrefix drops a leading city name plus connective 的 from a
// candidate, so 上海的万达广场 resolves by the landmark, not the city.
func trimCityPrefix(cand string) string {
	for _, c := range Cities {
		cand = strings.TrimPrefix(cand, c)
	}
	return strings.TrimPrefix(cand, "的")
}

func validPOIKey(cand string) bool {
	runes := []rune(cand)
	if len(runes) < 2 || len(runes) > 12 {
		return false
	}
	if isCity(cand) {
		return false
	}
	if strings.Contains(cand, StationCue) {
		return false
	}
	for _, suf := range adminSuffixes {
		if strings.HasSuffix(cand, suf) {
			return false
		}
	}
	for _, suf := range roadSuffixes {
		if strings.HasSuffix(cand, suf) {
			return false
		}
	}
	return true
}
