package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"station-chat-be/internal/entity"
	"station-chat-be/pkg/report"
	"station-chat-be/pkg/resolver/extract"
)

// StationSource is the read surface the resolver needs from the station
// store.
type StationSource interface {
	Get(id string) (*entity.Station, bool)
	All() []*entity.Station
}

// Station fuzzy-match weights mirror the POI matcher; the threshold keeps a
// weak name echo from hijacking the conversation context.
var (
	stationScoreContains  = 5
	stationScoreContained = 4
	stationScoreToken     = 1
	stationScoreCity      = 1
	stationMinScore       = 2
)

// ResolveStation binds an utterance to a station: by normalized id first,
// then by extracted name with fuzzy scoring over the (optionally
// city-narrowed) pool, finally by the TopK ranker picking one strong
// candidate. Every path is deterministic.
func ResolveStation(src StationSource, text string) (*entity.Station, bool) {
	if id, ok := extract.StationID(text); ok {
		if st, ok := src.Get(id); ok {
			return st, true
		}
	}

	name, ok := extract.StationName(text)
	if !ok {
		if top := TopK(src.All(), text, 1); len(top) == 1 {
			return top[0], true
		}
		return nil, false
	}

	city, _ := extract.City(text)
	tokens := extract.Tokens(text)

	var best *entity.Station
	bestScore := 0
	for _, st := range src.All() {
		if city != "" && st.City != city {
			continue
		}
		sc := scoreStation(st, name, city, tokens)
		if sc > bestScore {
			best = st
			bestScore = sc
		}
	}
	if best == nil || bestScore < stationMinScore {
		return nil, false
	}
	return best, true
}

func scoreStation(st *entity.Station, name, city string, tokens []string) int {
	sc := 0
	if strings.Contains(st.Name, name) {
		sc += stationScoreContains
	}
	if strings.Contains(name, st.Name) {
		sc += stationScoreContained
	}
	for _, t := range tokens {
		if t != "" && strings.Contains(st.Name, t) {
			sc += stationScoreToken
		}
	}
	if city != "" && st.City == city {
		sc += stationScoreCity
	}
	return sc
}

// fieldRules map answerable station fields to their trigger patterns.
// Detail outranks everything; the rest run in declaration order.
var fieldRules = []struct {
	field string
	re    *regexp.Regexp
}{
	{"detail", regexp.MustCompile(`细节|详情|信息|概况|简介|介绍|明细|详细|情况`)},
	{"id", regexp.MustCompile(`(?i)\b(id|编号)\b|编号`)},
	{"coords", regexp.MustCompile(`坐标|经纬度|位置`)},
	{"vendor", regexp.MustCompile(`(?i)厂商|vendor|供应商`)},
	{"band", regexp.MustCompile(`(?i)频段|band`)},
	{"status", regexp.MustCompile(`(?i)状态|online|offline|维护|maintenance`)},
	{"city", regexp.MustCompile(`城市`)},
	{"name", regexp.MustCompile(`名称|站名`)},
}

// DirectAnswer answers a simple field question about the in-context station
// locally, without the model. Very short "是什么/多少" questions fall back to
// a multi-field summary.
func DirectAnswer(text string, st *entity.Station) (string, bool) {
	if st == nil {
		return "", false
	}
	p := strings.TrimSpace(text)

	for _, fr := range fieldRules {
		if !fr.re.MatchString(p) {
			continue
		}
		switch fr.field {
		case "detail":
			return report.StationDetail(st), true
		case "id":
			return fmt.Sprintf("该基站的 ID：%s", st.ID), true
		case "coords":
			if st.HasCoords() {
				return fmt.Sprintf("该基站坐标：%.6f, %.6f", *st.Lat, *st.Lng), true
			}
			return "该基站未提供坐标信息。", true
		case "vendor":
			return "厂商：" + orUnknownField(st.Vendor), true
		case "band":
			return "频段：" + orUnknownField(st.Band), true
		case "status":
			return "状态：" + orUnknownField(st.Status), true
		case "city":
			return "城市：" + orUnknownField(st.City), true
		case "name":
			return "站名：" + orUnknownField(st.Name), true
		}
	}

	if len([]rune(p)) <= 8 && (strings.Contains(p, "多少") || strings.Contains(p, "是什么")) {
		coords := "?, ?"
		if st.HasCoords() {
			coords = fmt.Sprintf("%.6f, %.6f", *st.Lat, *st.Lng)
		}
		return fmt.Sprintf("ID：%s\n坐标：%s\n厂商/频段：%s / %s\n状态：%s",
			st.ID, coords, orUnknownField(st.Vendor), orUnknownField(st.Band), orUnknownField(st.Status)), true
	}

	return "", false
}

func orUnknownField(s string) string {
	if s == "" {
		return "未知"
	}
	return s
}
