// Package extract holds the stateless lexical extractors. Every extractor is
// a pure function text → (value, ok); ok=false always means "no match", never
// an error, so callers can fall through to the next routing tier.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"station-chat-be/internal/constant"
)

// Cities is the closed set of supported city names, shared with the geo
// surface so both match the same list. City names are mutually exclusive
// substrings in this corpus, so first hit in list order wins.
var Cities = constant.Names()

// City returns the first supported city name contained in the text.
func City(text string) (string, bool) {
	for _, c := range Cities {
		if strings.Contains(text, c) {
			return c, true
		}
	}
	return "", false
}

// isCity reports an exact membership hit against the closed city set.
func isCity(s string) bool {
	for _, c := range Cities {
		if s == c {
			return true
		}
	}
	return false
}

var stationIDPattern = regexp.MustCompile(`\b([A-Za-z]{2,5})-?\s*([0-9]{2,6})\b`)

// StationID extracts and normalizes a station id: uppercase prefix, numeric
// part zero-padded to a width of 3. Idempotent: extracting from a normalized
// id yields the same id.
func StationID(text string) (string, bool) {
	m := stationIDPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	prefix := strings.ToUpper(m[1])
	num := m[2]
	for len(num) < 3 {
		num = "0" + num
	}
	return fmt.Sprintf("%s-%s", prefix, num), true
}

var (
	quotedPattern  = regexp.MustCompile(`[“"'「『]([^“”"'「」『』]{2,32})[”"'」』]`)
	nameCuePattern = regexp.MustCompile(`(?:站名|名称|名字|名为|叫)\s*([^\s，。,:：;；!！?？、【】《》"“”']{2,32})`)
	// Generated demo-station names look like 北京-示例站3.
	genNamePattern = regexp.MustCompile(`\p{Han}{2,8}-?示例站[0-9]{1,3}`)
)

// StationName tries, in order: a quoted substring, text after a naming cue
// word, and the generated-name fallback pattern. First rule wins.
func StationName(text string) (string, bool) {
	if m := quotedPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := nameCuePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := genNamePattern.FindString(text); m != "" {
		return m, true
	}
	return "", false
}

// statusAliases maps each canonical status to its bilingual synonyms.
// Slice, not map: lookup order must be deterministic.
var statusAliases = []struct {
	canonical string
	synonyms  []string
}{
	{"online", []string{"online", "在线", "在网", "上线"}},
	{"maintenance", []string{"maintenance", "维护", "检修", "保养"}},
	{"offline", []string{"offline", "离线", "下线", "停机"}},
}

// Status normalizes a free-form status mention to the closed vocabulary.
func Status(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, sa := range statusAliases {
		for _, syn := range sa.synonyms {
			if strings.Contains(lower, syn) {
				return sa.canonical, true
			}
		}
	}
	return "", false
}

// CityStatus is the result of the structured count extractor.
type CityStatus struct {
	City   string
	Status string
}

const statusWords = `在线|离线|维护|online|offline|maintenance`

// Either order, with the status token within 8 runes of the counting cue:
// "上海几个是online的" / "北京在线有多少个".
var cityStatusCountPattern = regexp.MustCompile(
	`(?i)(?:(?P<status1>` + statusWords + `).{0,8}?(?:几个|多少|几))|(?:(?:几个|多少|几).{0,8}?(?P<status2>` + statusWords + `))`)

// CityStatusCount requires BOTH a city and a status near a counting cue.
// Partial matches return no match rather than a degraded answer.
func CityStatusCount(text string) (CityStatus, bool) {
	city, ok := City(text)
	if !ok {
		return CityStatus{}, false
	}
	m := cityStatusCountPattern.FindStringSubmatch(text)
	if m == nil {
		return CityStatus{}, false
	}
	raw := ""
	for i, name := range cityStatusCountPattern.SubexpNames() {
		if (name == "status1" || name == "status2") && m[i] != "" {
			raw = m[i]
			break
		}
	}
	status, ok := Status(raw)
	if !ok {
		return CityStatus{}, false
	}
	return CityStatus{City: city, Status: status}, true
}

var tokenPattern = regexp.MustCompile(`[\p{Han}A-Za-z0-9\-]+`)

// Tokens splits an utterance into the token stream the fuzzy matcher scores.
func Tokens(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}
