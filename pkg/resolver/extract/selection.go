package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Selection is a resolved pick against a pending candidate list: either an
// explicit POI id, or a 1-based index. Negative Index counts from the end
// (-1 = last).
type Selection struct {
	ID    string
	Index int
}

var (
	poiIDPattern      = regexp.MustCompile(`(?i)\b(POI-[0-9]{1,4})\b`)
	bareNumberPattern = regexp.MustCompile(`^\s*([0-9]{1,3})\s*$`)
	ordinalPattern    = regexp.MustCompile(`第\s*([一二两三四五六七八九十0-9]+)\s*(?:个|家|条)?`)
	fromEndPattern    = regexp.MustCompile(`倒数第?\s*([一二两三四五六七八九十0-9]+)`)
	lastOnePattern    = regexp.MustCompile(`最后一(?:个|条|家)`)
)

// SelectionIndex recognizes an explicit POI-ID token, a bare number, or a
// CJK numeral (including compounds such as 二十三), in ordinal or bare form.
func SelectionIndex(text string) (Selection, bool) {
	if m := poiIDPattern.FindStringSubmatch(text); m != nil {
		return Selection{ID: strings.ToUpper(m[1])}, true
	}
	if lastOnePattern.MatchString(text) {
		return Selection{Index: -1}, true
	}
	if m := fromEndPattern.FindStringSubmatch(text); m != nil {
		if n, ok := numeral(m[1]); ok && n > 0 {
			return Selection{Index: -n}, true
		}
		return Selection{}, false
	}
	if m := ordinalPattern.FindStringSubmatch(text); m != nil {
		if n, ok := numeral(m[1]); ok && n > 0 {
			return Selection{Index: n}, true
		}
		return Selection{}, false
	}
	if m := bareNumberPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Selection{Index: n}, true
	}
	// A follow-up that is nothing but a CJK numeral ("三") is also a pick.
	if n, ok := cjkToInt(strings.TrimSpace(text)); ok {
		return Selection{Index: n}, true
	}
	return Selection{}, false
}

// numeral accepts either arabic digits or a CJK numeral string.
func numeral(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	return cjkToInt(s)
}

var cjkDigits = map[rune]int{
	'一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

// cjkToInt parses CJK numerals 1–99: 三, 十, 十三, 二十, 二十三.
func cjkToInt(s string) (int, bool) {
	runes := []rune(s)
	if len(runes) == 0 || len(runes) > 3 {
		return 0, false
	}

	switch len(runes) {
	case 1:
		if runes[0] == '十' {
			return 10, true
		}
		if d, ok := cjkDigits[runes[0]]; ok {
			return d, true
		}
	case 2:
		// 十Y or X十
		if runes[0] == '十' {
			if d, ok := cjkDigits[runes[1]]; ok {
				return 10 + d, true
			}
			return 0, false
		}
		if runes[1] == '十' {
			if d, ok := cjkDigits[runes[0]]; ok {
				return d * 10, true
			}
		}
	case 3:
		// X十Y
		if runes[1] != '十' {
			return 0, false
		}
		tens, ok1 := cjkDigits[runes[0]]
		ones, ok2 := cjkDigits[runes[2]]
		if ok1 && ok2 {
			return tens*10 + ones, true
		}
	}
	return 0, false
}

var radiusPattern = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*(?i:(km|m|公里|千米|米))`)

// RadiusM extracts a search radius and normalizes it to integer meters.
// Supports both scripts: 200m, 1.5km, 800米, 2公里.
func RadiusM(text string) (int, bool) {
	t := strings.ReplaceAll(text, "公尺", "米")
	m := radiusPattern.FindStringSubmatch(t)
	if m == nil {
		return 0, false
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "km", "公里", "千米":
		return int(val*1000 + 0.5), true
	default: // m, 米
		return int(val + 0.5), true
	}
}
