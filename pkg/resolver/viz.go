package resolver

import "regexp"

// Visualization cue patterns. 3D outranks the flat-chart cues in routing.
var (
	viz3DPattern  = regexp.MustCompile(`(?i)3d|三维|立体|体渲染|体积|等值面|等高|模拟`)
	vizPattern    = regexp.MustCompile(`(?i)出图|图表|可视化|柱状|折线|饼图|plot|chart|bar`)
	vizAllPattern = regexp.MustCompile(`(?i)全部|所有|all|全图`)
)

// chartKinds runs in order; first hit wins, bar is the default.
var chartKinds = []struct {
	kind string
	re   *regexp.Regexp
}{
	{"donut", regexp.MustCompile(`(?i)甜甜圈|donut`)},
	{"pie", regexp.MustCompile(`(?i)饼图|pie`)},
	{"heatmap", regexp.MustCompile(`(?i)热力|heatmap`)},
	{"stacked", regexp.MustCompile(`(?i)堆叠|stack`)},
	{"hist", regexp.MustCompile(`(?i)直方|hist`)},
	{"horizontal", regexp.MustCompile(`(?i)水平|horizontal|barh|hbar`)},
}

// ChartKind classifies which flat chart the user asked for.
func ChartKind(text string) string {
	for _, ck := range chartKinds {
		if ck.re.MatchString(text) {
			return ck.kind
		}
	}
	return "bar"
}
