package report

import (
	"fmt"
	"sort"
	"strings"

	"station-chat-be/internal/entity"
)

func mdTable(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(header)) + "\n")
	for _, r := range rows {
		b.WriteString("| " + strings.Join(r, " | ") + " |\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func breakdownTable(title string, counts map[string]int, topn int) string {
	type kv struct {
		k string
		n int
	}
	items := make([]kv, 0, len(counts))
	for k, n := range counts {
		items = append(items, kv{k, n})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].n != items[j].n {
			return items[i].n > items[j].n
		}
		return items[i].k < items[j].k
	})
	if len(items) > topn {
		items = items[:topn]
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.k, fmt.Sprintf("%d", it.n)})
	}
	if len(rows) == 0 {
		rows = [][]string{{"—", "0"}}
	}
	return "**" + title + "**\n\n" + mdTable([]string{"项", "数量"}, rows)
}

// StationDetail renders a single station as a markdown card with an
// OpenStreetMap link when coordinates are present.
func StationDetail(st *entity.Station) string {
	if st == nil {
		return "未找到该基站。"
	}
	coords := "—"
	if st.HasCoords() {
		coords = fmt.Sprintf("%.6f, %.6f", *st.Lat, *st.Lng)
	}
	lines := []string{
		fmt.Sprintf("### %s（%s）", orDash(st.Name), st.ID),
		"",
		mdTable([]string{"字段", "值"}, [][]string{
			{"城市", orDash(st.City)},
			{"厂商", orDash(st.Vendor)},
			{"频段", orDash(st.Band)},
			{"状态", orDash(st.Status)},
			{"坐标", coords},
		}),
	}
	if st.Desc != "" {
		lines = append(lines, "", "> 备注："+st.Desc)
	}
	if st.HasCoords() {
		osm := fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=16/%.6f/%.6f",
			*st.Lat, *st.Lng, *st.Lat, *st.Lng)
		lines = append(lines, "", fmt.Sprintf("[在 OpenStreetMap 查看](%s)", osm))
	}
	return strings.Join(lines, "\n")
}

// CityOverview is the report answering "北京有哪些基站": overview, breakdown
// tables and a capped detail table.
func CityOverview(city string, rows []*entity.Station) string {
	stats := Aggregate(rows)

	p1 := strings.Join([]string{
		"# 1. 概览",
		fmt.Sprintf("- **城市**：%s", city),
		fmt.Sprintf("- **基站总数**：**%d**", stats.N),
		fmt.Sprintf("- **状态分布**：在线 **%d** · 维护 **%d** · 离线 **%d**",
			stats.StatusCounts[entity.StatusOnline],
			stats.StatusCounts[entity.StatusMaintenance],
			stats.StatusCounts[entity.StatusOffline]),
	}, "\n")

	p2 := strings.Join([]string{
		"# 2. 网络情况分析",
		"- **重点**：关注**离线**与**维护**站点的成因（电源/回传/射频），以及高负荷小区的扩容计划。",
		"",
		breakdownTable("厂商分布", stats.VendorCounts, 6),
		"",
		breakdownTable("频段分布", stats.BandCounts, 6),
	}, "\n")

	detail := make([][]string, 0, len(rows))
	for i, r := range rows {
		if i >= 100 {
			break
		}
		detail = append(detail, []string{r.ID, orDash(r.Name), orDash(r.Vendor), orDash(r.Band), orDash(r.Status)})
	}
	if len(detail) == 0 {
		detail = [][]string{{"—", "—", "—", "—", "—"}}
	}
	p3 := "# 3. 数据明细\n" + mdTable([]string{"ID", "名称", "厂商", "频段", "状态"}, detail)

	return strings.Join([]string{p1, p2, p3}, "\n\n")
}

// CityStatus is the report answering "上海几个是online的".
func CityStatus(city, status string, rows []*entity.Station) string {
	stats := Aggregate(rows)

	p1 := strings.Join([]string{
		"# 1. 概览",
		fmt.Sprintf("- **城市**：%s", city),
		fmt.Sprintf("- **状态**：**%s**", status),
		fmt.Sprintf("- **基站数量**：**%d**", stats.N),
	}, "\n")

	p2 := strings.Join([]string{
		"# 2. 网络情况分析",
		"- **重点**：若为 **offline**，优先排查电源/传输；若为 **maintenance**，关注工单进度与风险窗口；若为 **online**，抽样 KPI。",
		"",
		breakdownTable("厂商分布", stats.VendorCounts, 6),
		"",
		breakdownTable("频段分布", stats.BandCounts, 6),
	}, "\n")

	detail := make([][]string, 0, len(rows))
	for i, r := range rows {
		if i >= 60 {
			break
		}
		detail = append(detail, []string{r.ID, orDash(r.Name), orDash(r.Vendor), orDash(r.Band)})
	}
	if len(detail) == 0 {
		detail = [][]string{{"—", "—", "—", "—"}}
	}
	p3 := "# 3. 数据明细\n" + mdTable([]string{"ID", "名称", "厂商", "频段"}, detail)

	return strings.Join([]string{p1, p2, p3}, "\n\n")
}

// CompactTable is the dense station table handed to the model as retrieval
// context. Empty input renders to an empty string so callers can skip the
// context block entirely.
func CompactTable(rows []*entity.Station) string {
	if len(rows) == 0 {
		return ""
	}
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		lat, lng := "", ""
		if r.HasCoords() {
			lat = fmt.Sprintf("%.6f", *r.Lat)
			lng = fmt.Sprintf("%.6f", *r.Lng)
		}
		body = append(body, []string{r.ID, r.City, r.Name, r.Vendor, r.Band, r.Status, lat, lng})
	}
	return mdTable([]string{"ID", "城市", "名称", "厂商", "频段", "状态", "lat", "lng"}, body)
}

// NearbySummary renders the nearby-flow answer: the resolved landmark, the
// radius used and the hit list with distances.
func NearbySummary(poi *entity.POI, radiusM int, rows []*entity.Station, dists []float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**（%s·%s）附近 %d 米内共找到 **%d** 个基站。\n\n", poi.Name, poi.City, poi.District, radiusM, len(rows))
	if len(rows) == 0 {
		b.WriteString("可以扩大半径再试，例如“2km 内”。")
		return b.String()
	}

	body := make([][]string, 0, len(rows))
	for i, r := range rows {
		if i >= 8 {
			break
		}
		body = append(body, []string{
			r.ID, orDash(r.Name), orDash(r.Vendor), orDash(r.Band), orDash(r.Status),
			fmt.Sprintf("%.0f", dists[i]),
		})
	}
	b.WriteString(mdTable([]string{"ID", "名称", "厂商", "频段", "状态", "距离(m)"}, body))

	stats := Aggregate(rows)
	fmt.Fprintf(&b, "\n\n在线 %d · 维护 %d · 离线 %d",
		stats.StatusCounts[entity.StatusOnline],
		stats.StatusCounts[entity.StatusMaintenance],
		stats.StatusCounts[entity.StatusOffline])
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
