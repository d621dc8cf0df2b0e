package service

import (
	"encoding/json"
	"fmt"

	"station-chat-be/pkg/report"
)

var chartTitles = map[string]string{
	"bar":        "厂商柱状图",
	"pie":        "在线状态饼图",
	"donut":      "频段甜甜圈",
	"stacked":    "厂商×状态堆叠柱",
	"heatmap":    "厂商×频段热力图",
	"horizontal": "状态水平条",
	"hist":       "更新时间直方图",
}

func chartTitle(city, kind string) string {
	t, ok := chartTitles[kind]
	if !ok {
		t = "基站图表"
	}
	return fmt.Sprintf("%s %s", city, t)
}

func statsFacts(city string, stats report.Stats) string {
	facts, _ := json.Marshal(map[string]interface{}{
		"city":    city,
		"n":       stats.N,
		"vendors": stats.VendorCounts,
		"status":  stats.StatusCounts,
		"bands":   stats.BandCounts,
	})
	return string(facts)
}

func explainChartPrompt(city, kind string, stats report.Stats) string {
	return fmt.Sprintf(
		"你是网络运营分析助手。现在用户让你生成“%s”。\n"+
			"请用中文写 3-5 句，说明：这个图是什么、它展示了什么维度、读图时应关注哪些对比或占比，并给出 1-2 条简要洞见。\n"+
			"不要复述全部数字，只点出核心结论。城市：%s。\n"+
			"补充数据(JSON)：%s",
		chartTitle(city, kind), city, statsFacts(city, stats))
}

func explainOverviewPrompt(city string, stats report.Stats) string {
	return fmt.Sprintf(
		"你是网络运营分析助手。请用中文给一组图表做简短总览解读，对象是%s的基站数据。\n"+
			"数据事实(JSON)：%s\n"+
			"图表清单：厂商柱状图、在线状态饼图、频段甜甜圈、厂商×状态堆叠柱、厂商×频段热力图、状态水平条、更新时间直方图。\n"+
			"写 5-7 句：每个图大概能看什么，不要逐个罗列全部数字；指出最主要的对比/占比/异常；风格简洁。",
		city, statsFacts(city, stats))
}

func explain3DPrompt(city string, stats report.Stats) string {
	return fmt.Sprintf(
		"你是网络运营分析助手。现在展示%s基站的三维密度曲面。\n"+
			"请用中文写 2-4 句，说明这个曲面反映了站点的空间分布与密度差异，并点出 1 条值得关注的现象。\n"+
			"补充数据(JSON)：%s",
		city, statsFacts(city, stats))
}
