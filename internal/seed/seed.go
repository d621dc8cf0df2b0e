// Package seed produces the demo dataset: a deterministic station grid per
// supported city plus a small POI catalog with intentionally duplicated
// names, which is what feeds the disambiguation flow.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"station-chat-be/internal/constant"
	"station-chat-be/internal/entity"
)

const stationsPerCity = 8

// DefaultSeed is the RNG seed used for first-boot data.
const DefaultSeed int64 = 42

var (
	vendors = []string{"Huawei", "ZTE", "Ericsson", "Nokia"}
	bands   = []string{"n78", "n41", "n28", "n1"}

	descs = []string{
		"该站点周边为居民区，覆盖半径约 500 米，晚高峰时段负载较高。",
		"位于写字楼密集区域，用户投诉主要集中在室内覆盖不足。",
		"周边有大型商场，周末人流量大，容易出现拥塞。",
		"位于地铁口附近，早晚高峰有干扰告警记录。",
		"周边为公园绿地，覆盖稳定，但偶尔有掉话情况。",
	}
)

// Stations generates stationsPerCity stations around each city center.
// The same seed always yields the same dataset, so re-running the seeder
// does not churn IDs or coordinates.
func Stations(seed int64) []*entity.Station {
	r := rand.New(rand.NewSource(seed))
	now := time.Now().Unix()

	var out []*entity.Station
	for _, city := range constant.Cities {
		for i := 1; i <= stationsPerCity; i++ {
			lat := city.Lat + r.Float64()*0.06 - 0.03
			lng := city.Lng + r.Float64()*0.06 - 0.03
			out = append(out, &entity.Station{
				ID:        fmt.Sprintf("%s-%03d", city.Code, i),
				City:      city.Name,
				Name:      fmt.Sprintf("%s-示例站%d", city.Name, i),
				Vendor:    vendors[r.Intn(len(vendors))],
				Band:      bands[r.Intn(len(bands))],
				Status:    weightedStatus(r),
				Lat:       &lat,
				Lng:       &lng,
				UpdatedAt: now - int64(r.Intn(14))*86400,
				Desc:      descs[r.Intn(len(descs))],
			})
		}
	}
	return out
}

// weightedStatus draws online/maintenance/offline at 70/20/10.
func weightedStatus(r *rand.Rand) string {
	switch v := r.Float64(); {
	case v < 0.7:
		return entity.StatusOnline
	case v < 0.9:
		return entity.StatusMaintenance
	default:
		return entity.StatusOffline
	}
}

// POIs returns the fixed POI catalog. 万达广场 exists in three cities on
// purpose so "万达广场附近" has to be disambiguated.
func POIs() []*entity.POI {
	return []*entity.POI{
		poi("POI-1", "万达广场", []string{"万达"}, "北京", "朝阳区", 39.9219, 116.4551, "mall", "建国路93号", 92, 800),
		poi("POI-2", "万达广场", []string{"万达"}, "上海", "浦东新区", 31.2452, 121.5102, "mall", "世纪大道100号", 85, 700),
		poi("POI-3", "万达广场", []string{"万达"}, "杭州", "拱墅区", 30.3051, 120.1402, "mall", "莫干山路", 74, 600),
		poi("POI-4", "静安寺", nil, "上海", "静安区", 31.2239, 121.4454, "landmark", "南京西路1686号", 88, 500),
		poi("POI-5", "国贸", []string{"国贸CBD", "中国国际贸易中心"}, "北京", "朝阳区", 39.9087, 116.4585, "business", "建国门外大街1号", 90, 600),
		poi("POI-6", "西湖", []string{"西湖风景区"}, "杭州", "西湖区", 30.2489, 120.1444, "scenic", "龙井路", 95, 2000),
		poi("POI-7", "珠江新城", nil, "广州", "天河区", 23.1195, 113.3210, "business", "花城大道", 86, 900),
		poi("POI-8", "华强北", []string{"华强北商业区"}, "深圳", "福田区", 22.5460, 114.0885, "business", "华强北路", 84, 700),
		poi("POI-9", "天安门广场", []string{"天安门"}, "北京", "东城区", 39.9035, 116.3913, "landmark", "长安街", 97, 1000),
		poi("POI-10", "人民广场", nil, "上海", "黄浦区", 31.2336, 121.4692, "landmark", "人民大道", 82, 800),
	}
}

func poi(id, name string, aliases []string, city, district string, lat, lng float64, category, addr string, pop, radius int) *entity.POI {
	return &entity.POI{
		ID:         id,
		Name:       name,
		Aliases:    aliases,
		City:       city,
		District:   district,
		Lat:        &lat,
		Lng:        &lng,
		Category:   category,
		AddrHint:   addr,
		Popularity: pop,
		RadiusM:    radius,
	}
}
