package constant

// CityConfig maps a supported city to its station id prefix and center point.
type CityConfig struct {
	Name   string
	Code   string
	Lat    float64
	Lng    float64
}

// Cities is the closed set of supported cities. Extractors match against the
// same names via Names(); order matters (first substring hit wins).
var Cities = []CityConfig{
	{Name: "北京", Code: "BJS", Lat: 39.9042, Lng: 116.4074},
	{Name: "上海", Code: "SHS", Lat: 31.2304, Lng: 121.4737},
	{Name: "广州", Code: "GZS", Lat: 23.1291, Lng: 113.2644},
	{Name: "深圳", Code: "SZS", Lat: 22.5431, Lng: 114.0579},
	{Name: "杭州", Code: "HZS", Lat: 30.2741, Lng: 120.1551},
}

func Names() []string {
	out := make([]string, len(Cities))
	for i, c := range Cities {
		out[i] = c.Name
	}
	return out
}
