package entity

// POI is a point of interest used as an anchor for nearby queries.
// Names are NOT unique across cities; only the ID is.
type POI struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases,omitempty"`
	City       string   `json:"city"`
	District   string   `json:"district"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	Category   string   `json:"category"`
	AddrHint   string   `json:"addr_hint"`
	Popularity int      `json:"popularity"`
	RadiusM    int      `json:"radius_m"`
}

func (p *POI) HasCoords() bool {
	return p != nil && p.Lat != nil && p.Lng != nil
}
