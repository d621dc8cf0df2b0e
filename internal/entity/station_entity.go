package entity

// Station statuses (closed vocabulary)
const (
	StatusOnline      = "online"
	StatusMaintenance = "maintenance"
	StatusOffline     = "offline"
)

// Station is a radio base station record. Lat/Lng are pointers because
// imported data may lack coordinates; geo scans skip such records.
type Station struct {
	ID        string   `json:"id"`
	City      string   `json:"city"`
	Name      string   `json:"name"`
	Vendor    string   `json:"vendor"`
	Band      string   `json:"band"`
	Status    string   `json:"status"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	UpdatedAt int64    `json:"updated_at"`
	Desc      string   `json:"desc,omitempty"`
	PoiID     string   `json:"poi_id,omitempty"`
}

// HasCoords reports whether the station carries usable coordinates.
func (s *Station) HasCoords() bool {
	return s != nil && s.Lat != nil && s.Lng != nil
}
