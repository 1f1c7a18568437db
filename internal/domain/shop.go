package domain

// Shop is one result of a nearby-shops query. Category holds a shop type while
// the value travels between the gateway and the geo collaborator, and a
// shopping category once it has been relabeled for API consumers.
type Shop struct {
	Category     string  `json:"category"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Address      string  `json:"address,omitempty"`
	OpeningHours string  `json:"opening_hours,omitempty"`
	Distance     float64 `json:"distance,omitempty"`
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lon float64
}
