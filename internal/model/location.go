package model

// Sentinel labels substituted when real data is unavailable.
const (
	UnknownLocation = "Unknown Location"
	NotApplicable   = "N/A"
)

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// SamplePoint is a single generated coordinate on a ring around the center.
// SequenceIndex is the sole key for content rotation and output ordering.
type SamplePoint struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	RingIndex     int     `json:"ring_index"`   // 0 = center
	RadiusMiles   float64 `json:"radius_miles"` // 0 for center
	SequenceIndex int     `json:"sequence_index"`
}

// IsCenter reports whether the point is the ring-0 center point.
func (p SamplePoint) IsCenter() bool {
	return p.RingIndex == 0
}

// ResolvedLocation is one output row: a sample point joined with its
// geocoded label and rotated content.
type ResolvedLocation struct {
	SamplePoint
	CityState    string `json:"city_state"`
	Keyword      string `json:"keyword"`
	BusinessName string `json:"business_name"`
	Description  string `json:"description"`
	Color        string `json:"color"`
	BusinessURL  string `json:"business_url"`
}

// Resolved reports whether the geocoder produced a real label.
func (l ResolvedLocation) Resolved() bool {
	return l.CityState != "" && l.CityState != UnknownLocation
}
