// Package rings generates sample points on concentric rings around a center.
package rings

import (
	"math"

	"github.com/sells-group/geo-locator/internal/model"
)

// MilesPerDegreeLat is the approximate length of one degree of latitude.
const MilesPerDegreeLat = 69.0

// EarthRadiusMiles is the mean Earth radius used by DistanceMiles.
const EarthRadiusMiles = 3959.0

// MaxCenterLatitude is the polar cutoff. Beyond it cos(lat) is too small for
// the longitude offset approximation to hold.
const MaxCenterLatitude = 85.0

// Layout describes the ring structure.
type Layout struct {
	Rings           int     `json:"rings"`
	PointsPerRing   int     `json:"points_per_ring"`
	RadiusStepMiles float64 `json:"radius_step_miles"`
}

// Count returns the number of points Generate emits for the layout.
func (l Layout) Count() int {
	return 1 + l.Rings*l.PointsPerRing
}

// MaxRadiusMiles returns the radius of the outermost ring.
func (l Layout) MaxRadiusMiles() float64 {
	return float64(l.Rings) * l.RadiusStepMiles
}

// Validate checks the layout on its own, independent of a center.
func (l Layout) Validate() error {
	if l.Rings <= 0 {
		return model.NewConfigError("rings.count", "must be positive")
	}
	if l.PointsPerRing <= 0 {
		return model.NewConfigError("rings.points_per_ring", "must be positive")
	}
	if math.IsNaN(l.RadiusStepMiles) || math.IsInf(l.RadiusStepMiles, 0) {
		return model.NewConfigError("rings.radius_step_miles", "must be finite")
	}
	if l.RadiusStepMiles <= 0 {
		return model.NewConfigError("rings.radius_step_miles", "must be positive")
	}
	return nil
}

// PointsPerRing splits a total point budget evenly across rings, rounding
// down. It never returns less than 1.
func PointsPerRing(totalPoints, rings int) int {
	if rings <= 0 {
		return 1
	}
	n := totalPoints / rings
	if n < 1 {
		return 1
	}
	return n
}

// ValidateCenter rejects centers the generator cannot handle.
func ValidateCenter(c model.Coordinate) error {
	if !finite(c.Latitude) || !finite(c.Longitude) {
		return model.NewConfigError("center", "coordinates must be finite numbers")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return model.NewConfigError("center.lat", "must be within [-90, 90]")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return model.NewConfigError("center.lon", "must be within [-180, 180]")
	}
	if math.Abs(c.Latitude) > MaxCenterLatitude {
		return model.NewConfigError("center.lat", "too close to a pole for ring generation")
	}
	return nil
}

// Generate returns the full ordered point list: the center first, then each
// ring outward with its points in angular order. Output is deterministic.
func Generate(center model.Coordinate, layout Layout) ([]model.SamplePoint, error) {
	if err := ValidateCenter(center); err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if math.Abs(center.Latitude)+layout.MaxRadiusMiles()/MilesPerDegreeLat >= 90 {
		return nil, model.NewConfigError("rings", "outermost ring crosses a pole")
	}

	points := make([]model.SamplePoint, 0, layout.Count())
	points = append(points, model.SamplePoint{
		Latitude:      center.Latitude,
		Longitude:     center.Longitude,
		RingIndex:     0,
		RadiusMiles:   0,
		SequenceIndex: 0,
	})

	lonDivisor := MilesPerDegreeLat * math.Cos(center.Latitude*math.Pi/180)
	seq := 1
	for r := 1; r <= layout.Rings; r++ {
		radius := float64(r) * layout.RadiusStepMiles
		for i := 0; i < layout.PointsPerRing; i++ {
			angle := 2 * math.Pi * float64(i) / float64(layout.PointsPerRing)
			latOffset := (radius / MilesPerDegreeLat) * math.Cos(angle)
			lonOffset := (radius / lonDivisor) * math.Sin(angle)

			points = append(points, model.SamplePoint{
				Latitude:      center.Latitude + latOffset,
				Longitude:     wrapLongitude(center.Longitude + lonOffset),
				RingIndex:     r,
				RadiusMiles:   radius,
				SequenceIndex: seq,
			})
			seq++
		}
	}
	return points, nil
}

// DistanceMiles returns the great-circle distance between two coordinates.
func DistanceMiles(a, b model.Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// wrapLongitude folds a longitude into [-180, 180).
func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon < 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
