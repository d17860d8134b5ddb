package model

import "time"

// Summary holds derived statistics for a completed run.
type Summary struct {
	Total          int     `json:"total"`
	DistinctCities int     `json:"distinct_cities"`
	Unresolved     int     `json:"unresolved"`
	Rings          int     `json:"rings"`
	MaxRadiusMiles float64 `json:"max_radius_miles"`
}

// ResultSet is the ordered, immutable output of a pipeline run.
type ResultSet struct {
	runID       string
	completedAt time.Time
	locations   []ResolvedLocation
	summary     Summary
}

// NewResultSet builds a ResultSet from rows already in sequence order.
// The slice is copied; later changes by the caller are not observed.
func NewResultSet(runID string, rows []ResolvedLocation, completedAt time.Time) *ResultSet {
	locs := make([]ResolvedLocation, len(rows))
	copy(locs, rows)
	return &ResultSet{
		runID:       runID,
		completedAt: completedAt,
		locations:   locs,
		summary:     summarize(locs),
	}
}

// RunID returns the identifier of the run that produced the set.
func (rs *ResultSet) RunID() string { return rs.runID }

// CompletedAt returns when the final batch resolved.
func (rs *ResultSet) CompletedAt() time.Time { return rs.completedAt }

// Len returns the number of rows.
func (rs *ResultSet) Len() int { return len(rs.locations) }

// Locations returns a copy of the rows in sequence order.
func (rs *ResultSet) Locations() []ResolvedLocation {
	out := make([]ResolvedLocation, len(rs.locations))
	copy(out, rs.locations)
	return out
}

// At returns the row at position i.
func (rs *ResultSet) At(i int) ResolvedLocation { return rs.locations[i] }

// Summary returns the derived statistics.
func (rs *ResultSet) Summary() Summary { return rs.summary }

func summarize(locs []ResolvedLocation) Summary {
	s := Summary{Total: len(locs)}
	cities := make(map[string]struct{})
	for _, l := range locs {
		cities[l.CityState] = struct{}{}
		if !l.Resolved() {
			s.Unresolved++
		}
		if l.RingIndex > s.Rings {
			s.Rings = l.RingIndex
		}
		if l.RadiusMiles > s.MaxRadiusMiles {
			s.MaxRadiusMiles = l.RadiusMiles
		}
	}
	s.DistinctCities = len(cities)
	return s
}
