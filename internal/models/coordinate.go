package models

// Coordinate represents a geographical point extracted from photo metadata.
// Each field is optional: a nil pointer means the corresponding tag was
// absent or unreadable. Latitude and Longitude are always set together or
// not at all; Altitude is independent and may appear alone.
type Coordinate struct {
	Latitude  *float64 // Latitude in signed decimal degrees (south is negative).
	Longitude *float64 // Longitude in signed decimal degrees (west is negative).
	Altitude  *float64 // Altitude in signed decimal meters (below sea level is negative).
}

// HasLatLong reports whether the coordinate carries a usable position.
// Altitude alone does not count as a position.
func (c Coordinate) HasLatLong() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Float64Ptr returns a pointer to v. Convenience for building optional
// coordinate fields.
func Float64Ptr(v float64) *float64 {
	return &v
}
