package geocoding

import "context"

// Provider is an interface that defines a method for reverse geocoding a
// coordinate. ReverseGeocode takes a context and a decimal latitude and
// longitude, and returns a human-readable address string or an error.
type Provider interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}
