package kernel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"

	"dispatch/internal/pkg/guard"
)

const (
	// GeoMinLatitude is the minimum valid latitude in degrees.
	GeoMinLatitude float64 = -90
	// GeoMaxLatitude is the maximum valid latitude in degrees.
	GeoMaxLatitude float64 = 90
	// GeoMinLongitude is the minimum valid longitude in degrees.
	GeoMinLongitude float64 = -180
	// GeoMaxLongitude is the maximum valid longitude in degrees.
	GeoMaxLongitude float64 = 180
)

// DefaultAddress is used when a caller supplies coordinates without a
// street address. Clients update it later.
const DefaultAddress = "to be updated"

// ErrGeoPointIsNotConstructed is returned when validating a GeoPoint that
// bypassed the NewGeoPoint constructor.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint")

// GeoPoint is a validated geographic coordinate pair with an optional
// street address. It is an immutable value object; the zero value is
// invalid and fails Validate.
//
// Example:
//
//	loc, err := kernel.NewGeoPoint(48.8584, 2.2945, "Av. Gustave Eiffel")
//	if err != nil {
//	    return err
//	}
type GeoPoint struct {
	lat     float64
	lon     float64
	address string
	guard   guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with bounds-checked coordinates.
// An empty address is replaced with DefaultAddress.
func NewGeoPoint(lat, lon float64, address string) (GeoPoint, error) {
	p := GeoPoint{
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	if p.address == "" {
		p.address = DefaultAddress
	}

	if err := errors.Join(p.setLat(lat), p.setLon(lon)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate reports whether the point was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude in degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// Address returns the street address associated with the point.
func (p GeoPoint) Address() string {
	return p.address
}

// String implements fmt.Stringer for logging.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lon)
}

// IsEqual compares two points by coordinates, ignoring the address.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lon == other.lon, nil
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoMinLatitude || lat > GeoMaxLatitude {
		return errs.NewValueIsInvalidErrorWithCause("lat",
			fmt.Errorf("%.6f is outside [%.0f..%.0f]", lat, GeoMinLatitude, GeoMaxLatitude))
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLon(lon float64) error {
	if lon < GeoMinLongitude || lon > GeoMaxLongitude {
		return errs.NewValueIsInvalidErrorWithCause("lon",
			fmt.Errorf("%.6f is outside [%.0f..%.0f]", lon, GeoMinLongitude, GeoMaxLongitude))
	}

	p.lon = lon
	return nil
}
