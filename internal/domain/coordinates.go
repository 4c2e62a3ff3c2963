package domain

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Validate reports whether both axes are finite and within WGS84 bounds.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: lat=%v out of range [-90, 90]", ErrInvalidCoordinates, c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: lon=%v out of range [-180, 180]", ErrInvalidCoordinates, c.Lon)
	}
	return nil
}
