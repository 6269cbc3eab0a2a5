package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var ErrInvalidCoordinates = errors.New("invalid coordinate pair")

// The whole input must be the pair; "12, 3 Elm Street" is an address, not coordinates.
var coordPattern = regexp.MustCompile(`^\s*([+-]?\d+\.?\d*)\s*,\s*([+-]?\d+\.?\d*)\s*$`)

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Midpoint is the naive arithmetic midpoint, good enough for placing map markers.
func (c Coordinates) Midpoint(o Coordinates) Coordinates {
	return Coordinates{Lon: (c.Lon + o.Lon) / 2, Lat: (c.Lat + o.Lat) / 2}
}

func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

// ParseCoordinates reads a "lon,lat" string.
func ParseCoordinates(s string) (Coordinates, error) {
	m := coordPattern.FindStringSubmatch(s)
	if m == nil {
		return Coordinates{}, fmt.Errorf("%w: %q", ErrInvalidCoordinates, s)
	}

	lon, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: lon %q: %v", ErrInvalidCoordinates, m[1], err)
	}
	lat, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: lat %q: %v", ErrInvalidCoordinates, m[2], err)
	}

	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return Coordinates{}, fmt.Errorf("%w: out of range %q", ErrInvalidCoordinates, s)
	}

	return Coordinates{Lon: lon, Lat: lat}, nil
}
