package routing

import "errors"

var (
	ErrNoRoute   = errors.New("no route returned; check coordinates or road access")
	ErrNoGeocode = errors.New("no geocode result")
)
