package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCoordinate indicates a coordinate cell that is not "lat,lon".
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a latitude/longitude pair rendered in DMS notation.
type Coordinate struct {
	// Raw is the original cell text.
	Raw string
	// Lat is the latitude in DMS, e.g. 10°55'29.5"S.
	Lat string
	// Lon is the longitude in DMS, e.g. 37°04'49.0"W.
	Lon string
}

// DMS returns "<lat> <lon>".
func (c Coordinate) DMS() string {
	return c.Lat + " " + c.Lon
}

// ParseCoordinate reads "lat,lon" (or "lat;lon") in decimal degrees.
func ParseCoordinate(raw string) (Coordinate, error) {
	parts := strings.Split(strings.ReplaceAll(raw, ";", ","), ",")
	if len(parts) < 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, raw)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: latitude %q", ErrInvalidCoordinate, parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: longitude %q", ErrInvalidCoordinate, parts[1])
	}

	return Coordinate{
		Raw: raw,
		Lat: DMS(lat, true),
		Lon: DMS(lon, false),
	}, nil
}

// DecimalToDMS converts a decimal-degree cell. Blank or unparseable input
// yields "".
func DecimalToDMS(value string, isLatitude bool) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return ""
	}
	return DMS(v, isLatitude)
}

// DMS formats decimal degrees as DD°MM'SS.S"H.
func DMS(value float64, isLatitude bool) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}

	var hemi string
	if isLatitude {
		hemi = "N"
		if value < 0 {
			hemi = "S"
		}
	} else {
		hemi = "E"
		if value < 0 {
			hemi = "W"
		}
	}

	abs := math.Abs(value)
	degrees := int(abs)
	minutesFloat := (abs - float64(degrees)) * 60
	minutes := int(minutesFloat)
	seconds := (minutesFloat - float64(minutes)) * 60

	return fmt.Sprintf("%02d°%02d'%04.1f\"%s", degrees, minutes, seconds, hemi)
}
