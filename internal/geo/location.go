package geo

import (
	"fmt"
	"math"
	"strconv"
)

// EarthRadiusKm is the mean Earth radius used for all spherical calculations.
const EarthRadiusKm = 6371.0

// Location is a point below (or on) the Earth's surface.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Depth     float64 `json:"depth"`
}

// NewLocation builds a location from latitude, longitude and depth.
func NewLocation(lat, lon, depth float64) Location {
	return Location{Latitude: lat, Longitude: lon, Depth: depth}
}

// String renders the location in wire order (lon lat depth).
func (l Location) String() string {
	return fmt.Sprintf("%s %s %s",
		strconv.FormatFloat(l.Longitude, 'f', -1, 64),
		strconv.FormatFloat(l.Latitude, 'f', -1, 64),
		strconv.FormatFloat(l.Depth, 'f', -1, 64),
	)
}

// HorizontalDistance returns the great-circle distance in km between the
// surface projections of a and b.
func HorizontalDistance(a, b Location) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := lat2 - lat1
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// Distance3D combines the horizontal distance and the depth difference.
func Distance3D(a, b Location) float64 {
	h := HorizontalDistance(a, b)
	v := b.Depth - a.Depth
	return math.Sqrt(h*h + v*v)
}

// Azimuth returns the initial bearing from a to b in degrees, [0, 360).
func Azimuth(a, b Location) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return normalizeDegrees(degrees(math.Atan2(y, x)))
}

// Destination moves from origin along azimuth (degrees) for horizontal km and
// down by vertical km.
func Destination(origin Location, azimuth, horizontal, vertical float64) Location {
	if horizontal == 0 {
		return Location{Latitude: origin.Latitude, Longitude: origin.Longitude, Depth: origin.Depth + vertical}
	}
	lat1 := radians(origin.Latitude)
	lon1 := radians(origin.Longitude)
	az := radians(azimuth)
	delta := horizontal / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(az))
	lon2 := lon1 + math.Atan2(
		math.Sin(az)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)
	return Location{
		Latitude:  degrees(lat2),
		Longitude: normalizeLongitude(degrees(lon2)),
		Depth:     origin.Depth + vertical,
	}
}

// Interpolate returns the point at fraction t (0..1) of the way from a to b.
// Horizontal position follows the great circle, depth is linear.
func Interpolate(a, b Location, t float64) Location {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	dist := HorizontalDistance(a, b)
	var out Location
	if dist == 0 {
		out = a
	} else {
		out = Destination(a, Azimuth(a, b), dist*t, 0)
	}
	out.Depth = a.Depth + (b.Depth-a.Depth)*t
	return out
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func normalizeLongitude(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
