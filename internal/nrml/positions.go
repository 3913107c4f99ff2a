package nrml

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"faultline/internal/geo"
)

// ParsePositions tokenises a gml position list into locations.
//
// Tokens come in (longitude, latitude, depth) triples; each triple becomes
// one geo.Location in input order. An empty string yields no locations. A
// token count that is not a multiple of three fails with
// ErrMalformedGeometry, a non-numeric or non-finite token with
// ErrMalformedNumber.
func ParsePositions(text string) ([]geo.Location, error) {
	tokens := strings.Fields(text)
	if len(tokens)%3 != 0 {
		return nil, newError(KindMalformedGeometry, "",
			fmt.Sprintf("longitude, latitude and depth must always be specified (got %d values)", len(tokens)))
	}

	locations := make([]geo.Location, 0, len(tokens)/3)
	for i := 0; i < len(tokens); i += 3 {
		lon, err := parseToken(tokens[i])
		if err != nil {
			return nil, err
		}
		lat, err := parseToken(tokens[i+1])
		if err != nil {
			return nil, err
		}
		depth, err := parseToken(tokens[i+2])
		if err != nil {
			return nil, err
		}
		locations = append(locations, geo.NewLocation(lat, lon, depth))
	}
	return locations, nil
}

// ParsePosition parses a single gml:pos value. Exactly one triple is
// required.
func ParsePosition(text string) (geo.Location, error) {
	locations, err := ParsePositions(text)
	if err != nil {
		return geo.Location{}, err
	}
	if len(locations) != 1 {
		return geo.Location{}, newError(KindMalformedGeometry, "",
			fmt.Sprintf("expected exactly one position, got %d", len(locations)))
	}
	return locations[0], nil
}

// errNotFinite is the cause attached to NaN and infinite tokens.
var errNotFinite = errors.New("value is not finite")

// parseToken parses one decimal or hexadecimal float. NaN and infinities
// parse in Go but describe no position or angle, so they are rejected.
func parseToken(token string) (float64, error) {
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &Error{Kind: KindMalformedNumber, Detail: strconv.Quote(token), Err: err}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &Error{Kind: KindMalformedNumber, Detail: strconv.Quote(token), Err: errNotFinite}
	}
	return value, nil
}
