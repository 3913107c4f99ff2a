package nrml_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faultline/internal/geo"
	"faultline/internal/nrml"
)

func TestParsePositionsSwapsLongitudeAndLatitude(t *testing.T) {
	locations, err := nrml.ParsePositions("-124.704 40.363 0.5\n\t-124.977 41.214 1.5  -125.140 42.096 2.5 ")
	require.NoError(t, err)
	require.Len(t, locations, 3)

	want := []geo.Location{
		geo.NewLocation(40.363, -124.704, 0.5),
		geo.NewLocation(41.214, -124.977, 1.5),
		geo.NewLocation(42.096, -125.140, 2.5),
	}
	assert.Equal(t, want, locations)
}

func TestParsePositionsEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		locations, err := nrml.ParsePositions(input)
		require.NoError(t, err, "input %q", input)
		assert.Empty(t, locations, "input %q", input)
	}
}

func TestParsePositionsRejectsIncompleteTriples(t *testing.T) {
	cases := []string{
		"1",
		"1 2",
		"1 2 3 4",
		"1 2 3 4 5",
		"1 2 3 4 5 6 7",
	}
	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			locations, err := nrml.ParsePositions(input)
			require.Error(t, err)
			assert.Nil(t, locations)
			assert.ErrorIs(t, err, nrml.ErrMalformedGeometry)
			assert.Equal(t, nrml.KindMalformedGeometry, nrml.KindOf(err))
			assert.Contains(t, err.Error(), "longitude, latitude and depth must always be specified")
		})
	}
}

func TestParsePositionsRejectsNonNumericToken(t *testing.T) {
	locations, err := nrml.ParsePositions("1.0 north 3.0")
	require.Error(t, err)
	assert.Nil(t, locations)
	assert.ErrorIs(t, err, nrml.ErrMalformedNumber)
	assert.Contains(t, err.Error(), `"north"`)

	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr), "expected strconv cause, got %v", err)
}

func TestParsePositionsRejectsNonFiniteTokens(t *testing.T) {
	for _, token := range []string{"NaN", "nan", "Inf", "+Inf", "-inf", "Infinity", "1e400"} {
		t.Run(token, func(t *testing.T) {
			locations, err := nrml.ParsePositions("1.0 " + token + " 3.0")
			assert.Nil(t, locations)
			assert.ErrorIs(t, err, nrml.ErrMalformedNumber)
			assert.Contains(t, err.Error(), strconv.Quote(token))
		})
	}
}

func TestParsePositionsAcceptsHexFloats(t *testing.T) {
	locations, err := nrml.ParsePositions("0x1p3 -0x1.8p1 0x0p0")
	require.NoError(t, err)
	assert.Equal(t, []geo.Location{geo.NewLocation(-3, 8, 0)}, locations)
}

func TestParsePositionsConcatenationMatchesIndividualTriples(t *testing.T) {
	triples := []string{
		"-124.704 40.363 0.0",
		"0.1 0.2 0.30000000000000004",
		"179.999999 -89.5 700",
		"1e-3 -2.5E2 12.125",
	}

	var individual []geo.Location
	for _, triple := range triples {
		loc, err := nrml.ParsePosition(triple)
		require.NoError(t, err)
		individual = append(individual, loc)
	}

	combined, err := nrml.ParsePositions(strings.Join(triples, " "))
	require.NoError(t, err)
	assert.Equal(t, individual, combined)
}

func TestParsePositionRequiresExactlyOneTriple(t *testing.T) {
	_, err := nrml.ParsePosition("1 2 3 4 5 6")
	assert.ErrorIs(t, err, nrml.ErrMalformedGeometry)

	_, err = nrml.ParsePosition("")
	assert.ErrorIs(t, err, nrml.ErrMalformedGeometry)

	loc, err := nrml.ParsePosition(" 10 20 5 ")
	require.NoError(t, err)
	assert.Equal(t, geo.NewLocation(20, 10, 5), loc)
}
