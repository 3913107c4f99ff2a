// Package tectonic enumerates seismotectonic region types and resolves them
// from the names used in hazard documents.
package tectonic

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Region classifies the seismotectonic setting of a rupture.
type Region int

const (
	RegionUnknown Region = iota
	ActiveShallow
	StableShallow
	SubductionInterface
	SubductionSlab
	Volcanic
)

// ErrUnknownRegion is returned when a name matches no region.
var ErrUnknownRegion = errors.New("unknown tectonic region")

var regionNames = map[Region]string{
	ActiveShallow:       "Active Shallow Crust",
	StableShallow:       "Stable Shallow Crust",
	SubductionInterface: "Subduction Interface",
	SubductionSlab:      "Subduction IntraSlab",
	Volcanic:            "Volcanic",
}

var regionCodes = map[Region]string{
	ActiveShallow:       "ACTIVE_SHALLOW",
	StableShallow:       "STABLE_SHALLOW",
	SubductionInterface: "SUBDUCTION_INTERFACE",
	SubductionSlab:      "SUBDUCTION_SLAB",
	Volcanic:            "VOLCANIC",
}

// Regions lists every known region in declaration order.
func Regions() []Region {
	return []Region{ActiveShallow, StableShallow, SubductionInterface, SubductionSlab, Volcanic}
}

// String returns the display name, e.g. "Active Shallow Crust".
func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Code returns the enumeration identifier, e.g. "ACTIVE_SHALLOW".
func (r Region) Code() string {
	if code, ok := regionCodes[r]; ok {
		return code
	}
	return "UNKNOWN"
}

// MarshalText encodes the region by display name.
func (r Region) MarshalText() ([]byte, error) {
	if _, ok := regionNames[r]; !ok {
		return nil, fmt.Errorf("marshal region %d: %w", int(r), ErrUnknownRegion)
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a region using LookupName.
func (r *Region) UnmarshalText(text []byte) error {
	region, err := LookupName(string(text))
	if err != nil {
		return err
	}
	*r = region
	return nil
}

// Lookup resolves a region from a document name.
type Lookup func(name string) (Region, error)

var foldedIndex = buildFoldedIndex()

// buildFoldedIndex maps the case-folded display name and code of every region
// to the region.
func buildFoldedIndex() map[string]Region {
	folder := cases.Fold()
	index := make(map[string]Region, len(regionNames)*2)
	for _, region := range Regions() {
		index[folder.String(regionNames[region])] = region
		index[folder.String(regionCodes[region])] = region
	}
	return index
}

// LookupName is the default Lookup. It accepts a display name or an
// enumeration code. Exact display names match first; otherwise surrounding
// whitespace is trimmed and the comparison is case-folded.
func LookupName(name string) (Region, error) {
	for _, region := range Regions() {
		if regionNames[region] == name {
			return region, nil
		}
	}
	key := cases.Fold().String(strings.TrimSpace(name))
	if region, ok := foldedIndex[key]; ok {
		return region, nil
	}
	return RegionUnknown, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
}
