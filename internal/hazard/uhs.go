// Package hazard holds values produced by hazard calculations that consume
// ruptures.
package hazard

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// UHSResult is one uniform hazard spectrum: the spectral accelerations that
// share a probability of exceedance.
type UHSResult struct {
	poe      float64
	spectrum []float64
}

// NewUHSResult copies spectrum into a new result.
func NewUHSResult(poe float64, spectrum []float64) UHSResult {
	return UHSResult{poe: poe, spectrum: slices.Clone(spectrum)}
}

// PoE is the probability of exceedance.
func (u UHSResult) PoE() float64 { return u.poe }

// Spectrum returns a copy of the spectral values.
func (u UHSResult) Spectrum() []float64 { return slices.Clone(u.spectrum) }

// Len is the number of spectral values.
func (u UHSResult) Len() int { return len(u.spectrum) }

// Validate checks that the PoE is a probability and every value is finite.
func (u UHSResult) Validate() error {
	if math.IsNaN(u.poe) || u.poe < 0 || u.poe > 1 {
		return fmt.Errorf("uhs poe must be within [0, 1], got %v", u.poe)
	}
	for i, v := range u.spectrum {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("uhs value %d is not finite", i)
		}
	}
	return nil
}

type uhsJSON struct {
	PoE      float64   `json:"poe"`
	Spectrum []float64 `json:"uhs"`
}

func (u UHSResult) MarshalJSON() ([]byte, error) {
	spectrum := u.spectrum
	if spectrum == nil {
		spectrum = []float64{}
	}
	return json.Marshal(uhsJSON{PoE: u.poe, Spectrum: spectrum})
}

func (u *UHSResult) UnmarshalJSON(data []byte) error {
	var raw uhsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = NewUHSResult(raw.PoE, raw.Spectrum)
	return nil
}
