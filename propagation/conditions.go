// Package propagation models underwater acoustic propagation: speed of
// sound and absorption from published empirical models combined by
// validity-weighted ensemble averaging, and transmission loss from
// absorption and spherical spreading.
//
// Every model evaluator is best-effort: inputs outside a model's stated
// reliability limits flag the result invalid and emit a Warn-grade
// diagnostic, but a number is always produced. The caller judges
// confidence from the flags.
package propagation

// celsiusToKelvin converts water temperature to the absolute scale used
// by the relaxation-frequency terms.
const celsiusToKelvin = 273.15

// Default water properties for Lyman and Fleming standard seawater.
const (
	DefaultSalinity = 35.0 // parts per thousand
	DefaultPH       = 8.0
)

// Conditions describes the water column at the point of interest.
// All fields are SI: Temperature in Celsius, Depth in meters, Salinity
// in parts per thousand, PH in pH units. Negative depths are treated as
// the surface by every evaluator.
type Conditions struct {
	Temperature float64 `json:"temperature"`
	Depth       float64 `json:"depth"`
	Salinity    float64 `json:"salinity"`
	PH          float64 `json:"ph"`
}

// DefaultConditions returns Conditions with standard seawater salinity
// and acidity. Temperature and depth default to zero.
func DefaultConditions() Conditions {
	return Conditions{
		Salinity: DefaultSalinity,
		PH:       DefaultPH,
	}
}

// clampDepth returns a copy with negative depth clamped to the surface.
// Each evaluator applies this before touching any formula.
func (c Conditions) clampDepth() Conditions {
	if c.Depth < 0 {
		c.Depth = 0
	}
	return c
}
