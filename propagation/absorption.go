package propagation

import (
	"math"

	"github.com/RyanBlaney/sonardsp/logging"
)

// absorptionModel pairs one published absorption formula with its
// reliability predicate. Both receive the operating frequency in Hz and
// depth-clamped conditions; unit conversions happen inside each formula.
type absorptionModel struct {
	name  string
	eval  func(freq float64, c Conditions) float64
	valid func(freq float64, c Conditions) bool
}

// absorptionModels is the ensemble evaluated by Absorption.
var absorptionModels = []absorptionModel{
	{name: "fisher_simmons", eval: evalFisherSimmons, valid: validFisherSimmons},
	{name: "francois_garrison", eval: evalFrancoisGarrison, valid: validFrancoisGarrison},
	{name: "ainslie_mccolm", eval: evalAinslieMcColm, valid: validAinslieMcColm},
}

// FisherSimmons computes absorption in dB/km after Fisher and Simmons
// 1977. The formula is fit to Lyman and Fleming standard seawater, so it
// is reliable only at exactly S = 35 ppt and pH = 8; any other water
// flags the result invalid. There is deliberately no tolerance band.
// Frequency stays in Hz throughout; pressure is approximated as z/10.
func FisherSimmons(freq float64, c Conditions) (float64, bool) {
	c = c.clampDepth()
	return evalFisherSimmons(freq, c), validFisherSimmons(freq, c)
}

func validFisherSimmons(_ float64, c Conditions) bool {
	return c.Salinity == DefaultSalinity && c.PH == DefaultPH
}

func evalFisherSimmons(freq float64, c Conditions) float64 {
	T := c.Temperature
	tKel := T + celsiusToKelvin
	p := c.Depth / 10.0

	// Boric acid relaxation
	a := 1.03e-8 + 2.36e-10*T - 5.22e-12*T*T
	f := 1.32e3 * tKel * math.Exp(-1700/tKel)
	boric := (a * f * freq * freq) / (freq*freq + f*f)

	// MgSO4 relaxation
	a = 5.62e-8 + 7.52e-10*T
	pCorr := 1 - 10.3e-4*p + 3.7e-7*p*p
	f = 1.55e7 * tKel * math.Exp(-3052/tKel)
	mgso4 := (a * pCorr * f * freq * freq) / (freq*freq + f*f)

	// Pure water (Debye)
	a = (55.9 - 2.37*T + 4.77e-2*T*T - 3.48e-4*T*T*T) * 1e-15
	pCorr = 1 - 3.84e-4*p + 7.57e-8*p*p
	h2o := a * pCorr * freq * freq

	return (boric + mgso4 + h2o) * 8686
}

// FrancoisGarrison computes absorption in dB/km after Francois and
// Garrison 1982, estimated to be about 5% accurate. Reliability depends
// on the band: below 10 kHz the fit is always outside its limits; from
// 10 to 500 kHz the MgSO4 term dominates and the limits are -2 < T < 22,
// 30 < S < 35, z < 3500; above 500 kHz the pure water term dominates and
// the limits are 0 < T < 30, 0 < S < 40, z < 10000. The formula works in
// kHz internally; the input stays in Hz.
func FrancoisGarrison(freq float64, c Conditions) (float64, bool) {
	c = c.clampDepth()
	return evalFrancoisGarrison(freq, c), validFrancoisGarrison(freq, c)
}

func validFrancoisGarrison(freq float64, c Conditions) bool {
	switch {
	case freq < 10e3:
		return false
	case freq <= 500e3:
		return c.Temperature >= -2 && c.Temperature <= 22 &&
			c.Salinity >= 30 && c.Salinity <= 35 &&
			c.Depth <= 3500
	default:
		return c.Temperature >= 0 && c.Temperature <= 30 &&
			c.Salinity >= 0 && c.Salinity <= 40 &&
			c.Depth <= 10e3
	}
}

func evalFrancoisGarrison(freq float64, c Conditions) float64 {
	fkhz := freq / 1000
	T := c.Temperature
	S := c.Salinity
	z := c.Depth
	ph := c.PH
	tKel := T + celsiusToKelvin

	// Sound speed per Francois and Garrison
	cs := 1412 + 3.21*T + 1.19*S + 0.0167*z

	// Boric acid contribution
	a := (8.86 / cs) * math.Pow(10, 0.78*ph-5)
	f := 2.8 * math.Sqrt(S/35) * math.Pow(10, 4-1245/tKel)
	boric := (a * f * fkhz * fkhz) / (fkhz*fkhz + f*f)

	// MgSO4 contribution
	a = 21.44 * (S / cs) * (1 + 0.025*T)
	pCorr := 1 - 1.37e-4*z + 6.2e-9*z*z
	f = (8.17 * math.Pow(10, 8-1990/tKel)) / (1 + 0.0018*(S-35))
	mgso4 := (a * pCorr * f * fkhz * fkhz) / (fkhz*fkhz + f*f)

	// Pure water contribution, separate fits above and below 20 °C
	if T <= 20 {
		a = 4.937e-4 - 2.59e-5*T + 9.11e-7*T*T - 1.5e-8*T*T*T
	} else {
		a = 3.964e-4 - 1.146e-5*T + 1.45e-7*T*T - 6.5e-10*T*T*T
	}
	pCorr = 1 - 3.83e-5*z + 4.9e-10*z*z
	h2o := a * pCorr * fkhz * fkhz

	return boric + mgso4 + h2o
}

// AinslieMcColm computes absorption in dB/km after Ainslie and McColm
// 1998, a simplification of Francois and Garrison estimated to be about
// 10% accurate between 100 Hz and 1 MHz. Inside that band the limits are
// -6 < T < 35, 5 < S < 50, 7.7 < pH < 8.3, z < 7000; outside the band
// the result is always flagged invalid. The formula works in kHz and km
// internally; inputs stay SI.
func AinslieMcColm(freq float64, c Conditions) (float64, bool) {
	c = c.clampDepth()
	return evalAinslieMcColm(freq, c), validAinslieMcColm(freq, c)
}

func validAinslieMcColm(freq float64, c Conditions) bool {
	if freq < 100 || freq > 1e6 {
		return false
	}
	return c.Temperature >= -6 && c.Temperature <= 35 &&
		c.Salinity >= 5 && c.Salinity <= 50 &&
		c.PH >= 7.7 && c.PH <= 8.3 &&
		c.Depth <= 7000
}

func evalAinslieMcColm(freq float64, c Conditions) float64 {
	fkhz := freq / 1000
	T := c.Temperature
	S := c.Salinity
	zkm := c.Depth / 1000
	ph := c.PH

	// Boric acid contribution
	a := 0.106 * math.Exp((ph-8)/0.56)
	f := 0.78 * math.Sqrt(S/35) * math.Exp(T/26)
	boric := (a * f * fkhz * fkhz) / (fkhz*fkhz + f*f)

	// MgSO4 contribution
	a = 0.52 * (S / 35) * (1 + T/43)
	pCorr := math.Exp(-zkm / 6)
	f = 42 * math.Exp(T/17)
	mgso4 := (a * pCorr * f * fkhz * fkhz) / (fkhz*fkhz + f*f)

	// Pure water contribution
	h2o := 0.00049 * math.Exp(-(T/27 + zkm/17)) * fkhz * fkhz

	return boric + mgso4 + h2o
}

// Absorption computes the absorption coefficient in dB/km at the given
// frequency in Hz by evaluating every model in the group and averaging
// the ones whose reliability limits contain the inputs. If none contain
// them, the mean of all models is still returned with AllInvalid set and
// an escalated diagnostic is logged.
func Absorption(freq float64, c Conditions) EnsembleResult {
	c = c.clampDepth()

	results := make([]ModelResult, 0, len(absorptionModels))
	for _, m := range absorptionModels {
		r := ModelResult{
			Name:  m.name,
			Value: m.eval(freq, c),
			Valid: m.valid(freq, c),
		}
		if !r.Valid {
			warnOutOfDomain(m.name, logging.Fields{
				"frequency":   freq,
				"temperature": c.Temperature,
				"depth":       c.Depth,
				"salinity":    c.Salinity,
				"ph":          c.PH,
			})
		}
		results = append(results, r)
	}

	return aggregate("absorption", results)
}
