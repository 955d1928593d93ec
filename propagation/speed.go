package propagation

import (
	"github.com/RyanBlaney/sonardsp/logging"
)

// speedModel pairs one published speed-of-sound formula with its
// reliability predicate. Both receive depth-clamped conditions.
type speedModel struct {
	name  string
	eval  func(c Conditions) float64
	valid func(c Conditions) bool
}

// speedModels is the ensemble evaluated by SpeedOfSound. Order does not
// matter; the aggregator is a pure mean.
var speedModels = []speedModel{
	{name: "mackenzie", eval: evalMackenzie, valid: validMackenzie},
	{name: "coppens", eval: evalCoppens, valid: validCoppens},
}

// Mackenzie computes the speed of sound in seawater after Mackenzie 1981.
// Reliable for 2 < T < 30 °C, 25 < S < 40 ppt, z < 8000 m; the returned
// flag reports whether the inputs were inside those limits.
// http://resource.npl.co.uk/acoustics/techguides/soundseawater/underlying-phys.html
func Mackenzie(c Conditions) (float64, bool) {
	c = c.clampDepth()
	return evalMackenzie(c), validMackenzie(c)
}

func validMackenzie(c Conditions) bool {
	return c.Temperature >= 2 && c.Temperature <= 30 &&
		c.Salinity >= 25 && c.Salinity <= 40 &&
		c.Depth <= 8e3
}

func evalMackenzie(c Conditions) float64 {
	T := c.Temperature
	S := c.Salinity
	z := c.Depth

	return 1448.96 + 4.591*T - 5.304e-2*T*T + 2.374e-4*T*T*T +
		1.340*(S-35) + 1.630e-2*z + 1.675e-7*z*z -
		1.025e-2*T*(S-35) - 7.139e-13*T*z*z*z
}

// Coppens computes the speed of sound in seawater after Coppens 1981.
// Reliable for 0 < T < 35 °C, 0 < S < 45 ppt, z < 4000 m. The polynomial
// works in tenths of a degree and kilometers internally; inputs stay SI.
func Coppens(c Conditions) (float64, bool) {
	c = c.clampDepth()
	return evalCoppens(c), validCoppens(c)
}

func validCoppens(c Conditions) bool {
	return c.Temperature >= 0 && c.Temperature <= 35 &&
		c.Salinity >= 0 && c.Salinity <= 45 &&
		c.Depth <= 4e3
}

func evalCoppens(c Conditions) float64 {
	t := c.Temperature / 10
	S := c.Salinity
	z := c.Depth / 1000

	surface := 1449.05 + 45.7*t - 5.21*t*t + 0.23*t*t*t +
		(1.333-0.126*t+0.009*t*t)*(S-35)
	return surface + (16.23+0.253*t)*z + (0.213-0.1*t)*z*z +
		(0.016+0.0002*(S-35))*(S-35)*t*z
}

// SpeedOfSound computes the speed of sound in seawater in m/s by
// evaluating every model in the group and averaging the ones whose
// reliability limits contain the inputs. If none contain them, the mean
// of all models is still returned with AllInvalid set and an escalated
// diagnostic is logged.
func SpeedOfSound(c Conditions) EnsembleResult {
	c = c.clampDepth()

	results := make([]ModelResult, 0, len(speedModels))
	for _, m := range speedModels {
		r := ModelResult{
			Name:  m.name,
			Value: m.eval(c),
			Valid: m.valid(c),
		}
		if !r.Valid {
			warnOutOfDomain(m.name, logging.Fields{
				"temperature": c.Temperature,
				"depth":       c.Depth,
				"salinity":    c.Salinity,
			})
		}
		results = append(results, r)
	}

	return aggregate("speed of sound", results)
}
