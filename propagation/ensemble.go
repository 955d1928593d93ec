package propagation

import (
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonardsp/logging"
)

// ModelResult is the outcome of evaluating one empirical model: its
// value in the model's output unit and whether the inputs fell inside
// the model's stated reliability limits.
type ModelResult struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// EnsembleResult combines the results of every model in a group into a
// single value. When at least one model was valid, Value is the mean of
// the valid results. When none were, Value falls back to the mean of
// the invalid results and AllInvalid is set; the number is still usable,
// just low-confidence.
type EnsembleResult struct {
	Value      float64       `json:"value"`
	AllInvalid bool          `json:"all_invalid"`
	Models     []ModelResult `json:"models"`
}

// aggregate partitions results by their validity flag and averages the
// preferred partition. It is order-independent and does not care how
// many models the group contains, so new models only need to supply a
// (value, valid) pair.
func aggregate(quantity string, results []ModelResult) EnsembleResult {
	valid := make([]float64, 0, len(results))
	invalid := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Valid {
			valid = append(valid, r.Value)
		} else {
			invalid = append(invalid, r.Value)
		}
	}

	out := EnsembleResult{Models: results}
	if len(valid) > 0 {
		out.Value = stat.Mean(valid, nil)
		return out
	}

	out.Value = stat.Mean(invalid, nil)
	out.AllInvalid = true
	logging.Warn("inputs are outside reliability limits for all models", logging.Fields{
		"quantity": quantity,
		"models":   len(results),
	})
	return out
}

// warnOutOfDomain emits the per-model out-of-domain diagnostic.
func warnOutOfDomain(model string, fields logging.Fields) {
	merged := logging.Fields{"model": model}
	for k, v := range fields {
		merged[k] = v
	}
	logging.Warn("inputs are outside reliability limits", merged)
}
