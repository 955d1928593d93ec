package propagation

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Loss holds four parallel views of one propagation-loss computation
// over a distance vector. All values represent loss, so linear values
// are greater than 1 and dB values greater than 0; invert them to get
// gains. Slices share the input's length and ordering.
type Loss struct {
	LinOneWay []float64 `json:"lin_one_way"`
	LinTwoWay []float64 `json:"lin_two_way"`
	DBOneWay  []float64 `json:"db_one_way"`
	DBTwoWay  []float64 `json:"db_two_way"`
}

// lossFromOneWayDB derives the remaining three views from the one-way
// dB vector, which it takes ownership of.
func lossFromOneWayDB(dbOneWay []float64) Loss {
	n := len(dbOneWay)
	out := Loss{
		LinOneWay: make([]float64, n),
		LinTwoWay: make([]float64, n),
		DBOneWay:  dbOneWay,
		DBTwoWay:  make([]float64, n),
	}

	copy(out.DBTwoWay, dbOneWay)
	floats.Scale(2, out.DBTwoWay)

	for i, db := range dbOneWay {
		out.LinOneWay[i] = math.Pow(10, db/10)
		out.LinTwoWay[i] = math.Pow(10, out.DBTwoWay[i]/10)
	}
	return out
}

// AbsorptionLoss computes the loss due to absorption over a vector of
// distances in meters, given an absorption coefficient alpha in dB/km.
// Distances are not clamped and may be zero, where the loss is exactly
// unity.
func AbsorptionLoss(d []float64, alpha float64) Loss {
	dbOneWay := make([]float64, len(d))
	copy(dbOneWay, d)
	floats.Scale(alpha/1000, dbOneWay)
	return lossFromOneWayDB(dbOneWay)
}

// AbsorptionLossAt is the scalar form of AbsorptionLoss.
func AbsorptionLossAt(d, alpha float64) (linOneWay, linTwoWay, dbOneWay, dbTwoWay float64) {
	dbOneWay = alpha / 1000 * d
	dbTwoWay = 2 * dbOneWay
	linOneWay = math.Pow(10, dbOneWay/10)
	linTwoWay = math.Pow(10, dbTwoWay/10)
	return linOneWay, linTwoWay, dbOneWay, dbTwoWay
}

// SpreadingLoss computes the loss due to spherical spreading over a
// vector of distances in meters, 20*log10(d) one-way. The approximation
// is undefined below 1 m, so shorter distances are rounded up to 1 m
// before the formula is applied.
func SpreadingLoss(d []float64) Loss {
	dbOneWay := make([]float64, len(d))
	for i, di := range d {
		dbOneWay[i] = 20 * math.Log10(math.Max(di, 1))
	}
	return lossFromOneWayDB(dbOneWay)
}

// SpreadingLossAt is the scalar form of SpreadingLoss.
func SpreadingLossAt(d float64) (linOneWay, linTwoWay, dbOneWay, dbTwoWay float64) {
	dbOneWay = 20 * math.Log10(math.Max(d, 1))
	dbTwoWay = 2 * dbOneWay
	linOneWay = math.Pow(10, dbOneWay/10)
	linTwoWay = math.Pow(10, dbTwoWay/10)
	return linOneWay, linTwoWay, dbOneWay, dbTwoWay
}

// TransmissionLoss computes the combined absorption and spherical
// spreading loss over a vector of distances in meters, given an
// absorption coefficient alpha in dB/km. One-way dB is the elementwise
// sum of the two components' one-way dB.
func TransmissionLoss(d []float64, alpha float64) Loss {
	absorption := AbsorptionLoss(d, alpha)
	spreading := SpreadingLoss(d)

	dbOneWay := make([]float64, len(d))
	floats.AddTo(dbOneWay, absorption.DBOneWay, spreading.DBOneWay)
	return lossFromOneWayDB(dbOneWay)
}

// TransmissionLossAt is the scalar form of TransmissionLoss.
func TransmissionLossAt(d, alpha float64) (linOneWay, linTwoWay, dbOneWay, dbTwoWay float64) {
	_, _, absorptionDB, _ := AbsorptionLossAt(d, alpha)
	_, _, spreadingDB, _ := SpreadingLossAt(d)

	dbOneWay = absorptionDB + spreadingDB
	dbTwoWay = 2 * dbOneWay
	linOneWay = math.Pow(10, dbOneWay/10)
	linTwoWay = math.Pow(10, dbTwoWay/10)
	return linOneWay, linTwoWay, dbOneWay, dbTwoWay
}
