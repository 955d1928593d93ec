package propagation

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonardsp/logging"
)

func TestMain(m *testing.M) {
	// Keep out-of-domain diagnostics off the test output; tests that
	// assert on them install a capture logger themselves.
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	os.Exit(m.Run())
}

func TestAbsorptionLossAtZeroDistance(t *testing.T) {
	for _, alpha := range []float64{0, 1, 30, 1e3} {
		lin1, lin2, db1, db2 := AbsorptionLossAt(0, alpha)
		assert.Equal(t, 1.0, lin1)
		assert.Equal(t, 1.0, lin2)
		assert.Equal(t, 0.0, db1)
		assert.Equal(t, 0.0, db2)
	}
}

func TestSpreadingLossSubMeterClamp(t *testing.T) {
	lin1Half, lin2Half, db1Half, db2Half := SpreadingLossAt(0.5)
	lin1One, lin2One, db1One, db2One := SpreadingLossAt(1)

	assert.Equal(t, lin1One, lin1Half)
	assert.Equal(t, lin2One, lin2Half)
	assert.Equal(t, db1One, db1Half)
	assert.Equal(t, db2One, db2Half)

	// At exactly 1 m the spreading loss is unity.
	assert.Equal(t, 0.0, db1One)
	assert.Equal(t, 1.0, lin1One)
}

func TestSpreadingLossKnownValues(t *testing.T) {
	_, _, db1, db2 := SpreadingLossAt(10)
	assert.InDelta(t, 20.0, db1, 1e-12)
	assert.InDelta(t, 40.0, db2, 1e-12)

	_, _, db1, _ = SpreadingLossAt(1000)
	assert.InDelta(t, 60.0, db1, 1e-12)
}

func TestAbsorptionLossKnownValues(t *testing.T) {
	// 30 dB/km over 2 km is 60 dB one way.
	lin1, lin2, db1, db2 := AbsorptionLossAt(2000, 30)
	assert.InDelta(t, 60.0, db1, 1e-12)
	assert.InDelta(t, 120.0, db2, 1e-12)
	assert.InDelta(t, 1e6, lin1, 1e-3)
	assert.InDelta(t, 1e12, lin2, 1e3)
}

func TestTransmissionLossIsComponentSum(t *testing.T) {
	d := []float64{0, 0.5, 1, 10, 250, 1000, 12345}
	const alpha = 30.0

	tl := TransmissionLoss(d, alpha)
	al := AbsorptionLoss(d, alpha)
	sl := SpreadingLoss(d)

	require.Len(t, tl.DBOneWay, len(d))
	for i := range d {
		assert.InDelta(t, al.DBOneWay[i]+sl.DBOneWay[i], tl.DBOneWay[i], 1e-12)
		assert.InDelta(t, 2*tl.DBOneWay[i], tl.DBTwoWay[i], 1e-12)
	}
}

func TestLossVectorMatchesScalar(t *testing.T) {
	d := []float64{0, 0.5, 1, 10, 250, 1000}
	const alpha = 12.5

	al := AbsorptionLoss(d, alpha)
	sl := SpreadingLoss(d)
	tl := TransmissionLoss(d, alpha)

	for i, di := range d {
		lin1, lin2, db1, db2 := AbsorptionLossAt(di, alpha)
		assert.InDelta(t, lin1, al.LinOneWay[i], 1e-12)
		assert.InDelta(t, lin2, al.LinTwoWay[i], 1e-12)
		assert.InDelta(t, db1, al.DBOneWay[i], 1e-12)
		assert.InDelta(t, db2, al.DBTwoWay[i], 1e-12)

		lin1, lin2, db1, db2 = SpreadingLossAt(di)
		assert.InDelta(t, lin1, sl.LinOneWay[i], 1e-12)
		assert.InDelta(t, lin2, sl.LinTwoWay[i], 1e-12)
		assert.InDelta(t, db1, sl.DBOneWay[i], 1e-12)
		assert.InDelta(t, db2, sl.DBTwoWay[i], 1e-12)

		lin1, lin2, db1, db2 = TransmissionLossAt(di, alpha)
		assert.InDelta(t, lin1, tl.LinOneWay[i], 1e-9)
		assert.InDelta(t, lin2, tl.LinTwoWay[i], 1e-9)
		assert.InDelta(t, db1, tl.DBOneWay[i], 1e-12)
		assert.InDelta(t, db2, tl.DBTwoWay[i], 1e-12)
	}
}

func TestLossValuesRepresentLoss(t *testing.T) {
	d := []float64{10, 100, 1000}
	tl := TransmissionLoss(d, 5)

	// Loss convention: linear > 1, dB > 0, caller inverts for gain.
	for i := range d {
		assert.Greater(t, tl.LinOneWay[i], 1.0)
		assert.Greater(t, tl.LinTwoWay[i], tl.LinOneWay[i])
		assert.Greater(t, tl.DBOneWay[i], 0.0)
	}
}
