package waveform

import (
	"errors"
	"fmt"
)

// Errors returned by SignalBatch construction and access.
var (
	ErrEmptyShape      = errors.New("waveform: shape must have at least one dimension")
	ErrInvalidShape    = errors.New("waveform: shape dimensions must be positive")
	ErrShapeMismatch   = errors.New("waveform: data length does not match shape")
	ErrRaggedRows      = errors.New("waveform: rows must all have the same length")
	ErrIndexDimensions = errors.New("waveform: index has wrong number of dimensions")
)

// SignalBatch is an N-dimensional complex array stored row-major. The
// last axis is fast time (the sample axis that pulse compression works
// across); every leading axis is an independent pulse, channel, or beam
// index. A 1-D batch is a single signal with no leading axes.
type SignalBatch struct {
	shape []int
	data  []complex128
}

// NewSignalBatch creates a zero-filled batch with the given shape.
func NewSignalBatch(shape ...int) (*SignalBatch, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}

	return &SignalBatch{
		shape: append([]int(nil), shape...),
		data:  make([]complex128, n),
	}, nil
}

// SignalBatchFromSlice wraps a 1-D signal as a batch without copying.
func SignalBatchFromSlice(data []complex128) (*SignalBatch, error) {
	if len(data) == 0 {
		return nil, ErrInvalidShape
	}

	return &SignalBatch{
		shape: []int{len(data)},
		data:  data,
	}, nil
}

// SignalBatchFromData wraps existing row-major data with the given
// shape without copying. The data length must equal the product of the
// shape's dimensions.
func SignalBatchFromData(shape []int, data []complex128) (*SignalBatch, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, ErrShapeMismatch
	}

	return &SignalBatch{
		shape: append([]int(nil), shape...),
		data:  data,
	}, nil
}

// SignalBatchFromRows copies a set of equal-length signals into a 2-D
// batch with one row per signal.
func SignalBatchFromRows(rows [][]complex128) (*SignalBatch, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidShape
	}

	width := len(rows[0])
	for _, row := range rows {
		if len(row) != width {
			return nil, ErrRaggedRows
		}
	}

	b, err := NewSignalBatch(len(rows), width)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		copy(b.Row(i), row)
	}
	return b, nil
}

func checkShape(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, ErrEmptyShape
	}

	n := 1
	for _, dim := range shape {
		if dim <= 0 {
			return 0, ErrInvalidShape
		}
		n *= dim
	}
	return n, nil
}

// Shape returns a copy of the batch's dimensions.
func (b *SignalBatch) Shape() []int {
	return append([]int(nil), b.shape...)
}

// NumDims returns the number of dimensions.
func (b *SignalBatch) NumDims() int {
	return len(b.shape)
}

// LastDim returns the length of the fast-time axis.
func (b *SignalBatch) LastDim() int {
	return b.shape[len(b.shape)-1]
}

// NumRows returns the number of independent fast-time rows, the product
// of every leading dimension. A 1-D batch has one row.
func (b *SignalBatch) NumRows() int {
	n := 1
	for _, dim := range b.shape[:len(b.shape)-1] {
		n *= dim
	}
	return n
}

// Row returns the i-th fast-time row as a view into the batch, with
// rows ordered by their leading index tuples (row-major).
func (b *SignalBatch) Row(i int) []complex128 {
	w := b.LastDim()
	return b.data[i*w : (i+1)*w]
}

// Data returns the underlying flat row-major storage.
func (b *SignalBatch) Data() []complex128 {
	return b.data
}

// At returns the sample at the given index tuple, one index per
// dimension.
func (b *SignalBatch) At(idx ...int) (complex128, error) {
	off, err := b.offset(idx)
	if err != nil {
		return 0, err
	}
	return b.data[off], nil
}

func (b *SignalBatch) offset(idx []int) (int, error) {
	if len(idx) != len(b.shape) {
		return 0, ErrIndexDimensions
	}

	off := 0
	for d, i := range idx {
		if i < 0 || i >= b.shape[d] {
			return 0, fmt.Errorf("waveform: index %d out of range for dimension %d of size %d", i, d, b.shape[d])
		}
		off = off*b.shape[d] + i
	}
	return off, nil
}
