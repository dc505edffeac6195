// Package fixture builds small binary files field by field.
//
// An Encoder accumulates little-endian fields in memory. The first error
// is sticky: once a field fails, later writes are ignored and Err reports
// the failure. This keeps fixture definitions free of per-field checks.
package fixture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/TerranMechworks/mech3doc/pkg/encoding"
)

// Encoder errors.
var (
	ErrOutOfRange = errors.New("value out of range")
	ErrNegative   = errors.New("negative width")
)

// Encoder accumulates encoded fields.
type Encoder struct {
	buf   []byte
	order binary.AppendByteOrder
	err   error
}

// NewEncoder returns an empty little-endian encoder.
func NewEncoder() *Encoder {
	return &Encoder{order: binary.LittleEndian}
}

// Bytes returns the encoded data. The slice aliases the encoder's buffer.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Err returns the first error encountered, if any.
func (e *Encoder) Err() error {
	return e.err
}

func (e *Encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Int32 appends a signed 32-bit integer.
func (e *Encoder) Int32(v int32) {
	if e.err != nil {
		return
	}
	e.buf = e.order.AppendUint32(e.buf, uint32(v))
}

// Uint32 appends an unsigned 32-bit integer.
func (e *Encoder) Uint32(v uint32) {
	if e.err != nil {
		return
	}
	e.buf = e.order.AppendUint32(e.buf, v)
}

// Float32 appends an IEEE 754 single-precision float.
func (e *Encoder) Float32(v float32) {
	if e.err != nil {
		return
	}
	e.buf = e.order.AppendUint32(e.buf, math.Float32bits(v))
}

// Raw appends b verbatim.
func (e *Encoder) Raw(b []byte) {
	if e.err != nil {
		return
	}
	e.buf = append(e.buf, b...)
}

// Repeat appends b n times.
func (e *Encoder) Repeat(b []byte, n int) {
	if n < 0 {
		e.fail(fmt.Errorf("%w: repeat count %d", ErrNegative, n))
		return
	}
	for i := 0; i < n; i++ {
		e.Raw(b)
	}
}

// FixedBytes appends b into a field of exactly width bytes.
// Shorter input is null-padded, longer input is truncated.
func (e *Encoder) FixedBytes(b []byte, width int) {
	if width < 0 {
		e.fail(fmt.Errorf("%w: field width %d", ErrNegative, width))
		return
	}
	if e.err != nil {
		return
	}
	e.buf = appendFixed(e.buf, b, width)
}

// FixedString appends s as Latin-1 text in a null-padded field.
func (e *Encoder) FixedString(s string, width int) {
	b, err := encoding.Latin1(s)
	if err != nil {
		e.fail(err)
		return
	}
	e.FixedBytes(b, width)
}

// LengthPrefixed appends a uint32 byte count followed by b.
func (e *Encoder) LengthPrefixed(b []byte) {
	if uint64(len(b)) > math.MaxUint32 {
		e.fail(fmt.Errorf("%w: %d bytes exceed uint32 length prefix", ErrOutOfRange, len(b)))
		return
	}
	e.Uint32(uint32(len(b)))
	e.Raw(b)
}

// Pack appends values laid out by a struct-style format string.
// See the package-level Pack for the format syntax.
func (e *Encoder) Pack(format string, values ...any) error {
	if e.err != nil {
		return e.err
	}
	out, err := Pack(format, values...)
	if err != nil {
		e.fail(err)
		return err
	}
	e.buf = append(e.buf, out...)
	return nil
}

// Put is Pack for builders: a failure is kept as the sticky error and
// reported by Err.
func (e *Encoder) Put(format string, values ...any) {
	_ = e.Pack(format, values...)
}

func appendFixed(dst, b []byte, width int) []byte {
	if len(b) > width {
		b = b[:width]
	}
	dst = append(dst, b...)
	for i := len(b); i < width; i++ {
		dst = append(dst, 0)
	}
	return dst
}
