package fixture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/TerranMechworks/mech3doc/pkg/encoding"
)

// Format errors.
var (
	ErrBadFormat = errors.New("bad pack format")
	ErrArgCount  = errors.New("wrong number of values for format")
	ErrArgType   = errors.New("value type does not match format code")
)

type codeKind uint8

const (
	kindInt codeKind = iota
	kindFloat
	kindString
	kindPad
)

type code struct {
	kind codeKind
	size int
	lo   int64
	hi   uint64
}

var codes = map[byte]code{
	'x': {kind: kindPad, size: 1},
	's': {kind: kindString, size: 1},
	'b': {kind: kindInt, size: 1, lo: math.MinInt8, hi: math.MaxInt8},
	'B': {kind: kindInt, size: 1, lo: 0, hi: math.MaxUint8},
	'h': {kind: kindInt, size: 2, lo: math.MinInt16, hi: math.MaxInt16},
	'H': {kind: kindInt, size: 2, lo: 0, hi: math.MaxUint16},
	'i': {kind: kindInt, size: 4, lo: math.MinInt32, hi: math.MaxInt32},
	'I': {kind: kindInt, size: 4, lo: 0, hi: math.MaxUint32},
	'q': {kind: kindInt, size: 8, lo: math.MinInt64, hi: math.MaxInt64},
	'Q': {kind: kindInt, size: 8, lo: 0, hi: math.MaxUint64},
	'f': {kind: kindFloat, size: 4},
	'd': {kind: kindFloat, size: 8},
}

// field is one format code with its repeat count.
type field struct {
	c     byte
	count int
}

// values returns how many arguments the field consumes.
func (f field) values() int {
	switch codes[f.c].kind {
	case kindPad:
		return 0
	case kindString:
		return 1
	default:
		return f.count
	}
}

func (f field) bytes() int {
	return codes[f.c].size * f.count
}

// parseFormat splits a format string into its byte order and fields.
func parseFormat(format string) (binary.AppendByteOrder, []field, error) {
	var order binary.AppendByteOrder = binary.LittleEndian
	s := format
	if len(s) > 0 {
		switch s[0] {
		case '<', '=':
			s = s[1:]
		case '@':
			return nil, nil, fmt.Errorf("%w: %q: native alignment is not supported", ErrBadFormat, format)
		case '>', '!':
			order = binary.BigEndian
			s = s[1:]
		}
	}

	var fields []field
	for i := 0; i < len(s); {
		if s[i] == ' ' || s[i] == '\t' {
			i++
			continue
		}
		count, explicit := 0, false
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			count = count*10 + int(s[i]-'0')
			explicit = true
			i++
		}
		if i >= len(s) {
			return nil, nil, fmt.Errorf("%w: %q: repeat count without code", ErrBadFormat, format)
		}
		c := s[i]
		if _, ok := codes[c]; !ok {
			return nil, nil, fmt.Errorf("%w: %q: unknown code %q", ErrBadFormat, format, c)
		}
		if !explicit {
			count = 1
		}
		fields = append(fields, field{c: c, count: count})
		i++
	}
	return order, fields, nil
}

// Size returns the number of bytes Pack produces for format.
func Size(format string) (int, error) {
	_, fields, err := parseFormat(format)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, f := range fields {
		n += f.bytes()
	}
	return n, nil
}

// Pack lays out values according to format, in the style of a struct
// format string.
//
// The optional first character selects byte order: '<' or '=' for
// little-endian (the default), '>' or '!' for big-endian. Fields are never
// aligned, so the native '@' prefix is rejected. Each code may carry a
// decimal repeat count:
//
//	x     pad byte, consumes no value
//	b B   int8 / uint8
//	h H   int16 / uint16
//	i I   int32 / uint32
//	q Q   int64 / uint64
//	f d   float32 / float64
//	s     fixed-width string; the count is the width and one value
//	      ([]byte, or a string encoded as Latin-1) fills it,
//	      null-padded or truncated
//
// The number of values must match the format exactly.
func Pack(format string, values ...any) ([]byte, error) {
	order, fields, err := parseFormat(format)
	if err != nil {
		return nil, err
	}

	want := 0
	size := 0
	for _, f := range fields {
		want += f.values()
		size += f.bytes()
	}
	if want != len(values) {
		return nil, fmt.Errorf("%w: %q expects %d, got %d", ErrArgCount, format, want, len(values))
	}

	out := make([]byte, 0, size)
	next := 0
	for _, f := range fields {
		c := codes[f.c]
		switch c.kind {
		case kindPad:
			out = append(out, make([]byte, f.count)...)
		case kindString:
			b, err := asBytes(values[next])
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", next, err)
			}
			out = appendFixed(out, b, f.count)
			next++
		case kindInt:
			for j := 0; j < f.count; j++ {
				bits, err := asInteger(values[next], c)
				if err != nil {
					return nil, fmt.Errorf("value %d (%c): %w", next, f.c, err)
				}
				out = appendInt(out, order, bits, c.size)
				next++
			}
		case kindFloat:
			for j := 0; j < f.count; j++ {
				x, err := asFloat(values[next])
				if err != nil {
					return nil, fmt.Errorf("value %d (%c): %w", next, f.c, err)
				}
				if c.size == 4 {
					narrow := float32(x)
					if math.IsInf(float64(narrow), 0) && !math.IsInf(x, 0) {
						return nil, fmt.Errorf("value %d (%c): %w: %g", next, f.c, ErrOutOfRange, x)
					}
					out = order.AppendUint32(out, math.Float32bits(narrow))
				} else {
					out = order.AppendUint64(out, math.Float64bits(x))
				}
				next++
			}
		}
	}
	return out, nil
}

func appendInt(dst []byte, order binary.AppendByteOrder, bits uint64, size int) []byte {
	switch size {
	case 1:
		return append(dst, byte(bits))
	case 2:
		return order.AppendUint16(dst, uint16(bits))
	case 4:
		return order.AppendUint32(dst, uint32(bits))
	default:
		return order.AppendUint64(dst, bits)
	}
}

// asInteger range-checks v for c and returns its two's complement bits.
func asInteger(v any, c code) (uint64, error) {
	var (
		n      int64
		u      uint64
		signed bool
	)
	switch x := v.(type) {
	case int:
		n, signed = int64(x), true
	case int8:
		n, signed = int64(x), true
	case int16:
		n, signed = int64(x), true
	case int32:
		n, signed = int64(x), true
	case int64:
		n, signed = x, true
	case uint:
		u = uint64(x)
	case uint8:
		u = uint64(x)
	case uint16:
		u = uint64(x)
	case uint32:
		u = uint64(x)
	case uint64:
		u = x
	default:
		return 0, fmt.Errorf("%w: %T", ErrArgType, v)
	}

	if signed {
		if n < c.lo || (n > 0 && uint64(n) > c.hi) {
			return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
		}
		return uint64(n), nil
	}
	if u > c.hi {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, u)
	}
	return u, nil
}

func asFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	}
	return 0, fmt.Errorf("%w: %T", ErrArgType, v)
}

func asBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return encoding.Latin1(x)
	}
	return nil, fmt.Errorf("%w: %T", ErrArgType, v)
}
