// Package encoding converts between Go strings and the single-byte text
// stored in fixed-width fixture fields.
package encoding

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrUnencodable is returned when a string holds runes outside Latin-1.
var ErrUnencodable = errors.New("text not representable in Latin-1")

// Latin1 encodes s as ISO-8859-1. ASCII text is returned unchanged.
func Latin1(s string) ([]byte, error) {
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnencodable, s)
	}
	return out, nil
}

// MustLatin1 is like Latin1 but panics on error. Intended for literals.
func MustLatin1(s string) []byte {
	b, err := Latin1(s)
	if err != nil {
		panic(err)
	}
	return b
}

// FromLatin1 decodes ISO-8859-1 bytes to a UTF-8 string.
// Every byte value is valid Latin-1, so this never fails.
func FromLatin1(data []byte) string {
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(out)
}
