// Package quiz defines the binary fixtures used by the reverse-engineering
// quiz and writes them to disk.
package quiz

import (
	"fmt"
	"strings"

	"github.com/TerranMechworks/mech3doc/pkg/encoding"
	"github.com/TerranMechworks/mech3doc/pkg/fixture"
)

// Marker separates the variable-length sections of quiz003.
var Marker = []byte{0xDE, 0xAD, 0xBE, 0xEF}

// Fixture is a single generated file.
//
// Build writes through the encoder's sticky error, so builders do not
// check each field; Bytes reports the first failure.
type Fixture struct {
	Name   string // File name, e.g. "quiz001.bin"
	Layout string // Struct-style format describing the whole file
	Build  func(e *fixture.Encoder)
}

// Bytes renders the fixture into memory.
func (f Fixture) Bytes() ([]byte, error) {
	e := fixture.NewEncoder()
	f.Build(e)
	if err := e.Err(); err != nil {
		return nil, fmt.Errorf("building %s: %w", f.Name, err)
	}
	return e.Bytes(), nil
}

// Size is the file size implied by Layout.
func (f Fixture) Size() (int, error) {
	n, err := fixture.Size(f.Layout)
	if err != nil {
		return 0, fmt.Errorf("layout of %s: %w", f.Name, err)
	}
	return n, nil
}

const (
	layout001 = "<10i"
	layout002 = "<iffiiffi"
	layout003 = "<32s12sI19s12s16s12s16s12sI20s"
	layout004 = "<f16si"
)

// Fixtures returns all quiz fixtures in generation order.
func Fixtures() []Fixture {
	return []Fixture{
		{Name: "quiz001.bin", Layout: layout001, Build: buildQuiz001},
		{Name: "quiz002.bin", Layout: layout002, Build: buildQuiz002},
		{Name: "quiz003.bin", Layout: layout003, Build: buildQuiz003},
		{Name: "quiz004.bin", Layout: layout004, Build: buildQuiz004},
	}
}

// Lookup finds a fixture by file name. The ".bin" suffix is optional.
func Lookup(name string) (Fixture, bool) {
	if !strings.HasSuffix(name, ".bin") {
		name += ".bin"
	}
	for _, f := range Fixtures() {
		if f.Name == name {
			return f, true
		}
	}
	return Fixture{}, false
}

// Ten int32s.
func buildQuiz001(e *fixture.Encoder) {
	e.Put(layout001, 111, 9999, 10, 2000, 10, -200, 10, 0, 1, 100000)
}

// Interleaved int32 and float32. The two values past the original
// seven-code format are typed by their literals.
func buildQuiz002(e *fixture.Encoder) {
	e.Put(layout002, 9999, 0.5, -0.5, 1, -1, 200, 200.0, 0)
}

// Fixed, length-prefixed and raw strings separated by markers.
func buildQuiz003(e *fixture.Encoder) {
	e.FixedString("Lorem Ipsum", 32)
	e.Repeat(Marker, 3)
	e.LengthPrefixed(encoding.MustLatin1("The quick brown fox"))
	e.Repeat(Marker, 3)
	e.FixedString("DEADBEEF", 16)
	e.Repeat(Marker, 3)
	e.Raw(encoding.MustLatin1("Hello world\x00Padx"))
	e.Repeat(Marker, 3)
	e.LengthPrefixed(encoding.MustLatin1("The quick brown fox\x00"))
}

func buildQuiz004(e *fixture.Encoder) {
	e.Put(layout004, 1.5, "You can do it", 8888)
}
