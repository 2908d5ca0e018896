package alias

import "github.com/jaevor/go-nanoid"

// CodeGenerator produces a new candidate code on each call.
type CodeGenerator func() string

const hexAlphabet = "0123456789abcdef"

// NewHexGenerator returns a generator producing fixed-length lowercase hex
// codes from a cryptographic randomness source. Construction fails only
// when the randomness source is unusable, which is a startup error rather
// than a per-request one.
func NewHexGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(hexAlphabet, length)
	if err != nil {
		return nil, err
	}

	return CodeGenerator(gen), nil
}
