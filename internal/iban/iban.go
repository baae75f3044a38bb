// Package iban generates the placeholder IBANs assigned to new accounts. The
// check digits are fixed; no checksum is computed.
package iban

import (
	"math/rand"
	"strings"
)

const (
	// DefaultPrefix is the country code, placeholder check digits, bank code and branch.
	DefaultPrefix = "RO00GLBK0001"
	// AccountDigits is the number of random digits following the prefix.
	AccountDigits = 12
)

// DigitSource yields random integers in [0, n).
type DigitSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.Intn(n) }

type Generator struct {
	prefix string
	source DigitSource
}

type Option func(*Generator)

// WithSource replaces the default math/rand source, mostly for tests.
func WithSource(src DigitSource) Option {
	return func(g *Generator) {
		g.source = src
	}
}

func NewGenerator(prefix string, opts ...Option) *Generator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	g := &Generator{prefix: prefix, source: globalSource{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Prefix() string {
	return g.prefix
}

// Generate returns prefix followed by AccountDigits random digits.
func (g *Generator) Generate() string {
	var b strings.Builder
	b.Grow(len(g.prefix) + AccountDigits)
	b.WriteString(g.prefix)
	for i := 0; i < AccountDigits; i++ {
		b.WriteByte(byte('0' + g.source.IntN(10)))
	}
	return b.String()
}

// GenerateUnique draws until exists reports false. It does not bound the
// number of attempts; with 10^12 candidates a collision loop is not expected.
func (g *Generator) GenerateUnique(exists func(string) bool) string {
	for {
		candidate := g.Generate()
		if !exists(candidate) {
			return candidate
		}
	}
}
