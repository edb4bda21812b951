// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package strindex

import (
	"errors"
	"fmt"
)

// Errors reported by construction and mapping operations. Searches do
// not fail: a pattern with bytes outside the alphabet simply has no
// occurrences.
var (
	ErrSize    = errors.New("strindex: destination has wrong length")
	ErrMapping = errors.New("strindex: byte not in alphabet")
)

// Alphabet is a bijective remapping of the bytes occurring in a text to
// dense codes 1..σ-1, in ascending byte order. Code 0 is reserved for
// the sentinel that terminates every coded text and sorts before every
// real symbol. An alphabet is immutable once built and is shared by
// reference by the indexes constructed over its text.
type Alphabet struct {
	size   int32
	mapTab [256]byte
	revTab [256]byte
}

// NewAlphabet builds the alphabet of x. The zero byte is the sentinel
// and must not occur inside a text.
func NewAlphabet(x []byte) (*Alphabet, error) {
	a := &Alphabet{}
	for _, b := range x {
		if b == 0 {
			return nil, fmt.Errorf("%w: sentinel byte in text", ErrMapping)
		}
		a.mapTab[b] = 1
	}
	a.size = 1 // code 0 is the sentinel
	for b := 1; b < 256; b++ {
		if a.mapTab[b] != 0 {
			a.mapTab[b] = byte(a.size)
			a.revTab[a.size] = byte(b)
			a.size++
		}
	}
	return a, nil
}

// Size returns σ: the number of distinct symbols plus one for the
// sentinel.
func (a *Alphabet) Size() int32 { return a.size }

// Decode returns the byte a code was assigned to.
func (a *Alphabet) Decode(c int32) byte { return a.revTab[c] }

// MapToBytes writes the coded form of src into dst. The slices must
// have the same length.
func (a *Alphabet) MapToBytes(dst, src []byte) error {
	if len(dst) != len(src) {
		return ErrSize
	}
	for i, b := range src {
		m := a.mapTab[b]
		if m == 0 && b != 0 {
			return fmt.Errorf("%w: %q", ErrMapping, b)
		}
		dst[i] = m
	}
	return nil
}

// MapToInts writes the coded form of src into dst and terminates it
// with the sentinel, so dst must hold len(src)+1 entries.
func (a *Alphabet) MapToInts(dst []int32, src []byte) error {
	if len(dst) != len(src)+1 {
		return ErrSize
	}
	for i, b := range src {
		m := a.mapTab[b]
		if m == 0 && b != 0 {
			return fmt.Errorf("%w: %q", ErrMapping, b)
		}
		dst[i] = int32(m)
	}
	dst[len(src)] = 0
	return nil
}

// RevMap writes the bytes whose codes are in src into dst, inverting
// MapToBytes. Code 0 maps back to the zero byte.
func (a *Alphabet) RevMap(dst, src []byte) error {
	if len(dst) != len(src) {
		return ErrSize
	}
	for i, c := range src {
		m := a.revTab[c]
		if m == 0 && c != 0 {
			return fmt.Errorf("%w: code %d", ErrMapping, c)
		}
		dst[i] = m
	}
	return nil
}

// Code maps a pattern to codes without appending a sentinel. A byte
// that does not occur in the indexed text yields ErrMapping.
func (a *Alphabet) Code(p []byte) ([]int32, error) {
	u := make([]int32, len(p))
	for i, b := range p {
		m := a.mapTab[b]
		if m == 0 {
			return nil, fmt.Errorf("%w: %q", ErrMapping, b)
		}
		u[i] = int32(m)
	}
	return u, nil
}

// CodeText builds the alphabet of x and the sentinel-terminated coded
// text in one step.
func CodeText(x []byte) (*Alphabet, []int32, error) {
	alpha, err := NewAlphabet(x)
	if err != nil {
		return nil, nil, err
	}
	u := make([]int32, len(x)+1)
	if err := alpha.MapToInts(u, x); err != nil {
		return nil, nil, err
	}
	return alpha, u, nil
}
