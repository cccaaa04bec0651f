// Package geometry holds the Rectangle value type.
//
// Rectangle is unrelated to the rest of the system; it exists as a small
// standalone demonstration of construction-time validation and restartable
// iteration over a value's dimensions.
package geometry

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// ErrNotInteger is returned when a rectangle dimension is not an integer.
var ErrNotInteger = errors.New("length and width must be integers")

// Rectangle is an immutable length/width pair.
type Rectangle struct {
	length int
	width  int
}

// New constructs a Rectangle from dynamically typed inputs.
//
// Both arguments must hold an integer value of any Go integer kind;
// anything else (floats, strings, bools, nil) fails with ErrNotInteger
// wrapped with the offending argument's name. Unsigned values that do not
// fit in int are rejected the same way.
func New(length, width any) (Rectangle, error) {
	l, err := toInt("length", length)
	if err != nil {
		return Rectangle{}, err
	}
	w, err := toInt("width", width)
	if err != nil {
		return Rectangle{}, err
	}
	return Rectangle{length: l, width: w}, nil
}

// Length returns the rectangle's length.
func (r Rectangle) Length() int {
	return r.length
}

// Width returns the rectangle's width.
func (r Rectangle) Width() int {
	return r.width
}

// Dimensions returns a sequence yielding exactly two single-key mappings:
// {"length": L} then {"width": W}, in that fixed order.
//
// Each call builds a fresh sequence, so iteration is restartable by
// ranging again. The rectangle itself is never mutated.
func (r Rectangle) Dimensions() iter.Seq[map[string]int] {
	return func(yield func(map[string]int) bool) {
		if !yield(map[string]int{"length": r.length}) {
			return
		}
		yield(map[string]int{"width": r.width})
	}
}

// toInt converts v to int, failing with ErrNotInteger for any
// non-integer kind.
func toInt(arg string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, fmt.Errorf("%s out of range: %w", arg, ErrNotInteger)
		}
		return int(n), nil
	case uint:
		if uint64(n) > math.MaxInt {
			return 0, fmt.Errorf("%s out of range: %w", arg, ErrNotInteger)
		}
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("%s out of range: %w", arg, ErrNotInteger)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s is %T: %w", arg, v, ErrNotInteger)
	}
}
