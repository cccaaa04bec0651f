package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Integers(t *testing.T) {
	r, err := New(3, 4)
	require.NoError(t, err)

	assert.Equal(t, 3, r.Length())
	assert.Equal(t, 4, r.Width())
}

func TestNew_IntegerKinds(t *testing.T) {
	cases := []struct {
		name   string
		length any
		width  any
	}{
		{"int64", int64(3), int64(4)},
		{"int8", int8(3), int8(4)},
		{"uint32", uint32(3), uint32(4)},
		{"mixed", int16(3), uint8(4)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := New(tc.length, tc.width)
			require.NoError(t, err)
			assert.Equal(t, 3, r.Length())
			assert.Equal(t, 4, r.Width())
		})
	}
}

func TestNew_RejectsNonIntegers(t *testing.T) {
	// Both argument positions must reject non-integer values.
	_, err := New(3.5, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInteger)
	assert.Contains(t, err.Error(), "length")

	_, err = New(3, "four")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInteger)
	assert.Contains(t, err.Error(), "width")

	_, err = New(nil, 4)
	assert.ErrorIs(t, err, ErrNotInteger)

	_, err = New(3, true)
	assert.ErrorIs(t, err, ErrNotInteger)
}

func TestDimensions_Order(t *testing.T) {
	r, err := New(3, 4)
	require.NoError(t, err)

	var got []map[string]int
	for m := range r.Dimensions() {
		got = append(got, m)
	}

	assert.Equal(t, []map[string]int{
		{"length": 3},
		{"width": 4},
	}, got)
}

func TestDimensions_Restartable(t *testing.T) {
	r, err := New(3, 4)
	require.NoError(t, err)

	collect := func() []map[string]int {
		var out []map[string]int
		for m := range r.Dimensions() {
			out = append(out, m)
		}
		return out
	}

	first := collect()
	second := collect()

	// A second independent iteration yields the same sequence.
	assert.Equal(t, first, second)
	assert.Len(t, second, 2)
}

func TestDimensions_EarlyBreak(t *testing.T) {
	r, err := New(3, 4)
	require.NoError(t, err)

	for m := range r.Dimensions() {
		assert.Equal(t, map[string]int{"length": 3}, m)
		break
	}

	// Breaking one iteration does not consume state; a fresh range
	// starts over at length.
	for m := range r.Dimensions() {
		assert.Equal(t, map[string]int{"length": 3}, m)
		break
	}
}
