package fonts

import (
	"testing"

	"github.com/go-text/typesetting/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericFromID(t *testing.T) {
	want := []string{"serif", "sans-serif", "cursive", "fantasy", "monospace"}
	for id, keyword := range want {
		g, err := GenericFromID(int32(id))
		require.NoError(t, err)
		assert.Equal(t, keyword, g.String())
	}

	for _, id := range []int32{-1, 5, 100} {
		_, err := GenericFromID(id)
		assert.ErrorIs(t, err, ErrUnknownGeneric, "id %d", id)
	}
}

func TestStretchFromID(t *testing.T) {
	tests := []struct {
		id   int32
		want font.Stretch
	}{
		{0, font.StretchUltraCondensed},
		{1, font.StretchExtraCondensed},
		{2, font.StretchCondensed},
		{3, font.StretchSemiCondensed},
		{4, font.StretchNormal},
		{5, font.StretchSemiExpanded},
		{6, font.StretchExpanded},
		{7, font.StretchExtraExpanded},
		{8, font.StretchUltraExpanded},
	}
	for _, tt := range tests {
		s, err := StretchFromID(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.Value(), "id %d", tt.id)
	}

	for _, id := range []int32{-1, 9} {
		_, err := StretchFromID(id)
		assert.ErrorIs(t, err, ErrUnknownStretch)
	}
}

func TestStyleFromID(t *testing.T) {
	tests := []struct {
		id   int32
		name string
		want font.Style
	}{
		{0, "normal", font.StyleNormal},
		{1, "italic", font.StyleItalic},
		{2, "oblique", font.StyleItalic},
	}
	for _, tt := range tests {
		s, err := StyleFromID(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.name, s.String())
		assert.Equal(t, tt.want, s.Value())
	}

	for _, id := range []int32{-1, 3} {
		_, err := StyleFromID(id)
		assert.ErrorIs(t, err, ErrUnknownStyle)
	}
}

func TestWeightFromInt(t *testing.T) {
	for _, w := range []int32{1, 400, 700, 65535} {
		got, err := WeightFromInt(w)
		require.NoError(t, err)
		assert.Equal(t, Weight(w), got)
	}
	for _, w := range []int32{0, -5, 65536} {
		_, err := WeightFromInt(w)
		assert.ErrorIs(t, err, ErrInvalidWeight, "weight %d", w)
	}
}
