package hostabi

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		units String
		want  string
	}{
		{"ascii", String{'A', 'r', 'i', 'a', 'l'}, "Arial"},
		{"bmp", String{0x00e9, 0x4e2d}, "é中"},
		{"surrogate pair", String{0xd83d, 0xde00}, "😀"},
		{"lone surrogate", String{'a', 0xd800, 'b'}, "a�b"},
		{"empty", String{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.units.Decode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, s := range []string{"", "Liberation Sans", "𝔉𝔬𝔫𝔱 😀 テキスト"} {
		units := EncodeString(s)
		assert.Equal(t, utf16.Encode([]rune(s)), []uint16(units), s)

		back, err := units.Decode()
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestNilString(t *testing.T) {
	var s String
	assert.True(t, s.IsNil())
	assert.False(t, String{}.IsNil())

	assert.True(t, StringFromPtr(nil, 4).IsNil())

	units := []uint16{'h', 'i'}
	got, err := StringFromPtr(&units[0], 2).Decode()
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
	assert.False(t, StringFromPtr(&units[0], 0).IsNil())
}

func TestBytesFromPtr(t *testing.T) {
	assert.Nil(t, BytesFromPtr(nil, 3))
	data := []byte{1, 2, 3}
	assert.Equal(t, data, BytesFromPtr(&data[0], 3))
}
