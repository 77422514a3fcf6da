package pngme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTypeFromBytes(t *testing.T) {
	expected := [4]byte{82, 117, 83, 116}
	actual, err := ParseChunkType([4]byte{82, 117, 83, 116})
	require.NoError(t, err)
	assert.Equal(t, expected, actual.Bytes())
}

func TestChunkTypeFromString(t *testing.T) {
	expected, err := ParseChunkType([4]byte{82, 117, 83, 116})
	require.NoError(t, err)
	actual, err := ChunkTypeFromString("RuSt")
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
	assert.True(t, expected == actual)
}

func TestChunkTypeProperties(t *testing.T) {
	tests := []struct {
		typ      string
		critical bool
		public   bool
		reserved bool
		safe     bool
		valid    bool
	}{
		{typ: "RuSt", critical: true, public: false, reserved: true, safe: true, valid: true},
		{typ: "ruSt", critical: false, public: false, reserved: true, safe: true, valid: true},
		{typ: "RUSt", critical: true, public: true, reserved: true, safe: true, valid: true},
		{typ: "Rust", critical: true, public: false, reserved: false, safe: true, valid: false},
		{typ: "RuST", critical: true, public: false, reserved: true, safe: false, valid: true},
		{typ: "IHDR", critical: true, public: true, reserved: true, safe: false, valid: true},
		{typ: "tEXt", critical: false, public: true, reserved: true, safe: true, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			ct, err := ChunkTypeFromString(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.critical, ct.IsCritical(), "IsCritical")
			assert.Equal(t, tt.public, ct.IsPublic(), "IsPublic")
			assert.Equal(t, tt.reserved, ct.IsReservedBitValid(), "IsReservedBitValid")
			assert.Equal(t, tt.safe, ct.IsSafeToCopy(), "IsSafeToCopy")
			assert.Equal(t, tt.valid, ct.IsValid(), "IsValid")
		})
	}
}

func TestChunkTypeAcceptsFullLetterRange(t *testing.T) {
	for _, s := range []string{"ZzZz", "AaAa", "zZZZ", "abZy"} {
		ct, err := ChunkTypeFromString(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, ct.String())
	}
}

func TestChunkTypeRejectsNonLetters(t *testing.T) {
	tests := []struct {
		name  string
		input [4]byte
	}{
		{name: "digit", input: [4]byte{'R', 'u', '1', 't'}},
		{name: "at sign below A", input: [4]byte{'@', 'u', 'S', 't'}},
		{name: "bracket above Z", input: [4]byte{'[', 'u', 'S', 't'}},
		{name: "backtick below a", input: [4]byte{'R', '`', 'S', 't'}},
		{name: "brace above z", input: [4]byte{'R', 'u', 'S', '{'}},
		{name: "high byte", input: [4]byte{'R', 'u', 'S', 0xC3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChunkType(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidChunkType))
		})
	}
}

func TestChunkTypeFromStringLength(t *testing.T) {
	for _, s := range []string{"", "R", "RuS", "RuStX"} {
		_, err := ChunkTypeFromString(s)
		require.Error(t, err, s)
		assert.Equal(t, "INVALID_LENGTH", GetErrorCode(err))
	}

	_, err := ChunkTypeFromString("Ru1t")
	assert.True(t, errors.Is(err, ErrInvalidChunkType))
}

func TestChunkTypeRenderRoundTrip(t *testing.T) {
	letters := "AZaz"
	for _, a := range letters {
		for _, b := range letters {
			s := string([]rune{a, b, 'Q', 'q'})
			ct, err := ChunkTypeFromString(s)
			require.NoError(t, err)
			assert.Equal(t, s, ct.String())
		}
	}
}

func TestMustChunkTypePanics(t *testing.T) {
	assert.NotPanics(t, func() { MustChunkType("RuSt") })
	assert.Panics(t, func() { MustChunkType("Ru") })
}
