package guid_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zefrenchwan/ifc.git/guid"
)

func TestCompressKnownValues(t *testing.T) {
	t.Parallel()

	var zero [16]byte
	assert.Equal(t, "0000000000000000000000", guid.Compress(zero))

	var full [16]byte
	for index := range full {
		full[index] = 0xFF
	}
	assert.Equal(t, "3"+strings.Repeat("$", 21), guid.Compress(full))

	var last [16]byte
	last[15] = 1
	assert.Equal(t, "0000000000000000000001", guid.Compress(last))

	// top bit of the first 24 bits group is digit 32 at position 2
	var high [16]byte
	high[1] = 0x80
	assert.Equal(t, "00W0000000000000000000", guid.Compress(high))
}

func TestCompressFromUUID(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("00000000-0000-0000-0000-000000000040")
	assert.Equal(t, "0000000000000000000010", guid.FromUUID(id))

	back, err := guid.ToUUID(guid.FromUUID(id))
	require.NoError(t, err)
	assert.Equal(t, id, back)
}

func TestGeneratedValuesAreValid(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for index := 0; index < 500; index++ {
		value := guid.New()
		require.Len(t, value, guid.GUID_LENGTH)
		require.NoError(t, guid.Validate(value))
		require.Contains(t, "0123", value[0:1])

		raw, err := guid.Decompress(value)
		require.NoError(t, err)
		assert.Equal(t, value, guid.Compress(raw))

		assert.False(t, seen[value], "duplicate generated id")
		seen[value] = true
	}
}

func TestMalformedValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "empty", value: ""},
		{name: "too short", value: "0000000000000000000"},
		{name: "too long", value: "00000000000000000000000"},
		{name: "illegal character", value: "000000000000000000000-"},
		{name: "space", value: "0000000000 00000000000"},
		{name: "first digit overflow", value: "4000000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guid.Validate(tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, guid.ErrInvalid)
		})
	}
}
