package guid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// GUID_LENGTH is the size of a compressed global id
	GUID_LENGTH = 22
	// GUID_ALPHABET contains the 64 digits of the compressed form, by value
	GUID_ALPHABET = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_$"
)

// ErrInvalid is the base error for any malformed global id
var ErrInvalid = errors.New("invalid global id")

// digitValues maps a character to its value in GUID_ALPHABET, -1 for illegal characters
var digitValues = buildDigitValues()

func buildDigitValues() [256]int {
	var result [256]int
	for index := range result {
		result[index] = -1
	}

	for index := 0; index < len(GUID_ALPHABET); index++ {
		result[GUID_ALPHABET[index]] = index
	}

	return result
}

// New returns a new random compressed global id
func New() string {
	return FromUUID(uuid.New())
}

// FromUUID compresses an uuid
func FromUUID(id uuid.UUID) string {
	return Compress([16]byte(id))
}

// Compress packs 128 bits into 22 characters.
// First group is the first byte (2 characters), then five groups of 3 bytes (4 characters each).
func Compress(raw [16]byte) string {
	var builder strings.Builder
	builder.Grow(GUID_LENGTH)

	writeDigits(&builder, uint32(raw[0]), 2)
	for offset := 1; offset < len(raw); offset += 3 {
		group := uint32(raw[offset])<<16 | uint32(raw[offset+1])<<8 | uint32(raw[offset+2])
		writeDigits(&builder, group, 4)
	}

	return builder.String()
}

// writeDigits writes value as size base 64 digits, most significant first
func writeDigits(builder *strings.Builder, value uint32, size int) {
	digits := make([]byte, size)
	for index := size - 1; index >= 0; index-- {
		digits[index] = GUID_ALPHABET[value%64]
		value /= 64
	}

	builder.Write(digits)
}

// Decompress returns the 128 bits a compressed global id encodes
func Decompress(value string) ([16]byte, error) {
	var result [16]byte
	if len(value) != GUID_LENGTH {
		return result, fmt.Errorf("%w: expecting %d characters, got %d", ErrInvalid, GUID_LENGTH, len(value))
	}

	first, errFirst := readDigits(value[0:2])
	if errFirst != nil {
		return result, errFirst
	} else if first > 0xFF {
		return result, fmt.Errorf("%w: first character %q out of range", ErrInvalid, value[0])
	}

	result[0] = byte(first)
	for index := 0; index < 5; index++ {
		start := 2 + 4*index
		group, err := readDigits(value[start : start+4])
		if err != nil {
			return result, err
		}

		// 4 digits hold 24 bits exactly, no overflow possible
		offset := 1 + 3*index
		result[offset] = byte(group >> 16)
		result[offset+1] = byte(group >> 8)
		result[offset+2] = byte(group)
	}

	return result, nil
}

func readDigits(value string) (uint32, error) {
	var result uint32
	for index := 0; index < len(value); index++ {
		digit := digitValues[value[index]]
		if digit < 0 {
			return 0, fmt.Errorf("%w: illegal character %q", ErrInvalid, value[index])
		}

		result = result*64 + uint32(digit)
	}

	return result, nil
}

// ToUUID decompresses a global id into an uuid
func ToUUID(value string) (uuid.UUID, error) {
	raw, err := Decompress(value)
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.UUID(raw), nil
}

// Validate returns nil for a well formed compressed global id, an error wrapping ErrInvalid otherwise
func Validate(value string) error {
	_, err := Decompress(value)
	return err
}
