package extractor

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// DecodeLatin1 decodes ISO-8859-1 bytes. Every byte sequence is valid latin-1,
// so a wrong source encoding shows up as garbled text, not as an error.
func DecodeLatin1(data []byte) (string, error) {
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("failed to decode latin-1 text: %w", err)
	}
	return string(decoded), nil
}

// DecodeUTF8OrLatin1 returns data as-is when it is valid UTF-8 and falls back
// to latin-1 otherwise.
func DecodeUTF8OrLatin1(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	return DecodeLatin1(data)
}
