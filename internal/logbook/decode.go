package logbook

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

var utf16BOMs = [][]byte{
	{0xFE, 0xFF},
	{0xFF, 0xFE},
}

// DecodeText converts raw file bytes into text. UTF-8 passes through,
// UTF-16 is recognized by its byte order mark and anything else is decoded
// with the detected legacy charset (usually Windows-1252). A leading byte
// order mark is removed. Decoding never fails; on error the raw bytes are
// used as-is.
func DecodeText(raw []byte) string {
	if !hasUTF16BOM(raw) && utf8.Valid(raw) {
		return strings.TrimPrefix(string(raw), "\uFEFF")
	}

	enc, _, _ := charset.DetermineEncoding(raw, "text/tab-separated-values")
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.TrimPrefix(string(raw), "\uFEFF")
	}
	return strings.TrimPrefix(string(decoded), "\uFEFF")
}

func hasUTF16BOM(raw []byte) bool {
	for _, bom := range utf16BOMs {
		if bytes.HasPrefix(raw, bom) {
			return true
		}
	}
	return false
}
