// Package encoding converts strings between UTF-8 and the EUC-KR encoding
// used on the wire.
package encoding

import (
	"bytes"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Decode converts EUC-KR bytes to a UTF-8 string. Bytes that are not valid
// EUC-KR are returned unchanged.
func Decode(data []byte) string {
	result, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// Encode converts a UTF-8 string to EUC-KR. Text that has no EUC-KR form is
// sent as UTF-8.
func Encode(s string) []byte {
	result, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// DecodeFixed reads a NUL padded EUC-KR field.
func DecodeFixed(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return Decode(data)
}

// EncodeFixed writes s into a NUL padded field of size bytes, truncating
// when it does not fit.
func EncodeFixed(s string, size int) []byte {
	field := make([]byte, size)
	copy(field, Encode(s))
	return field
}
