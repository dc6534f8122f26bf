package encryption

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// encode returns the text-safe form of a raw blob.
func encode(raw []byte) []byte {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)

	return out
}

// decode reverses encode. Leading and trailing whitespace is ignored.
func decode(blob []byte) ([]byte, error) {
	text := bytes.TrimSpace(blob)

	raw := make([]byte, base64.StdEncoding.DecodedLen(len(text)))

	n, err := base64.StdEncoding.Decode(raw, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	return raw[:n], nil
}

