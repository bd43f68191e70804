package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrFormat reports a persisted snapshot that cannot be decoded.
var ErrFormat = errors.New("persist: malformed snapshot")

// ErrLengthMismatch reports a snapshot whose length differs from the board.
// It wraps ErrFormat.
var ErrLengthMismatch = fmt.Errorf("%w: length mismatch", ErrFormat)

// Encode serialises buf as a JSON array of byte values.
func Encode(buf []byte) (string, error) {
	values := make([]int, len(buf))
	for i, b := range buf {
		values[i] = int(b)
	}
	out, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("persist: encode snapshot: %w", err)
	}
	return string(out), nil
}

// Decode parses a snapshot written by Encode. It also accepts an object keyed
// by decimal indices, the shape browsers produce for a serialised Uint8Array.
func Decode(s string) ([]byte, error) {
	data := bytes.TrimSpace([]byte(s))
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrFormat)
	}
	switch data[0] {
	case '[':
		var values []int
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		return toBytes(values)
	case '{':
		var keyed map[string]int
		if err := json.Unmarshal(data, &keyed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		values := make([]int, len(keyed))
		seen := make([]bool, len(keyed))
		for k, v := range keyed {
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 || i >= len(values) || seen[i] {
				return nil, fmt.Errorf("%w: bad index %q", ErrFormat, k)
			}
			seen[i] = true
			values[i] = v
		}
		return toBytes(values)
	default:
		return nil, fmt.Errorf("%w: expected array or object", ErrFormat)
	}
}

func toBytes(values []int) ([]byte, error) {
	out := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: value %d at %d out of byte range", ErrFormat, v, i)
		}
		out[i] = byte(v)
	}
	return out, nil
}
