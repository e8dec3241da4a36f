package fastdhash

import "fmt"

// hexLen is the fixed width of the textual form: 16 lowercase hex digits.
const hexLen = 16

// String renders the hash as 16 lowercase hex digits, zero padded.
func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// Parse decodes the fixed-width hex form produced by String. Uppercase
// digits are accepted; signs, prefixes and whitespace are not.
// Parse(h.String()) == h for every hash.
func Parse(s string) (Hash, error) {
	if len(s) != hexLen {
		return 0, fmt.Errorf("%w: got %d characters", ErrHexLength, len(s))
	}
	var v uint64
	for i := 0; i < hexLen; i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return 0, fmt.Errorf("%w: %q at position %d", ErrHexDigit, s[i], i)
		}
		v = v<<4 | uint64(d)
	}
	return Hash(v), nil
}

// MarshalText implements encoding.TextMarshaler, so hashes serialize as
// hex strings in JSON and friends.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func hexDigit(c byte) (uint64, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint64(c-'A') + 10, true
	}
	return 0, false
}
