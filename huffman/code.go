package huffman

import (
	"fmt"
	"strings"
)

// MaxCodeLength is the longest codeword a Code can hold. Reaching it
// from a real grid needs more than 2^43 pixels.
const MaxCodeLength = 64

// Code is a codeword: the low Len bits of Bits, most significant first
type Code struct {
	Bits uint64
	Len  int
}

// ParseCode parses a codeword written as a string of '0' and '1'
func ParseCode(s string) (Code, error) {
	if len(s) == 0 {
		return Code{}, fmt.Errorf("%w: empty codeword", ErrMalformedTree)
	}
	if len(s) > MaxCodeLength {
		return Code{}, fmt.Errorf("%w: %d bits", ErrCodeTooLong, len(s))
	}
	var c Code
	for _, r := range s {
		switch r {
		case '0':
			c = c.append(0)
		case '1':
			c = c.append(1)
		default:
			return Code{}, fmt.Errorf("%w: invalid codeword character %q", ErrMalformedTree, r)
		}
	}
	return c, nil
}

func (c Code) append(bit uint64) Code {
	return Code{Bits: c.Bits<<1 | bit, Len: c.Len + 1}
}

// Bit returns bit i of the codeword, counting from the first bit sent
func (c Code) Bit(i int) uint64 {
	return (c.Bits >> uint(c.Len-1-i)) & 1
}

// HasPrefix reports whether p is a prefix of c
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	return c.Bits>>uint(c.Len-p.Len) == p.Bits
}

// String renders the codeword as '0'/'1' characters
func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(c.Len)
	for i := 0; i < c.Len; i++ {
		if c.Bit(i) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
