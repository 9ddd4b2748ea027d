package lz78

import "fmt"

// A TextEncoder is a BlockEncoder that produces a human-readable
// representation of the code stream. Each unit is written as
// (prefix,"literal"), where prefix is a dictionary index or - for none.
// A final phrase without a literal is written as [prefix].
type TextEncoder struct {
	Encoder Encoder

	codes []byte
}

func (t *TextEncoder) Reset() {
	t.Encoder.Reset()
}

func (t *TextEncoder) Encode(dst []byte, src []byte, lastBlock bool) []byte {
	t.codes = t.Encoder.Encode(t.codes[:0], src, lastBlock)
	codes := t.codes
	for len(codes) >= 2 {
		if codes[0] == literalCode {
			dst = fmt.Appendf(dst, "(-,%q) ", string(codes[1:2]))
		} else {
			dst = fmt.Appendf(dst, "(%d,%q) ", int(codes[0])-1, string(codes[1:2]))
		}
		codes = codes[2:]
	}
	if len(codes) == 1 {
		dst = fmt.Appendf(dst, "[%d]", int(codes[0])-1)
	}
	if lastBlock {
		dst = append(dst, '\n')
	}
	return dst
}
