package lz78

import (
	"errors"
	"fmt"
)

// A Decoder turns an LZ78 code stream back into the original bytes. It
// rebuilds the encoder's dictionary as it goes, so it must use the same
// Capacity.
//
// The zero value is ready to use. After Decode returns an error, the
// Decoder must be Reset before it is used again.
type Decoder struct {
	// Capacity is the number of dictionary entries to use; 0 means
	// MaxCapacity.
	Capacity int

	dict *Dictionary

	// carry holds the first byte of a unit split across two blocks.
	carry    byte
	hasCarry bool

	stats Stats
}

// Reset discards the dictionary and any partial unit, preparing the
// Decoder to be used with a new stream.
func (d *Decoder) Reset() {
	if d.dict != nil && d.dict.Cap() == normalizeCapacity(d.Capacity) {
		d.dict.Reset()
	} else {
		d.dict = nil
	}
	d.hasCarry = false
	d.stats = Stats{}
}

// Stats returns counters for the current stream.
func (d *Decoder) Stats() Stats {
	s := d.stats
	if d.dict != nil {
		s.Entries = d.dict.Len()
	}
	return s
}

// Decode appends the bytes encoded by src to dst and returns dst. If
// lastBlock is true, src is the end of the stream, and a trailing single
// code is decoded as the final phrase; otherwise it is kept until the next
// call.
func (d *Decoder) Decode(dst []byte, src []byte, lastBlock bool) ([]byte, error) {
	if d.dict == nil {
		d.dict = NewDictionary(d.Capacity)
	}
	var err error

	if d.hasCarry && len(src) > 0 {
		d.hasCarry = false
		if dst, err = d.decodeUnit(dst, d.carry, src[0]); err != nil {
			return dst, err
		}
		src = src[1:]
	}

	for len(src) >= 2 {
		if dst, err = d.decodeUnit(dst, src[0], src[1]); err != nil {
			return dst, err
		}
		src = src[2:]
	}

	if len(src) == 1 {
		d.carry = src[0]
		d.hasCarry = true
	}

	if lastBlock && d.hasCarry {
		d.hasCarry = false
		return d.decodeFinal(dst, d.carry)
	}
	return dst, nil
}

func (d *Decoder) decodeUnit(dst []byte, code, c byte) ([]byte, error) {
	if code == literalCode {
		dst = append(dst, c)
		d.insert(None, c)
		d.stats.Units++
		return dst, nil
	}

	parent := int(code) - 1
	if parent >= d.dict.Len() {
		return dst, d.badCode(code)
	}
	// The dictionary knows the phrase length, so the phrase can be
	// written front to back straight into dst.
	dst, err := d.dict.AppendPhrase(dst, parent)
	if err != nil {
		return dst, err
	}
	dst = append(dst, c)
	d.insert(parent, c)
	d.stats.Units++
	return dst, nil
}

// decodeFinal handles the lone code that may end a stream: a known
// phrase with no literal after it. It adds nothing to the dictionary.
func (d *Decoder) decodeFinal(dst []byte, code byte) ([]byte, error) {
	if code == literalCode {
		return dst, fmt.Errorf("%w: literal code without a literal at unit %d", ErrTruncated, d.stats.Units)
	}
	parent := int(code) - 1
	if parent >= d.dict.Len() {
		return dst, d.badCode(code)
	}
	dst, err := d.dict.AppendPhrase(dst, parent)
	if err != nil {
		return dst, err
	}
	d.stats.Units++
	return dst, nil
}

func (d *Decoder) badCode(code byte) error {
	return fmt.Errorf("%w: code %#02x at unit %d, dictionary has %d entries", ErrInvalidIndex, code, d.stats.Units, d.dict.Len())
}

func (d *Decoder) insert(parent int, c byte) {
	i, err := d.dict.Insert(parent, c)
	switch {
	case err == nil:
		debugf("lz78: decoder added entry %d = (%d, %#02x)", i, parent, c)
	case errors.Is(err, ErrDictionaryFull):
		if !d.stats.Full {
			debugf("lz78: decoder dictionary full after %d units", d.stats.Units)
		}
		d.stats.Full = true
	default:
		// decodeUnit has already checked parent.
		panic(err)
	}
}
