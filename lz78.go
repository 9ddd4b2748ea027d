// Package lz78 implements a byte-oriented LZ78 compressor and decompressor.
//
// The encoder scans its input and greedily matches the longest phrase it
// has already seen, emitting a two-byte unit for each new phrase:
//
//	[code, literal]
//
// A code of 0xFF means the phrase is the single byte literal. Any other
// code c means the phrase is dictionary entry c-1 followed by literal.
// Every unit adds one entry to the dictionary, on both sides, until the
// dictionary is full. After that the dictionary is frozen: the stream
// goes on using the entries that exist, and no more are added.
//
// If the input ends in the middle of a phrase that is already in the
// dictionary, the stream ends with a single code byte for that phrase and
// no literal. Since every other unit is two bytes long, a decoder can
// recognize it by the odd stream length.
//
// Codes are a single byte, so a dictionary holds at most 254 entries.
package lz78

import (
	"errors"
	"log"
)

const (
	// MaxCapacity is the largest number of entries a dictionary can hold
	// while keeping every code (index+1) distinct from the 0xFF literal code.
	MaxCapacity = 254

	// literalCode is the wire code for a phrase with no prefix.
	literalCode = 0xFF
)

var (
	// ErrDictionaryFull is returned by Dictionary.Insert when every slot is
	// taken. Encoder and Decoder treat it as the signal to freeze the
	// dictionary; it is not a stream error.
	ErrDictionaryFull = errors.New("lz78: dictionary full")

	// ErrInvalidIndex means an index that has not been inserted was used.
	// When decoding, it indicates a corrupt code stream.
	ErrInvalidIndex = errors.New("lz78: invalid dictionary index")

	// ErrTruncated means the code stream ended in a way no encoder produces.
	ErrTruncated = errors.New("lz78: truncated code stream")

	errWriterClosed = errors.New("lz78: Writer is closed")
)

// A BlockEncoder produces the output format for a stream that is fed to it
// one block at a time. Encoder is the binary code stream; TextEncoder is a
// readable rendering of it.
type BlockEncoder interface {
	// Encode appends the encoded form of src to dst, and returns dst.
	// lastBlock is true for the final block of the stream.
	Encode(dst []byte, src []byte, lastBlock bool) []byte

	// Reset clears any internal state, preparing the BlockEncoder to be
	// used with a new stream.
	Reset()
}

// enable debug logging
const debug = false

func debugf(format string, a ...interface{}) {
	if debug {
		log.Printf(format, a...)
	}
}

// Compress encodes src as a complete LZ78 code stream, using a dictionary
// of MaxCapacity entries.
func Compress(src []byte) []byte {
	var e Encoder
	return e.Encode(nil, src, true)
}

// Decompress decodes a complete code stream produced by Compress.
func Decompress(src []byte) ([]byte, error) {
	var d Decoder
	return d.Decode(nil, src, true)
}

func normalizeCapacity(capacity int) int {
	if capacity <= 0 || capacity > MaxCapacity {
		return MaxCapacity
	}
	return capacity
}
