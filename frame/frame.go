// Package frame wraps an LZ78 code stream in a self-describing container.
//
// A frame is laid out as:
//
//	magic     uint32, little endian, 0x38375A4C ("LZ78")
//	version   byte, 1
//	capacity  byte, the dictionary capacity the stream was encoded with
//	codes     the code stream
//	length    uint32, little endian, the decoded length (mod 2^32)
//	checksum  uint32, little endian, xxHash32 (seed 0) of the decoded data
package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash"
	"io"

	"github.com/lzpack/lz78"
	"github.com/pierrec/xxHash/xxHash32"
)

const (
	// Magic starts every frame; it is "LZ78" in little-endian order.
	Magic = 0x38375A4C

	// Version is the only frame version there is.
	Version = 1

	headerSize  = 6
	trailerSize = 8
)

var (
	ErrBadMagic  = errors.New("frame: not an LZ78 frame")
	ErrVersion   = errors.New("frame: unsupported version")
	ErrHeader    = errors.New("frame: invalid header")
	ErrChecksum  = errors.New("frame: checksum mismatch")
	ErrTruncated = errors.New("frame: truncated")
)

// An Encoder implements the lz78.BlockEncoder interface, writing the code
// stream inside a frame.
type Encoder struct {
	lz78.Encoder

	hasher hash.Hash32
	length uint32
}

func (f *Encoder) Reset() {
	f.Encoder.Reset()
	f.hasher = nil
	f.length = 0
}

func (f *Encoder) Encode(dst []byte, src []byte, lastBlock bool) []byte {
	if f.hasher == nil {
		f.hasher = xxHash32.New(0)
		dst = binary.LittleEndian.AppendUint32(dst, Magic)
		dst = append(dst, Version, byte(capacityOf(f.Capacity)))
	}

	dst = f.Encoder.Encode(dst, src, lastBlock)

	f.hasher.Write(src)
	f.length += uint32(len(src))

	if lastBlock {
		dst = binary.LittleEndian.AppendUint32(dst, f.length)
		dst = binary.LittleEndian.AppendUint32(dst, f.hasher.Sum32())
	}

	return dst
}

// NewWriter returns a Writer that writes a frame to w, using a dictionary
// with the given capacity.
func NewWriter(w io.Writer, capacity int) *lz78.Writer {
	return &lz78.Writer{
		Dest:    w,
		Encoder: &Encoder{Encoder: lz78.Encoder{Capacity: capacity}},
	}
}

// Compress returns src as a complete frame.
func Compress(src []byte, capacity int) []byte {
	e := Encoder{Encoder: lz78.Encoder{Capacity: capacity}}
	return e.Encode(nil, src, true)
}

// Decompress decodes a complete frame.
func Decompress(src []byte) ([]byte, error) {
	return io.ReadAll(NewReader(bytes.NewReader(src)))
}

func capacityOf(c int) int {
	if c <= 0 || c > lz78.MaxCapacity {
		return lz78.MaxCapacity
	}
	return c
}
