package frame

import (
	"encoding/binary"
	"fmt"
	"hash"
	"io"

	"github.com/lzpack/lz78"
	"github.com/pierrec/xxHash/xxHash32"
)

const readBufferSize = 1 << 14

// A Reader decodes a frame. It checks the trailer when it reaches the end
// of the source, so the last Read of a damaged frame returns an error
// after the decoded bytes.
type Reader struct {
	src     io.Reader
	decoder lz78.Decoder
	hasher  hash.Hash32
	length  uint32

	in []byte

	// held is input not yet decoded. The last trailerSize bytes of the
	// source are never decoded.
	held []byte

	out []byte
	pos int
	err error
}

// NewReader returns a Reader that decodes the frame in r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: r}
}

// Reset discards the Reader's state and makes it read a new frame from r.
func (r *Reader) Reset(src io.Reader) {
	r.src = src
	r.hasher = nil
	r.length = 0
	r.held = r.held[:0]
	r.out = r.out[:0]
	r.pos = 0
	r.err = nil
}

func (r *Reader) readHeader() error {
	var h [headerSize]byte
	if _, err := io.ReadFull(r.src, h[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrTruncated
		}
		return err
	}
	if binary.LittleEndian.Uint32(h[:4]) != Magic {
		return ErrBadMagic
	}
	if h[4] != Version {
		return fmt.Errorf("%w: %d", ErrVersion, h[4])
	}
	if h[5] == 0 || int(h[5]) > lz78.MaxCapacity {
		return fmt.Errorf("%w: capacity %d", ErrHeader, h[5])
	}

	r.decoder.Capacity = int(h[5])
	r.decoder.Reset()
	r.hasher = xxHash32.New(0)
	return nil
}

func (r *Reader) Read(p []byte) (int, error) {
	for r.pos == len(r.out) {
		if r.err != nil {
			return 0, r.err
		}
		if r.hasher == nil {
			if r.err = r.readHeader(); r.err != nil {
				return 0, r.err
			}
		}
		r.out = r.out[:0]
		r.pos = 0
		r.err = r.fill()
	}

	n := copy(p, r.out[r.pos:])
	r.pos += n
	return n, nil
}

// fill reads one chunk from the source and decodes what it can.
func (r *Reader) fill() error {
	if r.in == nil {
		r.in = make([]byte, readBufferSize)
	}
	n, readErr := r.src.Read(r.in)
	r.held = append(r.held, r.in[:n]...)
	last := readErr == io.EOF

	var codes []byte
	switch {
	case last && len(r.held) < trailerSize:
		return ErrTruncated
	case len(r.held) > trailerSize:
		codes = r.held[:len(r.held)-trailerSize]
	}

	var err error
	r.out, err = r.decoder.Decode(r.out, codes, last)
	r.hasher.Write(r.out)
	r.length += uint32(len(r.out))
	if err != nil {
		return err
	}
	n = copy(r.held, r.held[len(codes):])
	r.held = r.held[:n]

	switch {
	case last:
		return r.checkTrailer()
	case readErr != nil:
		return readErr
	}
	return nil
}

func (r *Reader) checkTrailer() error {
	length := binary.LittleEndian.Uint32(r.held[:4])
	sum := binary.LittleEndian.Uint32(r.held[4:])
	if length != r.length {
		return fmt.Errorf("%w: decoded %d bytes, frame says %d", ErrChecksum, r.length, length)
	}
	if sum != r.hasher.Sum32() {
		return fmt.Errorf("%w: got %#08x, frame says %#08x", ErrChecksum, r.hasher.Sum32(), sum)
	}
	return io.EOF
}
