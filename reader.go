package lz78

import "io"

// readBufferSize is how many code bytes a Reader asks its source for at a time.
const readBufferSize = 1 << 14

// A Reader decompresses a code stream read from Source.
type Reader struct {
	Source io.Reader

	// Decoder must be configured like the Encoder that produced the stream;
	// nil means a new Decoder with MaxCapacity.
	Decoder *Decoder

	in  []byte
	out []byte
	pos int
	err error
}

// NewReader returns a Reader that decodes the code stream in r, using a
// dictionary with the given capacity.
func NewReader(r io.Reader, capacity int) *Reader {
	return &Reader{
		Source:  r,
		Decoder: &Decoder{Capacity: capacity},
	}
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.Decoder == nil {
		r.Decoder = new(Decoder)
	}
	if r.in == nil {
		r.in = make([]byte, readBufferSize)
	}

	for r.pos == len(r.out) {
		if r.err != nil {
			return 0, r.err
		}
		r.out = r.out[:0]
		r.pos = 0

		n, err := r.Source.Read(r.in)
		last := err == io.EOF
		var decodeErr error
		r.out, decodeErr = r.Decoder.Decode(r.out, r.in[:n], last)
		switch {
		case decodeErr != nil:
			r.err = decodeErr
		case last:
			r.err = io.EOF
		case err != nil:
			r.err = err
		}
	}

	n := copy(p, r.out[r.pos:])
	r.pos += n
	return n, nil
}

// Reset discards the Reader's state and makes it read a new stream from src.
func (r *Reader) Reset(src io.Reader) {
	if r.Decoder == nil {
		r.Decoder = new(Decoder)
	}
	r.Decoder.Reset()
	r.Source = src
	r.out = r.out[:0]
	r.pos = 0
	r.err = nil
}
