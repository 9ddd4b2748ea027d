package lz78

import "io"

// DefaultBlockSize is the BlockSize a Writer uses when none is set.
const DefaultBlockSize = 1 << 16

// A Writer compresses the data written to it and writes the result to Dest.
type Writer struct {
	Dest io.Writer

	// Encoder produces the output format; nil means a new Encoder with
	// MaxCapacity.
	Encoder BlockEncoder

	// BlockSize is how much input is buffered before it is encoded;
	// 0 means DefaultBlockSize.
	BlockSize int

	inBuf  []byte
	outBuf []byte
	err    error
}

// NewWriter returns a Writer that writes a code stream to w, using a
// dictionary with the given capacity.
func NewWriter(w io.Writer, capacity int) *Writer {
	return &Writer{
		Dest:    w,
		Encoder: &Encoder{Capacity: capacity},
	}
}

func (w *Writer) init() {
	if w.Encoder == nil {
		w.Encoder = new(Encoder)
	}
	if w.BlockSize <= 0 {
		w.BlockSize = DefaultBlockSize
	}
	if w.inBuf == nil {
		w.inBuf = make([]byte, 0, w.BlockSize)
	}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	w.init()

	for len(p) > 0 {
		free := w.BlockSize - len(w.inBuf)
		if free > len(p) {
			free = len(p)
		}
		w.inBuf = append(w.inBuf, p[:free]...)
		p = p[free:]
		n += free

		if len(w.inBuf) == w.BlockSize {
			if err := w.encodeBlock(false); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

func (w *Writer) encodeBlock(lastBlock bool) error {
	w.outBuf = w.Encoder.Encode(w.outBuf[:0], w.inBuf, lastBlock)
	w.inBuf = w.inBuf[:0]
	if len(w.outBuf) == 0 {
		return nil
	}
	if _, w.err = w.Dest.Write(w.outBuf); w.err != nil {
		return w.err
	}
	return nil
}

// Close encodes the buffered data as the last block of the stream.
// It does not close Dest.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	w.init()
	if err := w.encodeBlock(true); err != nil {
		return err
	}
	w.err = errWriterClosed
	return nil
}

// Reset discards the Writer's state and makes it write a new stream to dest.
func (w *Writer) Reset(dest io.Writer) {
	w.init()
	w.Encoder.Reset()
	w.Dest = dest
	w.inBuf = w.inBuf[:0]
	w.outBuf = w.outBuf[:0]
	w.err = nil
}
