package main

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/lzpack/lz78"
	"github.com/pierrec/lz4/v4"
)

// A codec is a compression format to compare LZ78 against.
type codec struct {
	name       string
	compress   func(src []byte) ([]byte, error)
	decompress func(src []byte) ([]byte, error)
}

func codecs(capacity int) []codec {
	return []codec{
		{
			name: "lz78",
			compress: func(src []byte) ([]byte, error) {
				e := lz78.Encoder{Capacity: capacity}
				return e.Encode(nil, src, true), nil
			},
			decompress: func(src []byte) ([]byte, error) {
				d := lz78.Decoder{Capacity: capacity}
				return d.Decode(nil, src, true)
			},
		},
		{
			name: "snappy",
			compress: func(src []byte) ([]byte, error) {
				return snappy.Encode(nil, src), nil
			},
			decompress: func(src []byte) ([]byte, error) {
				return snappy.Decode(nil, src)
			},
		},
		{
			name: "lz4",
			compress: func(src []byte) ([]byte, error) {
				return streamCompress(src, func(w io.Writer) io.WriteCloser {
					return lz4.NewWriter(w)
				})
			},
			decompress: func(src []byte) ([]byte, error) {
				return io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
			},
		},
		{
			name: "flate",
			compress: func(src []byte) ([]byte, error) {
				return streamCompress(src, func(w io.Writer) io.WriteCloser {
					fw, _ := flate.NewWriter(w, flate.DefaultCompression)
					return fw
				})
			},
			decompress: func(src []byte) ([]byte, error) {
				return io.ReadAll(flate.NewReader(bytes.NewReader(src)))
			},
		},
		{
			name: "zstd",
			compress: func(src []byte) ([]byte, error) {
				enc, err := zstd.NewWriter(nil)
				if err != nil {
					return nil, err
				}
				defer enc.Close()
				return enc.EncodeAll(src, nil), nil
			},
			decompress: func(src []byte) ([]byte, error) {
				dec, err := zstd.NewReader(nil)
				if err != nil {
					return nil, err
				}
				defer dec.Close()
				return dec.DecodeAll(src, nil)
			},
		},
		{
			name: "brotli",
			compress: func(src []byte) ([]byte, error) {
				return streamCompress(src, func(w io.Writer) io.WriteCloser {
					return brotli.NewWriterLevel(w, brotli.DefaultCompression)
				})
			},
			decompress: func(src []byte) ([]byte, error) {
				return io.ReadAll(brotli.NewReader(bytes.NewReader(src)))
			},
		},
	}
}

func streamCompress(src []byte, newWriter func(io.Writer) io.WriteCloser) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := newWriter(buf)
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// A benchResult is one row of the comparison table.
type benchResult struct {
	name       string
	size       int
	ratio      float64
	encodeTime time.Duration
	decodeTime time.Duration
}

func benchCodec(c codec, data []byte) (benchResult, error) {
	start := time.Now()
	compressed, err := c.compress(data)
	if err != nil {
		return benchResult{}, fmt.Errorf("%s: %w", c.name, err)
	}
	encodeTime := time.Since(start)

	start = time.Now()
	decompressed, err := c.decompress(compressed)
	if err != nil {
		return benchResult{}, fmt.Errorf("%s: %w", c.name, err)
	}
	decodeTime := time.Since(start)
	if !bytes.Equal(decompressed, data) {
		return benchResult{}, fmt.Errorf("%s: decompressed output doesn't match", c.name)
	}

	ratio := 0.0
	if len(compressed) > 0 {
		ratio = float64(len(data)) / float64(len(compressed))
	}
	return benchResult{
		name:       c.name,
		size:       len(compressed),
		ratio:      ratio,
		encodeTime: encodeTime,
		decodeTime: decodeTime,
	}, nil
}

func runBench(dst io.Writer, data []byte, capacity int) error {
	tw := tabwriter.NewWriter(dst, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "codec\tsize\tratio\tencode\tdecode\t\n")
	fmt.Fprintf(tw, "input\t%d\t\t\t\t\n", len(data))
	for _, c := range codecs(capacity) {
		r, err := benchCodec(c, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%v\t%v\t\n", r.name, r.size, r.ratio, r.encodeTime.Round(time.Microsecond), r.decodeTime.Round(time.Microsecond))
	}
	return tw.Flush()
}
