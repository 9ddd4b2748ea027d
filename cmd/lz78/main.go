// Command lz78 compresses and decompresses files with the LZ78 codec.
//
// Usage:
//
//	lz78 [-e | -d] [-raw] [-cap n] input [output]
//	lz78 -t input
//	lz78 -b input
//
// Without an output name, encoding writes input.lz78 and decoding writes
// input.out.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lzpack/lz78"
	"github.com/lzpack/lz78/frame"
)

type options struct {
	decode   bool
	raw      bool
	text     bool
	bench    bool
	capacity int
}

func usage() {
	fmt.Fprint(flag.CommandLine.Output(), `LZ78 encoder and decoder.

Example usages:
  lz78 -e input_file output_file
  lz78 -d input_file output_file

Parameters:
`)
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("lz78: ")

	var opts options
	var encode bool
	flag.BoolVar(&encode, "e", false, "encode (the default)")
	flag.BoolVar(&encode, "encode", false, "same as -e")
	flag.BoolVar(&opts.decode, "d", false, "decode")
	flag.BoolVar(&opts.decode, "decode", false, "same as -d")
	flag.BoolVar(&opts.raw, "raw", false, "read or write a bare code stream instead of a frame")
	flag.BoolVar(&opts.text, "t", false, "print the code stream for input as text")
	flag.BoolVar(&opts.bench, "b", false, "compare compression of input against other codecs")
	flag.IntVar(&opts.capacity, "cap", lz78.MaxCapacity, "dictionary capacity, 1-254; decoding a -raw stream needs the value it was encoded with")
	flag.Usage = usage
	flag.Parse()

	if encode && opts.decode {
		log.Fatal("-e and -d are mutually exclusive")
	}
	args := flag.Args()
	switch {
	case len(args) == 0:
		flag.Usage()
		os.Exit(2)
	case len(args) > 2:
		log.Print("too many unnamed arguments")
		flag.Usage()
		os.Exit(2)
	}
	input := args[0]

	if opts.bench {
		data, err := os.ReadFile(input)
		if err != nil {
			log.Fatal(err)
		}
		if err := runBench(os.Stdout, data, opts.capacity); err != nil {
			log.Fatal(err)
		}
		return
	}

	if opts.text {
		if err := printText(os.Stdout, input, opts.capacity); err != nil {
			log.Fatal(err)
		}
		return
	}

	output := outputName(input, opts.decode)
	if len(args) == 2 {
		output = args[1]
	} else {
		fmt.Printf("Output file was not provided. Creating file: %q.\n", output)
	}

	if err := run(input, output, opts); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Saved output file to: %q.\n", output)
}

func outputName(input string, decode bool) string {
	if decode {
		return input + ".out"
	}
	return input + ".lz78"
}

func run(input, output string, opts options) (err error) {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("error opening input file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("error opening output file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(out)
	if opts.decode {
		err = decodeStream(bw, bufio.NewReader(in), opts)
	} else {
		var stats lz78.Stats
		stats, err = encodeStream(bw, in, opts)
		if err == nil && stats.Full {
			fmt.Printf("Dictionary filled up (%d entries); the rest of the input was coded with it unchanged.\n", stats.Entries)
		}
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

func encodeStream(dst io.Writer, src io.Reader, opts options) (lz78.Stats, error) {
	var w *lz78.Writer
	var enc interface{ Stats() lz78.Stats }
	if opts.raw {
		e := &lz78.Encoder{Capacity: opts.capacity}
		w, enc = &lz78.Writer{Dest: dst, Encoder: e}, e
	} else {
		e := &frame.Encoder{Encoder: lz78.Encoder{Capacity: opts.capacity}}
		w, enc = &lz78.Writer{Dest: dst, Encoder: e}, e
	}

	if _, err := io.Copy(w, src); err != nil {
		return lz78.Stats{}, err
	}
	if err := w.Close(); err != nil {
		return lz78.Stats{}, err
	}
	return enc.Stats(), nil
}

func decodeStream(dst io.Writer, src io.Reader, opts options) error {
	var r io.Reader
	if opts.raw {
		r = lz78.NewReader(src, opts.capacity)
	} else {
		r = frame.NewReader(src)
	}
	_, err := io.Copy(dst, r)
	return err
}

func printText(dst io.Writer, input string, capacity int) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	w := &lz78.Writer{
		Dest:    dst,
		Encoder: &lz78.TextEncoder{Encoder: lz78.Encoder{Capacity: capacity}},
	}
	if _, err := io.Copy(w, in); err != nil {
		return err
	}
	return w.Close()
}
