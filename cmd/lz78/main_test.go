package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var sample = []byte(strings.Repeat("It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.\n", 200))

func TestOutputName(t *testing.T) {
	if got := outputName("book.txt", false); got != "book.txt.lz78" {
		t.Errorf("encode: got %q", got)
	}
	if got := outputName("book.txt.lz78", true); got != "book.txt.lz78.out" {
		t.Errorf("decode: got %q", got)
	}
}

func TestRun(t *testing.T) {
	for _, opts := range []options{
		{capacity: 254},
		{capacity: 254, raw: true},
		{capacity: 20, raw: true},
		{capacity: 7},
	} {
		dir := t.TempDir()
		input := filepath.Join(dir, "input.txt")
		if err := os.WriteFile(input, sample, 0o644); err != nil {
			t.Fatal(err)
		}

		compressed := filepath.Join(dir, "input.lz78")
		if err := run(input, compressed, opts); err != nil {
			t.Fatalf("%+v: encode: %v", opts, err)
		}

		decoded := filepath.Join(dir, "input.out")
		opts.decode = true
		if err := run(compressed, decoded, opts); err != nil {
			t.Fatalf("%+v: decode: %v", opts, err)
		}

		got, err := os.ReadFile(decoded)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, sample) {
			t.Fatalf("%+v: decoded file doesn't match", opts)
		}
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := run(filepath.Join(dir, "nope"), filepath.Join(dir, "out"), options{})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestEncodeStreamStats(t *testing.T) {
	var b bytes.Buffer
	stats, err := encodeStream(&b, bytes.NewReader(sample), options{capacity: 10, raw: true})
	if err != nil {
		t.Fatal(err)
	}
	if !stats.Full || stats.Entries != 10 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestPrintText(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a")
	os.WriteFile(input, []byte("AAAA"), 0o644)

	var b bytes.Buffer
	if err := printText(&b, input, 0); err != nil {
		t.Fatal(err)
	}
	if want := `(-,"A") (0,"A") [0]` + "\n"; b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}
}

func TestRunBench(t *testing.T) {
	var b bytes.Buffer
	if err := runBench(&b, sample, 254); err != nil {
		t.Fatal(err)
	}
	for _, c := range codecs(254) {
		if !strings.Contains(b.String(), c.name) {
			t.Errorf("no row for %s in:\n%s", c.name, b.String())
		}
	}
}
