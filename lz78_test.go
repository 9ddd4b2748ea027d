package lz78

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeSingleLiteral(t *testing.T) {
	got := Compress([]byte{0x41})
	if want := []byte{0xFF, 0x41}; !bytes.Equal(got, want) {
		t.Fatalf("Compress = %#v, want %#v", got, want)
	}
	decoded, err := Decompress(got)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, []byte{0x41}) {
		t.Fatalf("Decompress = %#v", decoded)
	}
}

func TestEncodeRepeatedByte(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		// The second unit refers to entry 0, created by the first.
		{"AAAA", []byte{0xFF, 'A', 1, 'A', 1}},
		{"AAAAAA", []byte{0xFF, 'A', 1, 'A', 2, 'A'}},
		{"AAAAAAA", []byte{0xFF, 'A', 1, 'A', 2, 'A', 1}},
		{"ABAB", []byte{0xFF, 'A', 0xFF, 'B', 1, 'B'}},
		{"ABABA", []byte{0xFF, 'A', 0xFF, 'B', 1, 'B', 1}},
	}
	for _, tt := range tests {
		got := Compress([]byte(tt.in))
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Compress(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEmpty(t *testing.T) {
	if got := Compress(nil); len(got) != 0 {
		t.Fatalf("Compress(nil) = %v", got)
	}
	got, err := Decompress(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("Decompress(nil) = %v", got)
	}
}

func testRoundTrip(t *testing.T, data []byte, capacity int) {
	t.Helper()
	e := Encoder{Capacity: capacity}
	compressed := e.Encode(nil, data, true)

	d := Decoder{Capacity: capacity}
	decompressed, err := d.Decode(nil, compressed, true)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Fatal("decompressed output doesn't match")
	}
	if es, ds := e.Stats(), d.Stats(); es != ds {
		t.Fatalf("encoder and decoder out of sync: %+v vs %+v", es, ds)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"single", []byte{0}},
		{"0xFF", []byte{0xFF, 0xFF, 0xFF}},
		{"identical", bytes.Repeat([]byte{'z'}, 100000)},
		{"text", testText(200000)},
		{"random", randomBytes(50000, 1)},
		{"hello", []byte("HelloHelloHelloHelloHelloHelloHelloHelloHelloHello, world")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testRoundTrip(t, tt.data, 0)
		})
	}
}

func TestRoundTripSmallCapacity(t *testing.T) {
	data := testText(20000)
	for _, capacity := range []int{1, 2, 3, 16, 100} {
		testRoundTrip(t, data, capacity)
	}
}

func TestDeterministic(t *testing.T) {
	data := testText(50000)
	a := Compress(data)
	b := Compress(data)
	if !bytes.Equal(a, b) {
		t.Fatal("two encodings of the same input differ")
	}
}

func TestCapacityBoundary(t *testing.T) {
	exact := make([]byte, MaxCapacity)
	for i := range exact {
		exact[i] = byte(i)
	}

	var e Encoder
	compressed := e.Encode(nil, exact, true)
	if s := e.Stats(); s.Entries != MaxCapacity || s.Full {
		t.Fatalf("after %d distinct phrases: %+v", MaxCapacity, s)
	}
	var d Decoder
	decompressed, err := d.Decode(nil, compressed, true)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed, exact) {
		t.Fatal("decompressed output doesn't match")
	}
	if d.Stats() != e.Stats() {
		t.Fatalf("decoder %+v, encoder %+v", d.Stats(), e.Stats())
	}

	// One more distinct phrase, then data coded with the frozen dictionary.
	more := append(append([]byte(nil), exact...), 0xFE, 0xFF)
	more = append(more, testText(5000)...)
	e.Reset()
	compressed = e.Encode(nil, more, true)
	if s := e.Stats(); s.Entries != MaxCapacity || !s.Full {
		t.Fatalf("past capacity: %+v", s)
	}
	d.Reset()
	decompressed, err = d.Decode(nil, compressed, true)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed, more) {
		t.Fatal("decompressed output doesn't match")
	}
	if d.Stats() != e.Stats() {
		t.Fatalf("decoder %+v, encoder %+v", d.Stats(), e.Stats())
	}

	// The phrase that did not fit is still sent as a literal.
	if code := compressed[2*MaxCapacity]; code != 0xFF {
		t.Fatalf("unit after the dictionary filled has code %#x, want 0xFF", code)
	}
}

func TestCorruptStream(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"first unit has prefix", []byte{0x05, 0x41}, ErrInvalidIndex},
		{"prefix not inserted yet", []byte{0xFF, 'a', 0x02, 'b'}, ErrInvalidIndex},
		{"largest code", []byte{0xFF, 'a', 0xFE, 'b'}, ErrInvalidIndex},
		{"final code not inserted", []byte{0xFF, 'a', 0x02}, ErrInvalidIndex},
		{"lone literal code", []byte{0xFF, 'a', 0xFF}, ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(tt.data)
			if !errors.Is(err, tt.err) {
				t.Fatalf("got error %v, want %v", err, tt.err)
			}
		})
	}
}

func TestCorruptStreamRandom(t *testing.T) {
	// Decoding garbage must fail cleanly or succeed, never panic.
	for seed := int64(0); seed < 50; seed++ {
		Decompress(randomBytes(1000, seed))
	}
}

func TestEncodeBlocks(t *testing.T) {
	data := testText(30000)
	want := Compress(data)
	for _, blockSize := range []int{1, 2, 3, 7, 100, 4096} {
		var e Encoder
		var got []byte
		for p := data; len(p) > 0; {
			n := blockSize
			if n > len(p) {
				n = len(p)
			}
			got = e.Encode(got, p[:n], false)
			p = p[n:]
		}
		got = e.Encode(got, nil, true)
		if !bytes.Equal(got, want) {
			t.Errorf("block size %d: output differs from one-shot encoding", blockSize)
		}
	}
}

func TestDecodeBlocks(t *testing.T) {
	data := testText(30000)
	compressed := Compress(data)
	for _, blockSize := range []int{1, 2, 3, 7, 100, 4096} {
		var d Decoder
		var got []byte
		var err error
		for p := compressed; len(p) > 0; {
			n := blockSize
			if n > len(p) {
				n = len(p)
			}
			got, err = d.Decode(got, p[:n], n == len(p))
			if err != nil {
				t.Fatalf("block size %d: %v", blockSize, err)
			}
			p = p[n:]
		}
		if !bytes.Equal(got, data) {
			t.Errorf("block size %d: decompressed output doesn't match", blockSize)
		}
	}
}

func TestDecoderPhraseLengths(t *testing.T) {
	var d Decoder
	if _, err := d.Decode(nil, Compress(testText(10000)), true); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < d.dict.Len(); i++ {
		n := 0
		for cur := i; cur != None; cur = d.dict.entries[cur].Parent {
			n++
		}
		recorded, err := d.dict.PhraseLen(i)
		if err != nil {
			t.Fatal(err)
		}
		if n != recorded {
			t.Fatalf("entry %d: phrase length %d, recorded %d", i, n, recorded)
		}
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("hello"), uint8(0))
	f.Add([]byte(""), uint8(0))
	f.Add([]byte("AAAAAAAAAAAAAAAA"), uint8(1))
	f.Add([]byte("abcabcabcabcabc"), uint8(3))
	f.Add([]byte("null\x00byte\xff"), uint8(254))

	f.Fuzz(func(t *testing.T, data []byte, capacity uint8) {
		testRoundTrip(t, data, int(capacity))
	})
}
