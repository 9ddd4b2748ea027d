package lz78

import "errors"

// Stats describes the progress of an Encoder or Decoder.
type Stats struct {
	// Units is the number of code units (pairs and the final lone code)
	// written or read so far.
	Units int

	// Entries is the number of dictionary entries.
	Entries int

	// Full is set once an insertion failed because the dictionary was
	// full. From then on the dictionary does not change.
	Full bool
}

// An Encoder turns raw bytes into an LZ78 code stream. A stream may be
// encoded in several blocks; the phrase being matched at the end of one
// block continues into the next.
//
// The zero value is ready to use.
type Encoder struct {
	// Capacity is the number of dictionary entries to use; 0 means
	// MaxCapacity. The decoder must use the same value.
	Capacity int

	dict *Dictionary

	// pending holds the bytes of the phrase attempt in progress.
	// It grows as long as the phrase keeps matching.
	pending []byte

	// match is the dictionary index of pending, when pending is not empty.
	match int

	stats Stats
}

// Reset discards the dictionary and any pending phrase, preparing the
// Encoder to be used with a new stream.
func (e *Encoder) Reset() {
	if e.dict != nil && e.dict.Cap() == normalizeCapacity(e.Capacity) {
		e.dict.Reset()
	} else {
		e.dict = nil
	}
	e.pending = e.pending[:0]
	e.match = 0
	e.stats = Stats{}
}

// Stats returns counters for the current stream.
func (e *Encoder) Stats() Stats {
	s := e.stats
	if e.dict != nil {
		s.Entries = e.dict.Len()
	}
	return s
}

// Encode appends the codes for src to dst and returns dst. If lastBlock is
// true, the stream is terminated; otherwise a phrase still being matched at
// the end of src is kept for the next call.
func (e *Encoder) Encode(dst []byte, src []byte, lastBlock bool) []byte {
	if e.dict == nil {
		e.dict = NewDictionary(e.Capacity)
	}

	for _, c := range src {
		e.pending = append(e.pending, c)
		if i := e.dict.FindLongest(e.pending); i != NotFound {
			e.match = i
			continue
		}

		if len(e.pending) == 1 {
			dst = append(dst, literalCode, c)
			e.insert(None, c)
		} else {
			dst = append(dst, byte(e.match+1), c)
			e.insert(e.match, c)
		}
		e.stats.Units++
		e.pending = e.pending[:0]
	}

	if lastBlock && len(e.pending) > 0 {
		// The input ended on a known phrase; there is no literal to send.
		dst = append(dst, byte(e.match+1))
		e.stats.Units++
		e.pending = e.pending[:0]
	}

	return dst
}

func (e *Encoder) insert(parent int, c byte) {
	i, err := e.dict.Insert(parent, c)
	switch {
	case err == nil:
		debugf("lz78: encoder added entry %d = (%d, %#02x)", i, parent, c)
	case errors.Is(err, ErrDictionaryFull):
		if !e.stats.Full {
			debugf("lz78: encoder dictionary full after %d units", e.stats.Units)
		}
		e.stats.Full = true
	default:
		// Only indexes returned by FindLongest are used as parents.
		panic(err)
	}
}
