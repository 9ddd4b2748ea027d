package lz78

import (
	"fmt"
	"slices"
)

const (
	// None is the parent of an entry that is a single byte.
	None = -1

	// NotFound is returned by FindLongest when no entry matches.
	NotFound = -1
)

// An Entry is one node of the phrase trie. The phrase it represents is the
// phrase of Parent followed by Byte.
type Entry struct {
	Parent int
	Byte   byte
}

// A Dictionary is an append-only table of phrases. The index of an entry
// never changes, since it is what goes on the wire.
//
// The zero value is an empty dictionary with MaxCapacity slots.
type Dictionary struct {
	entries []Entry

	// lengths[i] is the length of the phrase of entries[i].
	lengths []int

	capacity int
}

// NewDictionary returns an empty dictionary with room for capacity entries.
// Capacities outside [1, MaxCapacity] are replaced by MaxCapacity.
func NewDictionary(capacity int) *Dictionary {
	capacity = normalizeCapacity(capacity)
	return &Dictionary{
		entries:  make([]Entry, 0, capacity),
		lengths:  make([]int, 0, capacity),
		capacity: capacity,
	}
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.entries) }

// Cap returns the maximum number of entries.
func (d *Dictionary) Cap() int { return normalizeCapacity(d.capacity) }

// Full reports whether another Insert would fail.
func (d *Dictionary) Full() bool { return len(d.entries) >= d.Cap() }

// Reset removes all entries, keeping the capacity.
func (d *Dictionary) Reset() {
	d.entries = d.entries[:0]
	d.lengths = d.lengths[:0]
}

// FindLongest returns the index of the entry whose phrase is exactly seq,
// or NotFound. Newer entries are checked first.
func (d *Dictionary) FindLongest(seq []byte) int {
	if len(seq) == 0 {
		return NotFound
	}
	for i := len(d.entries) - 1; i >= 0; i-- {
		if d.lengths[i] == len(seq) && d.matches(i, seq) {
			return i
		}
	}
	return NotFound
}

// matches walks len(seq) steps up the parent chain from i, comparing seq
// from the end, and requires the chain to stop exactly at the root.
func (d *Dictionary) matches(i int, seq []byte) bool {
	cur := i
	for j := len(seq) - 1; j >= 0; j-- {
		if cur == None {
			return false
		}
		e := d.entries[cur]
		if e.Byte != seq[j] {
			return false
		}
		cur = e.Parent
	}
	return cur == None
}

// Resolve returns the entry at index.
func (d *Dictionary) Resolve(index int) (Entry, error) {
	if err := d.check(index); err != nil {
		return Entry{}, err
	}
	return d.entries[index], nil
}

// PhraseLen returns the length of the phrase of the entry at index.
func (d *Dictionary) PhraseLen(index int) (int, error) {
	if err := d.check(index); err != nil {
		return 0, err
	}
	return d.lengths[index], nil
}

func (d *Dictionary) check(index int) error {
	if index < 0 || index >= len(d.entries) {
		return fmt.Errorf("%w: %d (have %d entries)", ErrInvalidIndex, index, len(d.entries))
	}
	return nil
}

// Insert appends the phrase of parent followed by b, and returns its index.
// parent must be None or an existing index. When the dictionary is full,
// Insert returns None and ErrDictionaryFull.
func (d *Dictionary) Insert(parent int, b byte) (int, error) {
	n := 1
	if parent != None {
		if err := d.check(parent); err != nil {
			return None, fmt.Errorf("parent: %w", err)
		}
		n = d.lengths[parent] + 1
	}
	if d.Full() {
		return None, ErrDictionaryFull
	}
	d.entries = append(d.entries, Entry{Parent: parent, Byte: b})
	d.lengths = append(d.lengths, n)
	return len(d.entries) - 1, nil
}

// AppendPhrase appends the phrase of the entry at index to dst.
func (d *Dictionary) AppendPhrase(dst []byte, index int) ([]byte, error) {
	if err := d.check(index); err != nil {
		return dst, err
	}
	n := d.lengths[index]
	start := len(dst)
	dst = slices.Grow(dst, n)[:start+n]

	// The chain yields the phrase back to front.
	pos := start + n
	for cur := index; cur != None; cur = d.entries[cur].Parent {
		pos--
		dst[pos] = d.entries[cur].Byte
	}
	return dst, nil
}
