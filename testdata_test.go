package lz78

import (
	"bytes"
	"math/rand"
	"strings"
)

var words = strings.Fields(`the of and to in is that it was for on are as with his they at be this
from have or by one had not but what all were when we there can an your which their said if do
will each about how up out them then she many some so these would other into has more her two like`)

// testText returns n bytes of English-like text.
func testText(n int) []byte {
	r := rand.New(rand.NewSource(1))
	b := new(bytes.Buffer)
	for b.Len() < n {
		b.WriteString(words[r.Intn(len(words))])
		if r.Intn(12) == 0 {
			b.WriteString(".\n")
		} else {
			b.WriteByte(' ')
		}
	}
	return b.Bytes()[:n]
}

func randomBytes(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	r.Read(b)
	return b
}
