package tokenize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const replaceText = "This is a test. Hello world, I'm creating this agents..     framework. Once again " +
	"framework.  A.B.C"

const replaceExpected = "This is a test. Hello universe, I'm creating this assistants..     library. Twice again " +
	"library.  A.B.C.D"

var replacements = map[string]string{
	"world":     "universe",
	"framework": "library",
	"a.b.c":     "A.B.C.D",
	"once":      "twice",
	"agents":    "assistants",
}

func TestReplaceWords(t *testing.T) {
	assert.Equal(t, replaceExpected, ReplaceWords(replaceText, replacements))
}

func TestReplaceWords_NoMatches(t *testing.T) {
	const text = "nothing to see here,  move along"
	assert.Equal(t, text, ReplaceWords(text, replacements))
}

func TestWordReplacer_Streamed(t *testing.T) {
	r := NewWordReplacer(replacements)

	// Chunk sizes cycling 1/2/4 split every replacement target across
	// chunk boundaries at some point.
	var out strings.Builder
	pattern := []int{1, 2, 4}
	rest := replaceText
	for i := 0; rest != ""; i++ {
		n := pattern[i%len(pattern)]
		if n > len(rest) {
			n = len(rest)
		}
		out.WriteString(r.Push(rest[:n]))
		rest = rest[n:]
	}
	out.WriteString(r.Flush())

	assert.Equal(t, replaceExpected, out.String())
}

func TestWordReplacer_FlushEmpty(t *testing.T) {
	r := NewWordReplacer(replacements)
	// A trailing space completes the word immediately.
	assert.Equal(t, "word ", r.Push("word "))
	assert.Equal(t, "", r.Flush())
}
