package basic

import (
	"strings"
	"unicode"

	"github.com/realtime-ai/tokenstream/pkg/tokenize"
)

// SplitWords splits text into whitespace-delimited words with byte offsets.
// When ignorePunctuation is set, leading and trailing punctuation is stripped
// from the token text ("test." becomes "test"); a token that was nothing but
// punctuation is dropped. Ranges always cover the full run, punctuation
// included.
func SplitWords(text string, ignorePunctuation bool) []tokenize.Token {
	var tokens []tokenize.Token

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		word := text[start:end]
		if ignorePunctuation {
			word = strings.TrimFunc(word, unicode.IsPunct)
		}
		if word != "" {
			tokens = append(tokens, tokenize.NewRangedToken(word, start, end))
		}
		start = -1
	}

	for i, r := range text {
		if unicode.IsSpace(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(text))

	return tokens
}
