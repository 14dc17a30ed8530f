package basic

import (
	"strings"
	"unicode"

	"github.com/realtime-ai/tokenstream/pkg/tokenize"
)

// Words whose trailing period does not end a sentence.
var nonBreakingWords = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true,
	"sr": true, "jr": true, "st": true, "vs": true, "etc": true,
	"inc": true, "ltd": true, "corp": true, "co": true, "no": true,
	"vol": true, "pg": true, "pp": true, "fig": true, "dept": true,
	"est": true, "approx": true, "govt": true, "min": true, "max": true,
	"e.g": true, "i.e": true, "a.m": true, "p.m": true,
	"u.s": true, "u.k": true, "u.n": true, "ph.d": true,
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…' ||
		r == '。' || r == '！' || r == '？'
}

// SplitSentences splits text into sentences, merging short sentences forward
// until each emitted token is at least minSentenceLen runes (the trailing
// remainder may be shorter). Tokens carry byte offsets into text.
//
// Boundary rules: a run of terminator punctuation ends a sentence only when
// followed by whitespace or end of text, an ellipsis ("...") continues the
// sentence, and a single period does not end one after a title abbreviation,
// an initial, or a URL.
func SplitSentences(text string, minSentenceLen int) []tokenize.Token {
	if minSentenceLen <= 0 {
		minSentenceLen = 20
	}

	rs := []rune(text)
	// Byte offset of each rune, so token ranges can index the original
	// string.
	offs := make([]int, len(rs)+1)
	for i, r := range rs {
		offs[i+1] = offs[i] + len(string(r))
	}

	type span struct {
		start, end int // rune indices, start already past leading spaces
	}
	var spans []span

	sentStart := 0
	i := 0
	for i < len(rs) {
		if !isTerminator(rs[i]) {
			i++
			continue
		}

		j := i
		for j < len(rs) && isTerminator(rs[j]) {
			j++
		}

		if boundary := sentenceBoundary(rs, sentStart, i, j); !boundary {
			i = j
			continue
		}

		start := sentStart
		for start < j && unicode.IsSpace(rs[start]) {
			start++
		}
		if start < j {
			spans = append(spans, span{start: start, end: j})
		}
		sentStart = j
		i = j
	}

	// Trailing text without a terminator becomes a final span.
	start, end := sentStart, len(rs)
	for start < end && unicode.IsSpace(rs[start]) {
		start++
	}
	for end > start && unicode.IsSpace(rs[end-1]) {
		end--
	}
	if start < end {
		spans = append(spans, span{start: start, end: end})
	}

	// Merge short sentences forward until the group reaches
	// minSentenceLen.
	var tokens []tokenize.Token
	var parts []string
	groupStart := -1
	groupLen := 0
	for _, s := range spans {
		if groupStart < 0 {
			groupStart = s.start
		}
		part := string(rs[s.start:s.end])
		if len(parts) > 0 {
			groupLen++ // joining space
		}
		parts = append(parts, part)
		groupLen += s.end - s.start

		if groupLen >= minSentenceLen {
			tokens = append(tokens, tokenize.NewRangedToken(
				strings.Join(parts, " "), offs[groupStart], offs[s.end]))
			parts = parts[:0]
			groupStart = -1
			groupLen = 0
		}
	}
	if len(parts) > 0 {
		last := spans[len(spans)-1]
		tokens = append(tokens, tokenize.NewRangedToken(
			strings.Join(parts, " "), offs[groupStart], offs[last.end]))
	}

	return tokens
}

// sentenceBoundary reports whether the terminator run rs[i:j] ends the
// sentence that started at rune index sentStart.
func sentenceBoundary(rs []rune, sentStart, i, j int) bool {
	// Mid-word punctuation never ends a sentence: decimals (2.54), dotted
	// acronyms (R.T.C), URLs (example.com).
	if j < len(rs) && !unicode.IsSpace(rs[j]) {
		return false
	}

	// An ellipsis trails off rather than ending the sentence; this is
	// what keeps "Communication... again" together. Only a run that is
	// entirely dots counts ("?!" still ends the sentence).
	if j-i >= 2 {
		dots := true
		for k := i; k < j; k++ {
			if rs[k] != '.' {
				dots = false
				break
			}
		}
		if dots {
			return false
		}
	}

	if j-i == 1 && rs[i] == '.' {
		word := lastWord(rs[sentStart:i])
		if word == "" {
			return true
		}
		if len([]rune(word)) == 1 && unicode.IsLetter([]rune(word)[0]) {
			// An initial, as in "John D. Rockefeller".
			return false
		}
		if nonBreakingWords[strings.ToLower(strings.TrimSuffix(word, "."))] {
			return false
		}
		if strings.Contains(word, "://") || strings.HasPrefix(strings.ToLower(word), "www.") {
			return false
		}
	}

	return true
}

// lastWord returns the final whitespace-separated word of rs.
func lastWord(rs []rune) string {
	end := len(rs)
	for end > 0 && unicode.IsSpace(rs[end-1]) {
		end--
	}
	start := end
	for start > 0 && !unicode.IsSpace(rs[start-1]) {
		start--
	}
	return string(rs[start:end])
}
