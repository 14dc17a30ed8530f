package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ReplaceWords rewrites every word of text that matches a replacement key.
// Matching is case-insensitive on the word with surrounding punctuation
// stripped; the punctuation and all whitespace are preserved as-is, and a
// capitalized source word capitalizes its replacement ("Once" -> "Twice").
// Keys must be lowercase.
func ReplaceWords(text string, replacements map[string]string) string {
	var b strings.Builder
	b.Grow(len(text))

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		b.WriteString(replaceWord(text[start:end], replacements))
		start = -1
	}

	for i, r := range text {
		if unicode.IsSpace(r) {
			flush(i)
			b.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(text))

	return b.String()
}

// WordReplacer applies ReplaceWords over a stream of text chunks. A trailing
// partial word is withheld until the whitespace completing it arrives or
// Flush is called, so a replacement target split across chunks is still
// rewritten.
type WordReplacer struct {
	replacements map[string]string
	buf          string
}

// NewWordReplacer creates a streaming replacer. Keys must be lowercase.
func NewWordReplacer(replacements map[string]string) *WordReplacer {
	return &WordReplacer{replacements: replacements}
}

// Push appends a chunk and returns the rewritten text that is complete so
// far, possibly empty.
func (r *WordReplacer) Push(chunk string) string {
	r.buf += chunk

	// Everything up to the last whitespace is complete.
	idx := strings.LastIndexFunc(r.buf, unicode.IsSpace)
	if idx < 0 {
		return ""
	}
	_, size := utf8.DecodeRuneInString(r.buf[idx:])
	complete := r.buf[:idx+size]
	r.buf = r.buf[idx+size:]

	return ReplaceWords(complete, r.replacements)
}

// Flush rewrites and returns the withheld tail, resetting the replacer.
func (r *WordReplacer) Flush() string {
	tail := r.buf
	r.buf = ""
	if tail == "" {
		return ""
	}
	return ReplaceWords(tail, r.replacements)
}

func replaceWord(word string, replacements map[string]string) string {
	core := strings.TrimFunc(word, unicode.IsPunct)
	if core == "" {
		return word
	}

	repl, ok := replacements[strings.ToLower(core)]
	if !ok {
		return word
	}

	// Carry the source word's capitalization onto the replacement.
	first, _ := utf8.DecodeRuneInString(core)
	if unicode.IsUpper(first) {
		r, size := utf8.DecodeRuneInString(repl)
		repl = string(unicode.ToUpper(r)) + repl[size:]
	}

	prefix := word[:strings.Index(word, core)]
	suffix := word[strings.Index(word, core)+len(core):]
	return prefix + repl + suffix
}
