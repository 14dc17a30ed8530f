// Package basic provides rule-based sentence and word tokenizers with no
// external model or dictionary, suitable as defaults for streaming
// pipelines.
//
// Usage:
//
//	tok := basic.NewSentenceTokenizer(nil)
//	sentences := tok.Tokenize(transcript) // batch
//	stream := tok.Stream()                // incremental
package basic

import (
	"github.com/realtime-ai/tokenstream/pkg/tokenize"
)

// Interface conformance.
var (
	_ tokenize.SentenceTokenizer = (*SentenceTokenizer)(nil)
	_ tokenize.WordTokenizer     = (*WordTokenizer)(nil)
)

// SentenceTokenizerConfig configures the rule-based sentence tokenizer.
type SentenceTokenizerConfig struct {
	// MinSentenceLen is the minimum sentence length in runes; shorter
	// sentences are merged into the following one. Default 20.
	MinSentenceLen int

	// StreamContextLen is the minimum buffered length before the
	// streaming form attempts tokenization. Default 10.
	StreamContextLen int
}

// SentenceTokenizer splits text into sentences using punctuation rules.
type SentenceTokenizer struct {
	config SentenceTokenizerConfig
}

// NewSentenceTokenizer creates a sentence tokenizer. A nil config selects
// the defaults.
func NewSentenceTokenizer(config *SentenceTokenizerConfig) *SentenceTokenizer {
	cfg := SentenceTokenizerConfig{}
	if config != nil {
		cfg = *config
	}
	if cfg.MinSentenceLen <= 0 {
		cfg.MinSentenceLen = 20
	}
	if cfg.StreamContextLen <= 0 {
		cfg.StreamContextLen = 10
	}
	return &SentenceTokenizer{config: cfg}
}

// Tokenize splits a complete text into sentences.
func (t *SentenceTokenizer) Tokenize(text string) []string {
	tokens := t.TokenizeRanged(text)
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

// TokenizeRanged splits a complete text into sentence tokens with byte
// offsets, the form the streaming engine prefers.
func (t *SentenceTokenizer) TokenizeRanged(text string) []tokenize.Token {
	return SplitSentences(text, t.config.MinSentenceLen)
}

// Stream returns a buffered stream applying this tokenizer incrementally.
func (t *SentenceTokenizer) Stream() *tokenize.BufferedTokenStream {
	return tokenize.NewBufferedSentenceStream(
		t.TokenizeRanged, t.config.MinSentenceLen, t.config.StreamContextLen)
}

// WordTokenizer splits text into whitespace-delimited words.
type WordTokenizer struct {
	ignorePunctuation bool
}

// NewWordTokenizer creates a word tokenizer. With ignorePunctuation set,
// surrounding punctuation is stripped from each word.
func NewWordTokenizer(ignorePunctuation bool) *WordTokenizer {
	return &WordTokenizer{ignorePunctuation: ignorePunctuation}
}

// Tokenize splits a complete text into words.
func (t *WordTokenizer) Tokenize(text string) []string {
	tokens := SplitWords(text, t.ignorePunctuation)
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

// Stream returns a buffered stream applying this tokenizer incrementally.
func (t *WordTokenizer) Stream() *tokenize.BufferedTokenStream {
	// Bare tokens on purpose: one push can finalize several words, and
	// ranges computed at the start of a pass no longer line up with the
	// buffer once it has been cut mid-pass. Substring search re-locates
	// each word against the buffer as it currently stands.
	return tokenize.NewBufferedWordStream(func(text string) []tokenize.Token {
		ranged := SplitWords(text, t.ignorePunctuation)
		tokens := make([]tokenize.Token, len(ranged))
		for i, tok := range ranged {
			tokens[i] = tokenize.NewToken(tok.Text)
		}
		return tokens
	}, 1, 1)
}
