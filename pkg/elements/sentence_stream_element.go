// Package elements provides pipeline processing elements.
//
// SentenceStreamElement segments streaming text into sentences, typically
// placed between an LLM element producing token deltas and a TTS element
// that wants complete sentences as early as possible.
//
// Main features:
//   - Incremental segmentation: text arrives in arbitrary chunks
//   - Abbreviation, decimal, URL and ellipsis handling
//   - Minimum sentence length to avoid very short speech fragments
//   - Flush and end-of-input control messages
//
// Usage:
//
//	elem := NewSentenceStreamElement(SentenceStreamConfig{
//	    MinSentenceLen: 20,
//	})
//	p := pipeline.NewPipeline("tts")
//	p.AddElement(elem)
package elements

import (
	"github.com/realtime-ai/tokenstream/pkg/pipeline"
	"github.com/realtime-ai/tokenstream/pkg/tokenize"
	"github.com/realtime-ai/tokenstream/pkg/tokenize/basic"
)

var _ pipeline.Element = (*SentenceStreamElement)(nil)

// SentenceStreamConfig holds configuration for the sentence stream element.
type SentenceStreamConfig struct {
	// MinSentenceLen is the minimum emitted sentence length in runes.
	// Shorter sentences are merged into the following one. Default 20.
	MinSentenceLen int

	// ContextLen is the amount of text buffered before segmentation is
	// attempted. Default 10.
	ContextLen int
}

// SentenceStreamElement emits one message per detected sentence.
type SentenceStreamElement struct {
	*streamElement
}

// NewSentenceStreamElement creates a sentence stream element.
func NewSentenceStreamElement(config SentenceStreamConfig) *SentenceStreamElement {
	tok := basic.NewSentenceTokenizer(&basic.SentenceTokenizerConfig{
		MinSentenceLen:   config.MinSentenceLen,
		StreamContextLen: config.ContextLen,
	})
	return &SentenceStreamElement{
		streamElement: newStreamElement(
			"SentenceStreamElement",
			pipeline.TextMediaTypeSentence,
			func() *tokenize.BufferedTokenStream { return tok.Stream() },
		),
	}
}
