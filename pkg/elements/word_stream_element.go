package elements

import (
	"github.com/realtime-ai/tokenstream/pkg/pipeline"
	"github.com/realtime-ai/tokenstream/pkg/tokenize"
	"github.com/realtime-ai/tokenstream/pkg/tokenize/basic"
)

var _ pipeline.Element = (*WordStreamElement)(nil)

// WordStreamElement emits one message per word, useful for karaoke style
// transcript alignment where words should appear as soon as they are
// complete.
type WordStreamElement struct {
	*streamElement
}

// NewWordStreamElement creates a word stream element. When
// ignorePunctuation is true, leading and trailing punctuation is stripped
// from emitted words.
func NewWordStreamElement(ignorePunctuation bool) *WordStreamElement {
	tok := basic.NewWordTokenizer(ignorePunctuation)
	return &WordStreamElement{
		streamElement: newStreamElement(
			"WordStreamElement",
			pipeline.TextMediaTypeWord,
			func() *tokenize.BufferedTokenStream { return tok.Stream() },
		),
	}
}
