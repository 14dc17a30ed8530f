// Package tokenize provides streaming text tokenization for realtime
// pipelines.
//
// A batch tokenizer only finds correct boundaries when it sees enough
// surrounding context ("Mr." must not end a sentence), while realtime callers
// want output as soon as possible. BufferedTokenStream reconciles the two: it
// re-tokenizes accumulated text as chunks arrive, emits tokens once they have
// enough trailing context to be stable, and never re-emits already delivered
// text.
//
// Usage:
//
//	stream := tokenize.NewBufferedSentenceStream(basic.NewSentenceTokenizer(nil).TokenizeRanged, 20, 10)
//	go func() {
//	    for {
//	        ev, err := stream.Next(ctx)
//	        if err != nil {
//	            return
//	        }
//	        fmt.Println(ev.SegmentID, ev.Token)
//	    }
//	}()
//	stream.PushText("Hello wor")
//	stream.PushText("ld. How are you?")
//	stream.EndInput()
package tokenize

// Token is a single unit produced by a TokenizeFunc — a word, a sentence, or
// any fragment the tokenizer's policy defines.
//
// Tokens come in two forms. Ranged tokens carry the byte offsets of the token
// within the tokenized string, which lets the stream advance its buffer
// exactly. Bare tokens carry only text; the stream then relocates them by
// substring search, which is approximate when the same text occurs more than
// once. Prefer ranged tokens whenever the tokenizer can report offsets.
//
// Offsets are trusted as given: the stream does not validate that
// 0 <= Start <= End <= len(text).
type Token struct {
	Text string

	// Start and End are byte offsets of Text within the tokenized string.
	// They are meaningful only when HasRange is true.
	Start int
	End   int

	HasRange bool
}

// NewToken returns a bare token.
func NewToken(text string) Token {
	return Token{Text: text}
}

// NewRangedToken returns a token with explicit byte offsets.
func NewRangedToken(text string, start, end int) Token {
	return Token{Text: text, Start: start, End: end, HasRange: true}
}

// TokenizeFunc splits a complete string into an ordered list of tokens.
// Implementations must not reorder tokens; bare and ranged tokens may be
// mixed within one result.
type TokenizeFunc func(text string) []Token

// TokenData is one finalized unit delivered to the consumer.
type TokenData struct {
	// Token is the finalized text, accumulated tokens joined by single
	// spaces.
	Token string

	// SegmentID groups output belonging to the same higher-level unit.
	// All events between two flushes share one id; a flush that emitted
	// starts a new one.
	SegmentID string
}

// SentenceTokenizer splits text into sentences, in batch or as a stream.
type SentenceTokenizer interface {
	// Tokenize splits a complete text into sentences.
	Tokenize(text string) []string

	// Stream returns a buffered stream that applies the same sentence
	// policy incrementally.
	Stream() *BufferedTokenStream
}

// WordTokenizer splits text into words, in batch or as a stream.
type WordTokenizer interface {
	// Tokenize splits a complete text into words.
	Tokenize(text string) []string

	// Stream returns a buffered stream that applies the same word policy
	// incrementally.
	Stream() *BufferedTokenStream
}
