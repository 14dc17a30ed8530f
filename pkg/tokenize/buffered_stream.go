package tokenize

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/realtime-ai/tokenstream/pkg/queue"
)

// BufferedStreamConfig holds configuration for a BufferedTokenStream.
type BufferedStreamConfig struct {
	// TokenizeFunc is the batch tokenizer driving boundary decisions.
	// Required.
	TokenizeFunc TokenizeFunc

	// MinTokenLen is the minimum accumulated length (in runes) before a
	// group of tokens is emitted on the push path. Minimum 1.
	MinTokenLen int

	// MinCtxLen is the minimum buffered length (in runes) before
	// re-tokenization is attempted at all; below it the boundaries the
	// tokenizer would report are not trustworthy yet. Minimum 1.
	MinCtxLen int
}

// BufferedTokenStream turns a batch tokenizer into an incremental one.
//
// A producer calls PushText with chunks as they arrive, then EndInput (or
// Close for abrupt shutdown). A consumer loops on Next. The producer-side
// methods are synchronous and must be called from a single goroutine in
// order; Next may run concurrently with them.
type BufferedTokenStream struct {
	out         *queue.Chan[TokenData]
	tokenizeFnc TokenizeFunc
	minTokenLen int
	minCtxLen   int

	segmentID string
	buf       string
}

// NewBufferedTokenStream creates a stream. The segment id for output emitted
// before the first flush is generated here.
func NewBufferedTokenStream(config BufferedStreamConfig) *BufferedTokenStream {
	if config.MinTokenLen < 1 {
		config.MinTokenLen = 1
	}
	if config.MinCtxLen < 1 {
		config.MinCtxLen = 1
	}

	return &BufferedTokenStream{
		out:         queue.NewChan[TokenData](),
		tokenizeFnc: config.TokenizeFunc,
		minTokenLen: config.MinTokenLen,
		minCtxLen:   config.MinCtxLen,
		segmentID:   newSegmentID(),
	}
}

// NewBufferedSentenceStream creates a stream preset for sentence tokenizers.
func NewBufferedSentenceStream(tokenizeFnc TokenizeFunc, minTokenLen, minCtxLen int) *BufferedTokenStream {
	return NewBufferedTokenStream(BufferedStreamConfig{
		TokenizeFunc: tokenizeFnc,
		MinTokenLen:  minTokenLen,
		MinCtxLen:    minCtxLen,
	})
}

// NewBufferedWordStream creates a stream preset for word tokenizers.
func NewBufferedWordStream(tokenizeFnc TokenizeFunc, minTokenLen, minCtxLen int) *BufferedTokenStream {
	return NewBufferedTokenStream(BufferedStreamConfig{
		TokenizeFunc: tokenizeFnc,
		MinTokenLen:  minTokenLen,
		MinCtxLen:    minCtxLen,
	})
}

// PushText appends a chunk of input and emits every token group that now has
// enough trailing context to be stable.
//
// The final token of each re-tokenization pass is always withheld: more input
// could still change how it splits. It is released by a later PushText that
// moves the boundary forward, or by Flush.
func (s *BufferedTokenStream) PushText(text string) error {
	if err := s.checkNotClosed(); err != nil {
		return err
	}

	s.buf += text
	if utf8.RuneCountInString(s.buf) < s.minCtxLen {
		// Not enough context yet; the expected steady state for early
		// chunks, not an error.
		return nil
	}

	tokens := s.tokenizeFnc(s.buf)

	var accTokens []Token
	var acc string
	for len(tokens) > 1 {
		tok := tokens[0]
		tokens = tokens[1:]

		if acc != "" {
			acc += " "
		}
		acc += tok.Text
		accTokens = append(accTokens, tok)

		if utf8.RuneCountInString(acc) < s.minTokenLen {
			continue
		}

		if err := s.emit(TokenData{Token: acc, SegmentID: s.segmentID}); err != nil {
			return err
		}

		if tok.HasRange {
			// The offset is the single source of truth: drop
			// everything up to the end of the token just emitted.
			s.buf = sliceFrom(s.buf, tok.End)
		} else {
			// No offsets: relocate each accumulated token by
			// substring search. A miss falls back to position 0;
			// this path is approximate when token text recurs
			// earlier in the buffer.
			for _, t := range accTokens {
				i := strings.Index(s.buf, t.Text)
				if i < 0 {
					i = 0
				}
				s.buf = strings.TrimLeftFunc(sliceFrom(s.buf, i+len(t.Text)), unicode.IsSpace)
			}
		}

		accTokens = accTokens[:0]
		acc = ""
	}

	return nil
}

// Flush forces out whatever the buffer holds as a single event, regardless of
// MinTokenLen, then starts a new segment. Flushing an empty buffer is a
// no-op: nothing is emitted and the segment id is not rotated.
func (s *BufferedTokenStream) Flush() error {
	if err := s.checkNotClosed(); err != nil {
		return err
	}

	if s.buf != "" {
		var out string
		if tokens := s.tokenizeFnc(s.buf); len(tokens) > 0 {
			texts := make([]string, len(tokens))
			for i, tok := range tokens {
				texts[i] = tok.Text
			}
			out = strings.Join(texts, " ")
		} else {
			out = s.buf
		}

		if err := s.emit(TokenData{Token: out, SegmentID: s.segmentID}); err != nil {
			return err
		}
		s.segmentID = newSegmentID()
	}

	s.buf = ""
	return nil
}

// EndInput flushes the remaining buffer and permanently closes the stream.
// No PushText or Flush call is valid afterwards.
func (s *BufferedTokenStream) EndInput() error {
	if err := s.Flush(); err != nil {
		return err
	}
	s.out.Close()
	return nil
}

// Close closes the stream without flushing, discarding any unemitted partial
// buffer. Events already emitted remain receivable. Idempotent.
func (s *BufferedTokenStream) Close() error {
	s.out.Close()
	return nil
}

// Next returns the next emitted event in order. It blocks while the stream is
// open with no event pending, returns io.EOF once the stream is closed and
// drained, and returns ctx.Err() if ctx is cancelled while waiting (the
// pending event, if one arrives, stays queued for the next call).
func (s *BufferedTokenStream) Next(ctx context.Context) (TokenData, error) {
	ev, err := s.out.Recv(ctx)
	if errors.Is(err, queue.ErrClosed) {
		return TokenData{}, io.EOF
	}
	return ev, err
}

func (s *BufferedTokenStream) emit(ev TokenData) error {
	if err := s.out.Send(ev); err != nil {
		return ErrStreamClosed
	}
	return nil
}

func (s *BufferedTokenStream) checkNotClosed() error {
	if s.out.Closed() {
		return ErrStreamClosed
	}
	return nil
}

// sliceFrom is s[i:] with i clamped into range. Tokenizer offsets are taken
// as given rather than validated, so a malformed End must not panic the
// stream; past-the-end slicing yields "" just like the degenerate search
// fallback would.
func sliceFrom(s string, i int) string {
	if i < 0 {
		i = 0
	}
	if i > len(s) {
		i = len(s)
	}
	return s[i:]
}

func newSegmentID() string {
	return "seg_" + uuid.New().String()[:8]
}
