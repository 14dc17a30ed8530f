package tokenize

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bareWords splits on whitespace and reports no offsets.
func bareWords(text string) []Token {
	var tokens []Token
	for _, w := range strings.Fields(text) {
		tokens = append(tokens, NewToken(w))
	}
	return tokens
}

// rangedWords splits on whitespace and reports byte offsets.
func rangedWords(text string) []Token {
	var tokens []Token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, NewRangedToken(text[start:i], start, i))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, NewRangedToken(text[start:], start, len(text)))
	}
	return tokens
}

// drain reads events until the stream reports end-of-stream.
func drain(t *testing.T, s *BufferedTokenStream) []TokenData {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var events []TokenData
	for {
		ev, err := s.Next(ctx)
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func tokenTexts(events []TokenData) []string {
	texts := make([]string, len(events))
	for i, ev := range events {
		texts[i] = ev.Token
	}
	return texts
}

func TestBufferedTokenStream_SpecScenario(t *testing.T) {
	// Whitespace tokenizer, MinTokenLen 4, MinCtxLen 1, input "ab cd ef":
	// the push accumulates "ab", then "ab cd" reaches length 4 and is
	// emitted ("ef" stays withheld); EndInput flushes "ef".
	for name, fn := range map[string]TokenizeFunc{
		"bare":   bareWords,
		"ranged": rangedWords,
	} {
		t.Run(name, func(t *testing.T) {
			s := NewBufferedWordStream(fn, 4, 1)
			require.NoError(t, s.PushText("ab cd ef"))
			require.NoError(t, s.EndInput())

			events := drain(t, s)
			assert.Equal(t, []string{"ab cd", "ef"}, tokenTexts(events))

			// Both events precede the first flush's rotation, so
			// they share one segment id.
			require.Len(t, events, 2)
			assert.Equal(t, events[0].SegmentID, events[1].SegmentID)
		})
	}
}

func TestBufferedTokenStream_MinContextDefersTokenization(t *testing.T) {
	s := NewBufferedWordStream(bareWords, 1, 10)

	// Below MinCtxLen nothing is tokenized, even though "ab " alone is a
	// complete word.
	require.NoError(t, s.PushText("ab "))
	require.NoError(t, s.PushText("cd "))

	// "ab cd ef gh" crosses the context threshold; the last token is
	// withheld.
	require.NoError(t, s.PushText("ef gh"))
	require.NoError(t, s.EndInput())

	events := drain(t, s)
	assert.Equal(t, []string{"ab", "cd", "ef", "gh"}, tokenTexts(events))
}

func TestBufferedTokenStream_LastTokenAlwaysWithheld(t *testing.T) {
	s := NewBufferedWordStream(bareWords, 1, 1)
	require.NoError(t, s.PushText("standalone"))

	// A single-token pass never emits, regardless of MinTokenLen.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// A later flush releases it.
	require.NoError(t, s.EndInput())
	assert.Equal(t, []string{"standalone"}, tokenTexts(drain(t, s)))
}

func TestBufferedTokenStream_MultipleEmissionsPerPush(t *testing.T) {
	s := NewBufferedWordStream(bareWords, 1, 1)
	require.NoError(t, s.PushText("one two three four"))
	require.NoError(t, s.EndInput())

	// MinTokenLen 1 finalizes each non-withheld token individually, all
	// within the single push.
	assert.Equal(t, []string{"one", "two", "three", "four"}, tokenTexts(drain(t, s)))
}

func TestBufferedTokenStream_MinTokenLenGroupsTokens(t *testing.T) {
	s := NewBufferedWordStream(rangedWords, 10, 1)
	require.NoError(t, s.PushText("a bb cc dd ee ff gg hh"))
	require.NoError(t, s.EndInput())

	events := drain(t, s)
	for i, ev := range events {
		if i < len(events)-1 {
			assert.GreaterOrEqual(t, len(ev.Token), 10, "push-path emission %q below MinTokenLen", ev.Token)
		}
	}
	assert.Equal(t, "a bb cc dd", events[0].Token)
}

func TestBufferedTokenStream_Reassembly(t *testing.T) {
	const text = "the quick brown fox jumps over the lazy dog and keeps on running"
	batch := strings.Fields(text)

	// Any chunking of the input must reproduce the batch tokenization
	// once all emitted tokens are concatenated.
	for _, pattern := range [][]int{{1}, {1, 2, 4}, {3, 5}, {len(text)}} {
		s := NewBufferedWordStream(bareWords, 1, 1)

		rest := text
		for i := 0; rest != ""; i++ {
			n := pattern[i%len(pattern)]
			if n > len(rest) {
				n = len(rest)
			}
			require.NoError(t, s.PushText(rest[:n]))
			rest = rest[n:]
		}
		require.NoError(t, s.EndInput())

		var got []string
		for _, ev := range drain(t, s) {
			got = append(got, strings.Fields(ev.Token)...)
		}
		assert.Equal(t, batch, got, "chunk pattern %v", pattern)
	}
}

func TestBufferedTokenStream_SegmentRotationOnFlush(t *testing.T) {
	s := NewBufferedWordStream(bareWords, 1, 1)

	require.NoError(t, s.PushText("first utterance here "))
	require.NoError(t, s.Flush())
	require.NoError(t, s.PushText("second utterance here "))
	require.NoError(t, s.EndInput())

	events := drain(t, s)
	require.Len(t, events, 6)

	// "first", "utterance", then the flush-forced "here" belong to one
	// segment; everything after the flush belongs to another.
	first := events[0].SegmentID
	for _, ev := range events[:3] {
		assert.Equal(t, first, ev.SegmentID)
	}
	second := events[3].SegmentID
	assert.NotEqual(t, first, second)
	for _, ev := range events[3:] {
		assert.Equal(t, second, ev.SegmentID)
	}
}

func TestBufferedTokenStream_EmptyFlushDoesNotRotate(t *testing.T) {
	s := NewBufferedWordStream(bareWords, 1, 1)

	require.NoError(t, s.PushText("hello world "))
	require.NoError(t, s.Flush())

	// Flushing an empty buffer emits nothing and must not rotate the id
	// again.
	require.NoError(t, s.Flush())
	require.NoError(t, s.Flush())

	require.NoError(t, s.PushText("more text here "))
	require.NoError(t, s.EndInput())

	events := drain(t, s)
	require.Len(t, events, 5)
	assert.Equal(t, []string{"hello", "world", "more", "text", "here"}, tokenTexts(events))
	assert.Equal(t, events[0].SegmentID, events[1].SegmentID)
	assert.NotEqual(t, events[1].SegmentID, events[2].SegmentID)
	assert.Equal(t, events[2].SegmentID, events[4].SegmentID)
}

func TestBufferedTokenStream_FlushEmitsRawBufferWhenTokenizerYieldsNothing(t *testing.T) {
	none := func(string) []Token { return nil }
	s := NewBufferedTokenStream(BufferedStreamConfig{TokenizeFunc: none, MinTokenLen: 1, MinCtxLen: 1})

	require.NoError(t, s.PushText("   raw tail   "))
	require.NoError(t, s.EndInput())

	assert.Equal(t, []string{"   raw tail   "}, tokenTexts(drain(t, s)))
}

func TestBufferedTokenStream_OffsetAdvancement(t *testing.T) {
	// With ranged tokens the buffer is sliced at the emitted token's End
	// offset; the leading space survives until the next tokenization.
	s := NewBufferedWordStream(rangedWords, 4, 1)
	require.NoError(t, s.PushText("ab cd ef gh"))
	require.NoError(t, s.EndInput())

	assert.Equal(t, []string{"ab cd", "ef gh"}, tokenTexts(drain(t, s)))
}

func TestBufferedTokenStream_RelocationMissFallsBackToStart(t *testing.T) {
	// A tokenizer that rewrites token text defeats substring relocation;
	// the documented fallback advances from position 0 instead of failing.
	upper := func(text string) []Token {
		var tokens []Token
		for _, w := range strings.Fields(text) {
			tokens = append(tokens, NewToken(strings.ToUpper(w)))
		}
		return tokens
	}

	s := NewBufferedTokenStream(BufferedStreamConfig{TokenizeFunc: upper, MinTokenLen: 4, MinCtxLen: 1})
	require.NoError(t, s.PushText("ab cd ef"))
	require.NoError(t, s.EndInput())

	assert.Equal(t, []string{"AB CD", "EF"}, tokenTexts(drain(t, s)))
}

func TestBufferedTokenStream_MixedTokenForms(t *testing.T) {
	// Bare and ranged tokens may be mixed in one result; advancement
	// branches on the form of the token that triggered the emission.
	mixed := func(text string) []Token {
		tokens := rangedWords(text)
		for i := range tokens {
			if i%2 == 0 {
				tokens[i] = NewToken(tokens[i].Text)
			}
		}
		return tokens
	}

	s := NewBufferedTokenStream(BufferedStreamConfig{TokenizeFunc: mixed, MinTokenLen: 4, MinCtxLen: 1})
	require.NoError(t, s.PushText("ab cd ef gh"))
	require.NoError(t, s.EndInput())

	assert.Equal(t, []string{"ab cd", "ef gh"}, tokenTexts(drain(t, s)))
}

func TestBufferedTokenStream_UseAfterClose(t *testing.T) {
	t.Run("after EndInput", func(t *testing.T) {
		s := NewBufferedWordStream(bareWords, 1, 1)
		require.NoError(t, s.PushText("hello there "))
		require.NoError(t, s.EndInput())

		assert.ErrorIs(t, s.PushText("more"), ErrStreamClosed)
		assert.ErrorIs(t, s.Flush(), ErrStreamClosed)
		assert.ErrorIs(t, s.EndInput(), ErrStreamClosed)

		// Events emitted before the close are still drained.
		assert.Equal(t, []string{"hello", "there"}, tokenTexts(drain(t, s)))
	})

	t.Run("after Close", func(t *testing.T) {
		s := NewBufferedWordStream(bareWords, 1, 1)
		require.NoError(t, s.PushText("partial tail"))
		require.NoError(t, s.Close())
		require.NoError(t, s.Close())

		assert.ErrorIs(t, s.PushText("more"), ErrStreamClosed)

		// Close discards the unflushed buffer: only the event emitted
		// before closing would be visible, and here there was none.
		assert.Empty(t, drain(t, s))
	})
}

func TestBufferedTokenStream_NextCancellation(t *testing.T) {
	s := NewBufferedWordStream(bareWords, 1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := s.Next(ctx)
		errc <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-errc, context.Canceled)

	// The cancelled pull consumed nothing; later events are intact.
	require.NoError(t, s.PushText("hello there "))
	require.NoError(t, s.EndInput())
	assert.Equal(t, []string{"hello", "there"}, tokenTexts(drain(t, s)))
}

func TestBufferedTokenStream_OutOfRangeOffsetsTolerated(t *testing.T) {
	// Offsets are taken as given; a tokenizer reporting End past the
	// buffer length must not panic the stream.
	overshoot := func(text string) []Token {
		tokens := rangedWords(text)
		for i := range tokens {
			tokens[i].End = len(text) + 100
		}
		return tokens
	}

	s := NewBufferedTokenStream(BufferedStreamConfig{TokenizeFunc: overshoot, MinTokenLen: 1, MinCtxLen: 1})
	require.NoError(t, s.PushText("ab cd ef"))
	require.NoError(t, s.EndInput())

	events := drain(t, s)
	require.NotEmpty(t, events)
	assert.Equal(t, "ab", events[0].Token)
}
