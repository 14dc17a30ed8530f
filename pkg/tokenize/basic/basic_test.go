package basic

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtime-ai/tokenstream/pkg/tokenize"
)

const sentenceText = "Hi! " +
	"Pion is a toolkit for live audio and video applications and services. " +
	"R.T.C stands for Real-Time Communication... again R.T.C. " +
	"Mr. Theo is testing the sentence tokenizer. " +
	"This is a test. Another test. " +
	"A short sentence. " +
	"A longer sentence that is longer than the previous sentence. " +
	"f(x) = x * 2.54 + 42. " +
	"Hey! Hi! Hello! "

var sentencesExpectedMin20 = []string{
	"Hi! Pion is a toolkit for live audio and video applications and services.",
	"R.T.C stands for Real-Time Communication... again R.T.C.",
	"Mr. Theo is testing the sentence tokenizer.",
	"This is a test. Another test.",
	"A short sentence. A longer sentence that is longer than the previous sentence.",
	"f(x) = x * 2.54 + 42.",
	"Hey! Hi! Hello!",
}

const wordsText = "This is a test. Blabla another test! multiple consecutive spaces:     done"

var wordsExpected = []string{
	"This", "is", "a", "test", "Blabla", "another", "test",
	"multiple", "consecutive", "spaces", "done",
}

// pushChunked feeds text in cycling chunk sizes of 1, 2 and 4 bytes, the
// worst case for boundary stability, then ends input.
func pushChunked(t *testing.T, s *tokenize.BufferedTokenStream, text string) {
	t.Helper()

	pattern := []int{1, 2, 4}
	for i := 0; text != ""; i++ {
		n := pattern[i%len(pattern)]
		if n > len(text) {
			n = len(text)
		}
		require.NoError(t, s.PushText(text[:n]))
		text = text[n:]
	}
	require.NoError(t, s.EndInput())
}

func drainTokens(t *testing.T, s *tokenize.BufferedTokenStream) []string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var tokens []string
	for {
		ev, err := s.Next(ctx)
		if err == io.EOF {
			return tokens
		}
		require.NoError(t, err)
		tokens = append(tokens, ev.Token)
	}
}

func TestSentenceTokenizer_Batch(t *testing.T) {
	tok := NewSentenceTokenizer(nil)
	assert.Equal(t, sentencesExpectedMin20, tok.Tokenize(sentenceText))
}

func TestSentenceTokenizer_Streamed(t *testing.T) {
	stream := NewSentenceTokenizer(nil).Stream()
	pushChunked(t, stream, sentenceText)
	assert.Equal(t, sentencesExpectedMin20, drainTokens(t, stream))
}

func TestSplitSentences_Ranges(t *testing.T) {
	tokens := SplitSentences(sentenceText, 20)
	require.Len(t, tokens, len(sentencesExpectedMin20))

	prevEnd := 0
	for _, tok := range tokens {
		require.True(t, tok.HasRange)
		assert.GreaterOrEqual(t, tok.Start, prevEnd)
		assert.Greater(t, tok.End, tok.Start)
		assert.LessOrEqual(t, tok.End, len(sentenceText))
		prevEnd = tok.End
	}
}

func TestSplitSentences_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "plain sentences",
			input:    "The weather is nice today. Tomorrow it will rain heavily.",
			expected: []string{"The weather is nice today.", "Tomorrow it will rain heavily."},
		},
		{
			name:     "title abbreviation",
			input:    "Dr. Smith examined the patient carefully. Mrs. Jones waited outside patiently.",
			expected: []string{"Dr. Smith examined the patient carefully.", "Mrs. Jones waited outside patiently."},
		},
		{
			name:     "decimal number",
			input:    "The value of pi is roughly 3.14 in most cases. Everyone knows that already.",
			expected: []string{"The value of pi is roughly 3.14 in most cases.", "Everyone knows that already."},
		},
		{
			name:     "ellipsis continues",
			input:    "He paused for a long while... then he finally spoke his mind.",
			expected: []string{"He paused for a long while... then he finally spoke his mind."},
		},
		{
			name:     "initials",
			input:    "John D. Rockefeller founded Standard Oil. The company grew very quickly.",
			expected: []string{"John D. Rockefeller founded Standard Oil.", "The company grew very quickly."},
		},
		{
			name:     "question and exclamation",
			input:    "Is this working correctly now? It absolutely is working correctly!",
			expected: []string{"Is this working correctly now?", "It absolutely is working correctly!"},
		},
		{
			name:     "trailing text without terminator",
			input:    "A complete sentence comes first. then a trailing fragment",
			expected: []string{"A complete sentence comes first.", "then a trailing fragment"},
		},
		{
			name:     "url is not a boundary",
			input:    "Visit https://example.org. Then tell me what you think about it.",
			expected: []string{"Visit https://example.org. Then tell me what you think about it."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := SplitSentences(tt.input, 20)
			texts := make([]string, len(tokens))
			for i, tok := range tokens {
				texts[i] = tok.Text
			}
			assert.Equal(t, tt.expected, texts)
		})
	}
}

func TestWordTokenizer_Batch(t *testing.T) {
	tok := NewWordTokenizer(true)
	assert.Equal(t, wordsExpected, tok.Tokenize(wordsText))
}

func TestWordTokenizer_Streamed(t *testing.T) {
	stream := NewWordTokenizer(true).Stream()
	pushChunked(t, stream, wordsText)
	assert.Equal(t, wordsExpected, drainTokens(t, stream))
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		ignorePunct bool
		expected    []string
	}{
		{
			name:        "keep punctuation",
			input:       "Hello, world! Done.",
			ignorePunct: false,
			expected:    []string{"Hello,", "world!", "Done."},
		},
		{
			name:        "strip punctuation",
			input:       "Hello, world! Done.",
			ignorePunct: true,
			expected:    []string{"Hello", "world", "Done"},
		},
		{
			name:        "inner punctuation survives",
			input:       "I'm re-testing e.g. this.",
			ignorePunct: true,
			expected:    []string{"I'm", "re-testing", "e.g", "this"},
		},
		{
			name:        "punctuation-only token dropped",
			input:       "a - b",
			ignorePunct: true,
			expected:    []string{"a", "b"},
		},
		{
			name:        "empty input",
			input:       "   ",
			ignorePunct: true,
			expected:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := SplitWords(tt.input, tt.ignorePunct)
			var texts []string
			for _, tok := range tokens {
				texts = append(texts, tok.Text)
			}
			assert.Equal(t, tt.expected, texts)
		})
	}
}

func TestSplitWords_Ranges(t *testing.T) {
	const text = "one  two\tthree\n"
	tokens := SplitWords(text, false)
	require.Len(t, tokens, 3)

	for _, tok := range tokens {
		assert.Equal(t, tok.Text, text[tok.Start:tok.End])
	}
}
