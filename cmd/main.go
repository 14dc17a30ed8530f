package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/realtime-ai/tokenstream/pkg/tokenize"
	"github.com/realtime-ai/tokenstream/pkg/tokenize/basic"
)

// Reads text from stdin and prints segments as soon as they are complete.
// With -words each word is printed on its own line, otherwise sentences.
func main() {
	var (
		words          = flag.Bool("words", false, "segment into words instead of sentences")
		minSentenceLen = flag.Int("min-sentence-len", 20, "minimum sentence length in runes")
		ignorePunct    = flag.Bool("ignore-punct", false, "strip punctuation from words")
	)
	flag.Parse()

	var stream *tokenize.BufferedTokenStream
	if *words {
		stream = basic.NewWordTokenizer(*ignorePunct).Stream()
	} else {
		stream = basic.NewSentenceTokenizer(&basic.SentenceTokenizerConfig{
			MinSentenceLen: *minSentenceLen,
		}).Stream()
	}

	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			td, err := stream.Next(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				log.Printf("stream error: %v", err)
				return
			}
			fmt.Printf("[%s] %s\n", td.SegmentID, td.Token)
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := stream.PushText(scanner.Text() + "\n"); err != nil {
			log.Fatalf("push: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("stdin: %v", err)
	}

	if err := stream.EndInput(); err != nil {
		log.Fatalf("end input: %v", err)
	}
	<-done
}
