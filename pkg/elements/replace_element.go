package elements

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/realtime-ai/tokenstream/pkg/pipeline"
	"github.com/realtime-ai/tokenstream/pkg/tokenize"
)

var _ pipeline.Element = (*TextReplaceElement)(nil)

// TextReplaceElement rewrites words in streaming text, e.g. expanding
// abbreviations before a TTS element pronounces them. Replacement keys are
// matched case-insensitively and capitalization of the source word is
// carried over.
type TextReplaceElement struct {
	*pipeline.BaseElement

	replacements map[string]string
	replacer     *tokenize.WordReplacer

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTextReplaceElement creates a text replace element.
func NewTextReplaceElement(replacements map[string]string) *TextReplaceElement {
	return &TextReplaceElement{
		BaseElement:  pipeline.NewBaseElement("TextReplaceElement", 100),
		replacements: replacements,
	}
}

func (e *TextReplaceElement) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.replacer = tokenize.NewWordReplacer(e.replacements)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.processLoop(ctx)
	}()

	log.Printf("[TextReplaceElement] Started (%d replacements)", len(e.replacements))
	return nil
}

func (e *TextReplaceElement) Stop() error {
	if e.cancel != nil {
		e.cancel()
		e.wg.Wait()
		e.cancel = nil
	}

	log.Println("[TextReplaceElement] Stopped")
	return nil
}

func (e *TextReplaceElement) processLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-e.BaseElement.InChan:
			if !ok {
				return
			}
			switch {
			case msg.Type == pipeline.MsgTypeData && msg.TextData != nil:
				// Push releases text only up to the last completed word,
				// the rest stays buffered until more text arrives.
				out := e.replacer.Push(string(msg.TextData.Data))
				if out == "" {
					continue
				}
				e.send(ctx, msg, out)
			case msg.Type == pipeline.MsgTypeFlush, msg.Type == pipeline.MsgTypeEndOfInput:
				if tail := e.replacer.Flush(); tail != "" {
					e.send(ctx, msg, tail)
				}
				select {
				case e.BaseElement.OutChan <- msg:
				case <-ctx.Done():
					return
				}
			default:
				select {
				case e.BaseElement.OutChan <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

func (e *TextReplaceElement) send(ctx context.Context, in *pipeline.PipelineMessage, text string) {
	out := &pipeline.PipelineMessage{
		Type:      pipeline.MsgTypeData,
		SessionID: in.SessionID,
		SegmentID: in.SegmentID,
		Timestamp: time.Now(),
		TextData: &pipeline.TextData{
			Data:      []byte(text),
			TextType:  pipeline.TextMediaTypeRaw.String(),
			Timestamp: time.Now(),
		},
	}
	select {
	case e.BaseElement.OutChan <- out:
	case <-ctx.Done():
	}
}
