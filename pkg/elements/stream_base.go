package elements

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/realtime-ai/tokenstream/pkg/pipeline"
	"github.com/realtime-ai/tokenstream/pkg/tokenize"
	"github.com/realtime-ai/tokenstream/pkg/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// streamElement is the shared core of the segmenting elements. It feeds
// incoming text into a BufferedTokenStream and forwards every emitted
// token downstream as its own message.
type streamElement struct {
	*pipeline.BaseElement

	name      string
	textType  pipeline.TextMediaType
	newStream func() *tokenize.BufferedTokenStream

	stream *tokenize.BufferedTokenStream
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	sessionID string
}

func newStreamElement(name string, textType pipeline.TextMediaType, newStream func() *tokenize.BufferedTokenStream) *streamElement {
	return &streamElement{
		BaseElement: pipeline.NewBaseElement(name, 100),
		name:        name,
		textType:    textType,
		newStream:   newStream,
	}
}

// Start creates a fresh token stream and begins processing
func (e *streamElement) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.stream = e.newStream()

	e.wg.Add(2)
	go func() {
		defer e.wg.Done()
		e.processLoop(ctx)
	}()
	go func() {
		defer e.wg.Done()
		e.emitLoop(ctx)
	}()

	log.Printf("[%s] Started", e.name)
	return nil
}

// Stop aborts processing without flushing buffered text.
func (e *streamElement) Stop() error {
	if e.cancel != nil {
		e.cancel()
		e.stream.Close()
		e.wg.Wait()
		e.cancel = nil
	}

	log.Printf("[%s] Stopped", e.name)
	return nil
}

// processLoop handles incoming messages
func (e *streamElement) processLoop(ctx context.Context) {
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
				e.setSessionID(msg.SessionID)
				if err := e.stream.PushText(string(msg.TextData.Data)); err != nil {
					e.publishError(err)
				}
			case msg.Type == pipeline.MsgTypeFlush:
				if err := e.stream.Flush(); err != nil {
					e.publishError(err)
					continue
				}
				e.publish(pipeline.EventStreamFlushed, pipeline.SegmentPayload{
					SessionID: e.getSessionID(),
				})
			case msg.Type == pipeline.MsgTypeEndOfInput:
				if err := e.stream.EndInput(); err != nil {
					e.publishError(err)
				}
			default:
				// Pass through messages we do not handle
				select {
				case e.BaseElement.OutChan <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// emitLoop drains the token stream and forwards every token downstream.
func (e *streamElement) emitLoop(ctx context.Context) {
	for {
		td, err := e.stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			e.publish(pipeline.EventStreamClosed, e.getSessionID())
			eos := &pipeline.PipelineMessage{
				Type:      pipeline.MsgTypeEndOfInput,
				SessionID: e.getSessionID(),
				Timestamp: time.Now(),
			}
			select {
			case e.BaseElement.OutChan <- eos:
			case <-ctx.Done():
			}
			return
		}
		if err != nil {
			// Context cancelled, element is stopping
			return
		}
		e.emit(ctx, td)
	}
}

func (e *streamElement) emit(ctx context.Context, td tokenize.TokenData) {
	_, span := trace.StartSpan(ctx, e.name+".emit", oteltrace.WithAttributes(
		trace.SegmentAttrs(td.SegmentID, len(td.Token))...,
	))
	defer span.End()

	sessionID := e.getSessionID()
	now := time.Now()
	msg := &pipeline.PipelineMessage{
		Type:      pipeline.MsgTypeData,
		SessionID: sessionID,
		SegmentID: td.SegmentID,
		Timestamp: now,
		TextData: &pipeline.TextData{
			Data:      []byte(td.Token),
			TextType:  e.textType.String(),
			Timestamp: now,
		},
	}

	select {
	case e.BaseElement.OutChan <- msg:
	case <-ctx.Done():
		return
	}

	e.publish(pipeline.EventSegmentEmitted, pipeline.SegmentPayload{
		SessionID: sessionID,
		SegmentID: td.SegmentID,
		Text:      td.Token,
	})
}

func (e *streamElement) publish(t pipeline.EventType, payload interface{}) {
	if bus := e.Bus(); bus != nil {
		bus.Publish(pipeline.Event{
			Type:      t,
			Timestamp: time.Now(),
			Payload:   payload,
		})
	}
}

func (e *streamElement) publishError(err error) {
	log.Printf("[%s] %v", e.name, err)
	e.publish(pipeline.EventError, err.Error())
}

func (e *streamElement) setSessionID(id string) {
	if id == "" {
		return
	}
	e.mu.Lock()
	e.sessionID = id
	e.mu.Unlock()
}

func (e *streamElement) getSessionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionID
}
