package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// TextData carries a chunk of text through the pipeline.
type TextData struct {
	Data      []byte
	TextType  string // "text/x-raw", "text/x-sentence", "text/x-word", etc.
	Timestamp time.Time
}

type PipelineMessageType int

const (
	// MsgTypeData carries text payload in TextData.
	MsgTypeData PipelineMessageType = iota
	// MsgTypeFlush asks downstream elements to emit whatever they buffer.
	MsgTypeFlush
	// MsgTypeEndOfInput marks the end of the input stream. Elements flush
	// and close their outputs after seeing it.
	MsgTypeEndOfInput
	// MsgTypeCommand carries element-specific control payload in Metadata.
	MsgTypeCommand
)

type PipelineMessage struct {
	Type PipelineMessageType

	// SessionID identifies the conversation this message belongs to.
	SessionID string

	// SegmentID identifies the emission segment, set by segmenting elements.
	SegmentID string

	Timestamp time.Time

	TextData *TextData

	Metadata interface{}
}

func (p *PipelineMessage) String() string {
	return fmt.Sprintf("PipelineMessage{Type: %d, SessionID: %s, SegmentID: %s, Timestamp: %s}",
		p.Type, p.SessionID, p.SegmentID, p.Timestamp)
}

// Pipeline chains elements into a processing graph and owns the event bus
// they publish on.
type Pipeline struct {
	sync.Mutex
	name     string
	bus      Bus
	elements []Element
}

func NewPipeline(name string) *Pipeline {
	return &Pipeline{
		name:     name,
		bus:      NewEventBus(),
		elements: []Element{},
	}
}

func (p *Pipeline) AddElement(element Element) {
	p.Lock()
	defer p.Unlock()
	element.SetBus(p.bus)
	p.elements = append(p.elements, element)
}

func (p *Pipeline) AddElements(elements []Element) {
	p.Lock()
	defer p.Unlock()
	for _, element := range elements {
		element.SetBus(p.bus)
	}
	p.elements = append(p.elements, elements...)
}

// Link forwards a.Out() into b.In() until a's output closes or the returned
// unlink function is called.
func (p *Pipeline) Link(a, b Element) func() {
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case msg, ok := <-a.Out():
				if !ok {
					return
				}
				select {
				case b.In() <- msg:
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

func (p *Pipeline) Bus() Bus {
	return p.bus
}

// Push feeds a message to the first element. It never blocks: if the input
// channel is full the message is dropped and logged.
func (p *Pipeline) Push(msg *PipelineMessage) {
	if len(p.elements) == 0 {
		return
	}
	select {
	case p.elements[0].In() <- msg:
	default:
		log.Printf("[Pipeline] %s: input channel full, dropping message", p.name)
	}
}

// Pull receives the next message from the last element.
func (p *Pipeline) Pull() *PipelineMessage {
	if len(p.elements) == 0 {
		return nil
	}
	return <-p.elements[len(p.elements)-1].Out()
}

func (p *Pipeline) Start(ctx context.Context) error {
	for _, e := range p.elements {
		if err := e.Start(ctx); err != nil {
			return err
		}
	}
	return p.bus.Start(ctx)
}

func (p *Pipeline) Stop() error {
	p.Lock()
	defer p.Unlock()
	// Stop in reverse order so downstream elements drain first.
	for i := len(p.elements) - 1; i >= 0; i-- {
		if err := p.elements[i].Stop(); err != nil {
			return err
		}
	}
	p.bus.Stop()
	return nil
}
