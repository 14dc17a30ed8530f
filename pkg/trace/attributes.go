package trace

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys used throughout the application
const (
	// Pipeline attributes
	AttrPipelineName    = "pipeline.name"
	AttrPipelineElement = "pipeline.element"
	AttrSessionID       = "session.id"
	AttrMessageType     = "message.type"

	// Segmentation attributes
	AttrSegmentID      = "segment.id"
	AttrTokenLength    = "token.length"
	AttrTokenizerKind  = "tokenizer.kind"
	AttrBufferLength   = "buffer.length"
	AttrTextLength     = "text.length"
	AttrTextType       = "text.type"

	// Error attributes
	AttrErrorType    = "error.type"
	AttrErrorMessage = "error.message"
)

// Helper functions to create common attributes

// PipelineAttrs creates attributes for pipeline operations
func PipelineAttrs(pipelineName, elementName string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrPipelineName, pipelineName),
		attribute.String(AttrPipelineElement, elementName),
	}
}

// SessionAttrs creates attributes for session information
func SessionAttrs(sessionID string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrSessionID, sessionID),
	}
}

// SegmentAttrs creates attributes for an emitted token
func SegmentAttrs(segmentID string, tokenLength int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrSegmentID, segmentID),
		attribute.Int(AttrTokenLength, tokenLength),
	}
}

// TokenizerAttrs creates attributes for tokenizer operations
func TokenizerAttrs(kind string, textLength int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrTokenizerKind, kind),
		attribute.Int(AttrTextLength, textLength),
	}
}

// ErrorAttrs creates attributes for errors
func ErrorAttrs(errType, errMsg string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrErrorType, errType),
		attribute.String(AttrErrorMessage, errMsg),
	}
}
