package pipeline

// TextMediaType labels the payload of a TextData chunk.
type TextMediaType string

const (
	// Unsegmented text (default)
	TextMediaTypeRaw TextMediaType = "text/x-raw"
	// One sentence per message
	TextMediaTypeSentence TextMediaType = "text/x-sentence"
	// One word per message
	TextMediaTypeWord TextMediaType = "text/x-word"
	// Partial text still subject to change
	TextMediaTypePartial TextMediaType = "text/x-partial"
)

// String returns the string representation of TextMediaType
func (tmt TextMediaType) String() string {
	return string(tmt)
}
