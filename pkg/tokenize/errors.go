package tokenize

import "errors"

var (
	// ErrStreamClosed is returned by PushText, Flush and EndInput after the
	// stream has been closed. This is a caller bug, not a runtime fault.
	ErrStreamClosed = errors.New("tokenize: stream closed")
)
