package http11

import "errors"

// Parser errors. Any of these is a protocol error: the connection is closed
// without a meaningful response and the failure only gets logged.
var (
	// ErrInvalidRequestLine indicates the request line is malformed.
	// Request line format: METHOD TARGET HTTP/VERSION\r\n
	ErrInvalidRequestLine = errors.New("http11: invalid request line")

	// ErrInvalidMethod indicates a method other than GET.
	// The server serves static files only; nothing else is interpreted.
	ErrInvalidMethod = errors.New("http11: unsupported HTTP method")

	// ErrInvalidProtocol indicates a protocol version other than HTTP/1.1.
	ErrInvalidProtocol = errors.New("http11: invalid or unsupported protocol version")
)
