package http11

import (
	"bytes"
	"strings"
)

// Request is the parsed first line of an HTTP request. The server interprets
// nothing beyond it: no headers, no body.
type Request struct {
	// Method is the HTTP method token as it appeared on the wire.
	Method string

	// RawTarget is the request target before percent-decoding.
	RawTarget string

	// Path is the percent-decoded target. All validation downstream of the
	// parser operates on this form.
	Path string

	// Proto is the version part after "HTTP/", e.g. "1.1".
	Proto string
}

// ParseRequest extracts and validates the request line from one raw read.
// The design assumes the whole line arrived in a single receive; there is no
// partial-request reassembly.
//
// The target is percent-decoded before the method and version checks so that
// every later stage sees the decoded form. Only "GET" and "HTTP/1.1" are
// accepted; for those failures the populated Request is returned alongside
// the error so callers can log what the client attempted.
func ParseRequest(buf []byte) (Request, error) {
	line := buf
	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		line = buf[:i]
	}
	line = bytes.TrimRight(line, "\r")

	fields := bytes.Fields(line)
	if len(fields) != 3 {
		return Request{}, ErrInvalidRequestLine
	}
	proto := string(fields[2])
	if !strings.HasPrefix(proto, protoPrefix) {
		return Request{}, ErrInvalidRequestLine
	}

	req := Request{
		Method:    string(fields[0]),
		RawTarget: string(fields[1]),
		Proto:     strings.TrimPrefix(proto, protoPrefix),
	}
	req.Path = percentDecode(req.RawTarget)

	if req.Method != methodGET {
		return req, ErrInvalidMethod
	}
	if req.Proto != proto11 {
		return req, ErrInvalidProtocol
	}
	return req, nil
}

// percentDecode resolves %XX escapes to raw bytes. Decoding is lenient:
// a '%' not followed by two hex digits is kept literally rather than
// rejected, matching best-effort URI unescaping.
func percentDecode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) {
			hi, ok1 := unhex(s[i+1])
			lo, ok2 := unhex(s[i+2])
			if ok1 && ok2 {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
