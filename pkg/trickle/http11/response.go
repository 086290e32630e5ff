package http11

import "github.com/valyala/bytebufferpool"

// ComposeFile builds a 200 response carrying raw file bytes into buf.
//
// The response reuses the fixed header block of the canned responses and adds
// the Content-Type resolved from the file's extension. No Content-Length is
// written: the connection close mandated by Connection: Close delimits the
// body.
func ComposeFile(buf *bytebufferpool.ByteBuffer, contentType string, body []byte) {
	buf.Write(status200Bytes)
	buf.Write(fixedHeaders)
	buf.Write(contentTypePrefix)
	buf.WriteString(contentType)
	buf.Write(crlfBytes)
	buf.Write(crlfBytes)
	buf.Write(body)
}
