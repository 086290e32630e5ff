// Package http11 implements the minimal HTTP/1.1 wire surface the poll server
// speaks: one-line request parsing and fixed-header response composition.
package http11

// Status lines - pre-compiled with CRLF for single-write composition
var (
	status200Bytes = []byte("HTTP/1.1 200 OK\r\n")
	status403Bytes = []byte("HTTP/1.1 403 Forbidden\r\n")
	status404Bytes = []byte("HTTP/1.1 404 Not Found\r\n")
)

// fixedHeaders is carried by every response. Connection: Close doubles as the
// end-of-body marker since no Content-Length is ever emitted; the
// cross-origin-isolation pair is required for SharedArrayBuffer-backed wasm
// clients.
var fixedHeaders = []byte("Connection: Close\r\n" +
	"Access-Control-Allow-Origin: *\r\n" +
	"Cross-Origin-Opener-Policy: same-origin\r\n" +
	"Cross-Origin-Embedder-Policy: require-corp\r\n" +
	"Cache-Control: max-age=15\r\n")

// Protocol constants
var (
	crlfBytes         = []byte("\r\n")
	contentTypePrefix = []byte("Content-Type: ")
)

const (
	methodGET   = "GET"
	protoPrefix = "HTTP/"
	proto11     = "1.1"
)

// Canned response bodies
const (
	forbiddenBody = "<!DOCTYPE html><html><head><title>403</title></head>" +
		"<body><h1>403 Forbidden</h1></body></html>"
	notFoundBody = "<!DOCTYPE html><html><head><title>404</title></head>" +
		"<body><h1>404 Not Found</h1></body></html>"
	dummyIndexBody = "<!DOCTYPE html><html><head><title>trickle</title></head>" +
		"<body><h1>No index.html yet</h1>" +
		"<p>The web root has no index.html. Drop your exported files into the " +
		"web root and reload this page.</p></body></html>"
	unconfiguredBody = "<!DOCTYPE html><html><head><title>trickle</title></head>" +
		"<body><h1>No web root configured</h1>" +
		"<p>Set a web root folder and restart the server.</p></body></html>"
)

// Canned responses - fixed byte constants, precomputed once. Each carries the
// status line, the fixed header block and an HTML body.
var (
	// RespForbidden answers traversal attempts, pattern mismatches and
	// extensions outside the allowlist.
	RespForbidden = canned(status403Bytes, forbiddenBody)

	// RespNotFound answers requests for allowlisted files absent on disk.
	RespNotFound = canned(status404Bytes, notFoundBody)

	// RespDummyIndex answers a root-index request when the web root has no
	// index.html yet. Deliberately a 200: the client asked for the entry
	// page and gets a usable placeholder.
	RespDummyIndex = canned(status200Bytes, dummyIndexBody)

	// RespUnconfigured answers connections handled while no web root is
	// configured. Configuration validation refuses that state up front, so
	// this is a defensive internal-error page.
	RespUnconfigured = canned(status200Bytes, unconfiguredBody)
)

func canned(status []byte, body string) []byte {
	b := make([]byte, 0, len(status)+len(fixedHeaders)+len(crlfBytes)+len(body))
	b = append(b, status...)
	b = append(b, fixedHeaders...)
	b = append(b, crlfBytes...)
	b = append(b, body...)
	return b
}
