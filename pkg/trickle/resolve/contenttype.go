package resolve

// contentTypes is the extension allowlist. The lookup is the only gate
// between a request path and the filesystem: extensions outside this table
// are refused without touching the disk.
var contentTypes = map[string]string{
	"html": "text/html",
	"js":   "application/javascript",
	"png":  "image/png",
	"wasm": "application/wasm",
	"pck":  "application/octet-stream",
}

// ContentType returns the MIME type bound to ext and whether ext is
// allowlisted.
func ContentType(ext string) (string, bool) {
	ct, ok := contentTypes[ext]
	return ct, ok
}
