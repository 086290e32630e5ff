// Package resolve guards untrusted request paths and maps them onto the
// restricted file set under the configured web root.
//
// The gate is deliberately narrow: a path is served only if it names exactly
// one basename.extension pair directly under the web root, and only if the
// extension is in the fixed allowlist. Everything else is refused before any
// filesystem access happens.
package resolve

import (
	"errors"
	"strings"
)

// Resolution errors. Each maps to a 403 at the wire level; the distinction
// exists so callers can log what was refused and why.
var (
	// ErrTraversal indicates the decoded path contained "/../".
	ErrTraversal = errors.New("resolve: path traversal attempt")

	// ErrBadPattern indicates the path is not a single /basename.extension
	// segment.
	ErrBadPattern = errors.New("resolve: path is not a single basename.extension segment")

	// ErrUnknownExtension indicates the extension is not in the allowlist.
	// Unknown extensions are never probed on disk.
	ErrUnknownExtension = errors.New("resolve: extension not in allowlist")
)

// Target is a validated filesystem mapping for one request path.
type Target struct {
	// Path is the webroot-joined filesystem path to read.
	Path string

	// Ext is the allowlisted extension, without the dot.
	Ext string

	// ContentType is the MIME type bound to Ext.
	ContentType string

	// RootIndex reports that the request named the root index page, either
	// as "/" or "/index.html". A missing root index gets the placeholder
	// page instead of a 404.
	RootIndex bool
}

// Resolve validates the decoded request path and maps it to a file under
// webroot. The checks run in a fixed order: traversal guard, root rewrite,
// single-segment pattern, extension allowlist. The webroot itself is trusted
// configuration and is not canonicalized.
//
// The traversal guard matches the literal substring "/../" in the decoded
// path. On its own that is a narrow check, but the pattern stage already
// rejects every path with more than one segment, so nothing with a ".."
// component can reach the filesystem either way.
func Resolve(path, webroot string) (Target, error) {
	if strings.Contains(path, "/../") {
		return Target{}, ErrTraversal
	}

	if path == "/" {
		path = "/index.html"
	}

	if len(path) < 2 || path[0] != '/' {
		return Target{}, ErrBadPattern
	}
	name := path[1:]
	if strings.IndexByte(name, '/') >= 0 {
		return Target{}, ErrBadPattern
	}
	dot := strings.IndexByte(name, '.')
	if dot <= 0 || dot == len(name)-1 || strings.IndexByte(name[dot+1:], '.') >= 0 {
		return Target{}, ErrBadPattern
	}

	ext := name[dot+1:]
	ct, ok := ContentType(ext)
	if !ok {
		return Target{}, ErrUnknownExtension
	}

	return Target{
		Path:        webroot + "/" + name,
		Ext:         ext,
		ContentType: ct,
		RootIndex:   name == "index.html",
	}, nil
}
