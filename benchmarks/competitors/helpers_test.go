package competitors

import (
	"os"
	"path/filepath"
	"testing"
)

// generateBody produces a deterministic payload of the given size.
func generateBody(size int) []byte {
	body := make([]byte, size)
	for i := range body {
		body[i] = byte('A' + (i % 26))
	}
	return body
}

// newWebroot seeds a temp directory with an index page and one payload asset,
// the shape every competitor serves in these benchmarks.
func newWebroot(b *testing.B, payloadSize int) (string, []byte) {
	b.Helper()
	dir := b.TempDir()
	payload := generateBody(payloadSize)

	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>bench</html>"), 0o644); err != nil {
		b.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "asset.pck"), payload, 0o644); err != nil {
		b.Fatal(err)
	}
	return dir, payload
}
