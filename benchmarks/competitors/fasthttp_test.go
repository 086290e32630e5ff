package competitors

import (
	"net"
	"testing"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

// benchmarkFastHTTPStatic measures fasthttp's FS handler on the shared
// static-file workload.
func benchmarkFastHTTPStatic(b *testing.B, payloadSize int) {
	webroot, payload := newWebroot(b, payloadSize)

	fs := &fasthttp.FS{
		Root:     webroot,
		Compress: false,
	}
	server := &fasthttp.Server{
		Handler: fs.NewRequestHandler(),
	}
	ln := fasthttputil.NewInmemoryListener()
	defer ln.Close()

	go server.Serve(ln)

	client := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) {
			return ln.Dial()
		},
	}

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(payload)))

	var req fasthttp.Request
	var resp fasthttp.Response
	req.SetRequestURI("http://localhost/asset.pck")

	for i := 0; i < b.N; i++ {
		if err := client.Do(&req, &resp); err != nil {
			b.Fatal(err)
		}
		resp.Reset()
	}
}

// BenchmarkFastHTTPStatic1KB benchmarks a 1KB static asset
func BenchmarkFastHTTPStatic1KB(b *testing.B) {
	benchmarkFastHTTPStatic(b, 1024)
}

// BenchmarkFastHTTPStatic64KB benchmarks a 64KB static asset
func BenchmarkFastHTTPStatic64KB(b *testing.B) {
	benchmarkFastHTTPStatic(b, 64*1024)
}
