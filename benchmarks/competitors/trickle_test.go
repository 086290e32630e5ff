package competitors

import (
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/yourusername/trickle/pkg/trickle"
)

// benchmarkTrickleStatic measures the poll server end to end on the shared
// static-file workload. Unlike the thread-per-connection competitors, trickle
// serves one connection per poll cycle, so the figure here includes the fast
// poll cadence (30ms) as request latency. That is the honest number for the
// cooperative embedding this server is built for.
func benchmarkTrickleStatic(b *testing.B, payloadSize int) {
	webroot, payload := newWebroot(b, payloadSize)

	sched := trickle.NewTimerScheduler()
	defer sched.Stop()

	port := freeBenchPort(b)
	srv := trickle.New(trickle.Config{Run: true, Port: port, Webroot: webroot}, sched)
	if err := srv.Start(); err != nil {
		b.Fatal(err)
	}
	defer srv.Stop()

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(payload)))

	for i := 0; i < b.N; i++ {
		resp := trickleGet(b, port, "/asset.pck")
		if len(resp) <= len(payload) {
			b.Fatalf("short response: %d bytes", len(resp))
		}
	}
}

// trickleGet performs one raw one-shot GET exchange.
func trickleGet(b *testing.B, port int, target string) []byte {
	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		b.Fatal(err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "GET %s HTTP/1.1\r\n\r\n", target); err != nil {
		b.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	resp, err := io.ReadAll(conn)
	if err != nil {
		b.Fatal(err)
	}
	return resp
}

// freeBenchPort grabs an ephemeral port in the server's valid range and
// releases it for the server to bind.
func freeBenchPort(b *testing.B) int {
	b.Helper()
	for i := 0; i < 16; i++ {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			b.Fatal(err)
		}
		port := l.Addr().(*net.TCPAddr).Port
		l.Close()
		if port >= trickle.MinPort && port <= trickle.MaxPort {
			return port
		}
	}
	b.Fatal("no usable ephemeral port")
	return 0
}

// BenchmarkTrickleStatic1KB benchmarks a 1KB static asset
func BenchmarkTrickleStatic1KB(b *testing.B) {
	benchmarkTrickleStatic(b, 1024)
}

// BenchmarkTrickleStatic64KB benchmarks a 64KB static asset
func BenchmarkTrickleStatic64KB(b *testing.B) {
	benchmarkTrickleStatic(b, 64*1024)
}
