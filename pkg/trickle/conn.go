package trickle

import (
	"errors"
	"os"
	"sync"

	"github.com/valyala/bytebufferpool"

	"github.com/yourusername/trickle/pkg/trickle/http11"
	"github.com/yourusername/trickle/pkg/trickle/resolve"
	"github.com/yourusername/trickle/pkg/trickle/socket"
)

// recvBufferSize bounds a request read. Only the request line is interpreted,
// so one read of this size always covers a well-formed request.
const recvBufferSize = 4096

// recvBufPool provides pooled receive buffers, one per handled connection.
var recvBufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, recvBufferSize)
		return &buf
	},
}

// serveConn performs the one-shot exchange for a freshly accepted socket:
// a single receive, parse, resolve, a single send, close. Every outcome
// closes the socket exactly once, and no outcome propagates past this
// function; connections are never reused.
func (s *Server) serveConn(fd int) {
	defer socket.Close(fd)

	bufPtr := recvBufPool.Get().(*[]byte)
	defer recvBufPool.Put(bufPtr)
	buf := *bufPtr

	// The full request line is assumed to arrive in this single read. A
	// client that has sent nothing yet is abandoned without a response;
	// there is no partial-request reassembly.
	n, err := socket.Recv(fd, buf)
	if err != nil {
		if errors.Is(err, socket.ErrWouldBlock) {
			s.debugf("client sent nothing, abandoning connection")
		} else {
			s.logf("recv: %v", err)
		}
		return
	}
	if n == 0 {
		s.debugf("client closed before sending a request")
		return
	}

	req, err := http11.ParseRequest(buf[:n])
	if err != nil {
		// Protocol error: close without a meaningful response.
		s.logf("dropping request (%v)", err)
		return
	}
	s.debugf("GET %s", req.RawTarget)

	if s.cfg.Webroot == "" {
		// Guarded by Validate at start; kept as an internal-error page in
		// case a host wires a Server up without validation.
		s.logf("request handled with no web root configured")
		s.send(fd, http11.RespUnconfigured)
		return
	}

	target, err := resolve.Resolve(req.Path, s.cfg.Webroot)
	if err != nil {
		s.logf("refusing %q: %v", req.Path, err)
		s.send(fd, http11.RespForbidden)
		return
	}

	body, err := os.ReadFile(target.Path)
	if err != nil {
		if target.RootIndex {
			s.debugf("no index at %q, serving placeholder", target.Path)
			s.send(fd, http11.RespDummyIndex)
			return
		}
		s.logf("missing file %q", target.Path)
		s.send(fd, http11.RespNotFound)
		return
	}

	out := bytebufferpool.Get()
	http11.ComposeFile(out, target.ContentType, body)
	s.send(fd, out.B)
	bytebufferpool.Put(out)
}

// send makes the single send attempt for a connection. The outcome only
// matters for logging; the caller closes the socket either way.
func (s *Server) send(fd int, b []byte) {
	if _, err := socket.Send(fd, b); err != nil {
		s.debugf("send: %v", err)
	}
}
