// Package socket provides the raw non-blocking TCP plumbing for the poll
// server.
//
// Everything here works at the file-descriptor level via golang.org/x/sys/unix.
// The server executes inside a host application's cooperative tick, so no call
// in this package may ever block: listeners and accepted connections are
// switched to non-blocking mode before use, and would-block outcomes are
// reported as ErrWouldBlock for the caller to treat as a cooperative yield.
package socket

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Backlog is the listen(2) queue depth for new listeners.
const Backlog = 128

// Listener is a bound, non-blocking TCP listening socket on the loopback
// interface. At most one live Listener exists per server; it is created on
// start and destroyed on stop or reconfigure.
type Listener struct {
	fd   int
	port int
}

// Listen creates a TCP listening socket bound to 127.0.0.1:port in
// non-blocking mode with SO_REUSEADDR set. Pass port 0 to let the kernel pick
// one; Port reports the bound port either way.
//
// On any setup failure the partially created socket is closed before the
// error is returned, so a failed Listen never leaks a descriptor.
func Listen(port int) (*Listener, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, fmt.Errorf("socket: create: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socket: SO_REUSEADDR: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socket: set non-blocking: %w", err)
	}
	sa := &unix.SockaddrInet4{Port: port, Addr: [4]byte{127, 0, 0, 1}}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socket: bind 127.0.0.1:%d: %w", port, err)
	}
	if err := unix.Listen(fd, Backlog); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("socket: listen: %w", err)
	}

	bound := port
	if name, err := unix.Getsockname(fd); err == nil {
		if inet, ok := name.(*unix.SockaddrInet4); ok {
			bound = inet.Port
		}
	}

	return &Listener{fd: fd, port: bound}, nil
}

// Port returns the port the listener is bound to.
func (l *Listener) Port() int {
	return l.port
}

// Accept takes at most one pending connection off the queue and returns its
// descriptor, already switched to non-blocking mode. An empty queue is not an
// error: Accept returns ErrWouldBlock and the caller ends its poll cycle.
func (l *Listener) Accept() (int, error) {
	fd, _, err := unix.Accept(l.fd)
	if err != nil {
		// ECONNABORTED means the peer vanished between SYN and accept;
		// treat it like an empty queue rather than a reportable failure.
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.ECONNABORTED {
			return -1, ErrWouldBlock
		}
		return -1, fmt.Errorf("socket: accept: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("socket: set non-blocking: %w", err)
	}
	return fd, nil
}

// Close releases the listening socket. Safe to call more than once.
func (l *Listener) Close() error {
	if l.fd < 0 {
		return nil
	}
	fd := l.fd
	l.fd = -1
	return unix.Close(fd)
}

// Recv performs a single non-blocking read into buf. If the client has not
// sent anything yet, Recv returns ErrWouldBlock; a zero count with nil error
// means the peer closed its end.
func Recv(fd int, buf []byte) (int, error) {
	n, err := unix.Read(fd, buf)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, ErrWouldBlock
		}
		return 0, fmt.Errorf("socket: recv: %w", err)
	}
	return n, nil
}

// Send performs a single write attempt. The byte count may be short on a
// non-blocking socket; callers that make exactly one send cycle per
// connection accept that as terminal.
func Send(fd int, b []byte) (int, error) {
	n, err := unix.Write(fd, b)
	if err != nil {
		return n, fmt.Errorf("socket: send: %w", err)
	}
	return n, nil
}

// Close releases a connection descriptor.
func Close(fd int) error {
	return unix.Close(fd)
}
