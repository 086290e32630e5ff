package socket

import "errors"

// ErrWouldBlock reports that a non-blocking accept or recv found nothing to
// do. It is the cooperative yield of this package: callers end the current
// poll cycle and hand control back to the host scheduler.
var ErrWouldBlock = errors.New("socket: operation would block")
