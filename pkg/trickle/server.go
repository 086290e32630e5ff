// Package trickle is a single-threaded, non-blocking HTTP/1.1 static-file
// server designed to live inside a host application's cooperative callback
// scheduler.
//
// The server never blocks: the listener and every accepted connection run in
// non-blocking mode, and all work happens in short poll cycles driven by the
// host's scheduling capability. Polling is adaptive. A started server idles
// on a slow cadence; the cycle that accepts a client engages an additional
// fast cadence, which cancels itself again after enough consecutive empty
// cycles. Both cadences invoke the same polling primitive and differ only in
// interval.
//
// Per-connection failures are isolated: they end that connection's handling
// and are logged, never surfaced. Only a failed listener setup is returned to
// the caller, as a *BindError.
package trickle

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/yourusername/trickle/pkg/trickle/socket"
)

// Poll cadence defaults. The fast cadence engages when a cycle accepts a
// client and drops out after FastPollIdleLimit consecutive empty fast cycles.
const (
	SlowPollInterval  = 500 * time.Millisecond
	FastPollInterval  = 30 * time.Millisecond
	FastPollIdleLimit = 20
)

// pollState tracks which cadences are live.
type pollState uint8

const (
	stateIdle     pollState = iota // no listener
	stateSlowPoll                  // slow cadence only
	stateFastPoll                  // slow + fast cadences
)

// Server owns one serving session: the single listener, the active
// configuration and the poll state machine. Construct with New, drive with
// Start, Stop and Reconfigure.
//
// The mutex serializes external lifecycle calls against scheduled poll
// cycles. Inside one cooperative host tick that serialization is free; with
// TimerScheduler it is what keeps external Stop calls safe.
type Server struct {
	mu    sync.Mutex
	cfg   Config
	sched Scheduler
	log   *log.Logger

	listener   *socket.Listener
	state      pollState
	idleCycles int

	slowHandle Handle
	slowActive bool
	fastHandle Handle
	fastActive bool
}

// New creates a stopped server with the given configuration and scheduling
// capability.
func New(cfg Config, sched Scheduler) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:   cfg,
		sched: sched,
		log:   logger,
		state: stateIdle,
	}
}

// Start validates the configuration, binds the loopback listener and
// registers the slow poll cadence. A listener setup failure is returned as a
// *BindError and leaves the server stopped.
//
// Start is idempotent and self-healing: a listener left over from an unclean
// shutdown is closed before the new one is created, so at most one live
// listener ever exists.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked()
}

func (s *Server) startLocked() error {
	// Starting means serving: validate as a running configuration even if
	// the caller never set Run.
	run := s.cfg
	run.Run = true
	if err := run.Validate(); err != nil {
		return err
	}

	if s.fastActive {
		s.sched.Cancel(s.fastHandle)
		s.fastActive = false
	}
	if s.listener != nil {
		// stale listener from an unclean shutdown
		s.listener.Close()
		s.listener = nil
	}

	ln, err := socket.Listen(s.cfg.Port)
	if err != nil {
		return &BindError{Port: s.cfg.Port, Err: err}
	}
	s.listener = ln
	s.idleCycles = 0
	s.state = stateSlowPoll

	if !s.slowActive {
		s.slowHandle = s.sched.Schedule(SlowPollInterval, func() { s.poll(false) })
		s.slowActive = true
	}

	s.debugf("listening on 127.0.0.1:%d, web root %q", ln.Port(), s.cfg.Webroot)
	return nil
}

// Stop cancels all scheduled cadences and closes the listener. Calling Stop
// on a stopped server is a no-op.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Server) stopLocked() {
	if s.fastActive {
		s.sched.Cancel(s.fastHandle)
		s.fastActive = false
	}
	if s.slowActive {
		s.sched.Cancel(s.slowHandle)
		s.slowActive = false
	}
	if s.listener != nil {
		s.listener.Close()
		s.listener = nil
		s.debugf("stopped")
	}
	s.state = stateIdle
	s.idleCycles = 0
}

// Reconfigure replaces the active configuration. Any existing listener is
// torn down before the new configuration applies, so two simultaneous
// listeners or an orphaned socket cannot occur. Serving resumes only when the
// new configuration has Run set.
func (s *Server) Reconfigure(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.cfg = cfg
	if cfg.Logger != nil {
		s.log = cfg.Logger
	}
	if !cfg.Run {
		return nil
	}
	return s.startLocked()
}

// Running reports whether a listener is currently bound.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener != nil
}

// Port returns the bound port, or 0 when stopped.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return 0
	}
	return s.listener.Port()
}

// poll is the single polling primitive behind both cadences; fast reports
// which cadence invoked it. One cycle accepts at most one connection and
// serves it to completion before returning control to the host.
func (s *Server) poll(fast bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		// cadence fired after teardown
		return
	}

	fd, err := s.listener.Accept()
	if err != nil {
		if !errors.Is(err, socket.ErrWouldBlock) {
			// Not fatal to the scheduler: log and end the cycle.
			s.logf("accept: %v", err)
		}
		if fast {
			s.idleCycles++
			if s.idleCycles > FastPollIdleLimit {
				s.sched.Cancel(s.fastHandle)
				s.fastActive = false
				s.state = stateSlowPoll
				s.idleCycles = 0
				s.debugf("traffic idle, dropping to slow poll")
			}
		}
		return
	}

	s.idleCycles = 0
	if s.state != stateFastPoll {
		s.fastHandle = s.sched.Schedule(FastPollInterval, func() { s.poll(true) })
		s.fastActive = true
		s.state = stateFastPoll
		s.debugf("client activity, engaging fast poll")
	}

	s.serveConn(fd)
}

func (s *Server) logf(format string, args ...any) {
	s.log.Printf("trickle: "+format, args...)
}

func (s *Server) debugf(format string, args ...any) {
	if s.cfg.Debug {
		s.log.Printf("trickle: "+format, args...)
	}
}
