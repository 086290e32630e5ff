package trickle

import (
	"sync"
	"time"
)

// Handle identifies one scheduled cadence. Pass it back to Cancel.
type Handle int64

// Scheduler is the host-provided scheduling capability. Schedule registers
// task to run every interval until the returned handle is cancelled.
//
// The server performs all of its work inside scheduled tasks and relies on
// the host invoking them one at a time, the way a cooperative single-threaded
// tick does. Implementations must not run two tasks concurrently.
type Scheduler interface {
	Schedule(interval time.Duration, task func()) Handle
	Cancel(h Handle)
}

// TimerScheduler is a ready-made Scheduler for hosts without a callback
// mechanism of their own. Each cadence runs off a time.Ticker and every task
// invocation is funneled through a single dispatch goroutine, so tasks never
// run concurrently.
//
// After Cancel returns, a task that was already queued for dispatch may fire
// one more time; the server tolerates that by re-checking its listener state
// on every poll.
type TimerScheduler struct {
	mu      sync.Mutex
	next    Handle
	cancels map[Handle]chan struct{}

	run      chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewTimerScheduler creates a TimerScheduler and starts its dispatch loop.
// Call Stop when done with it.
func NewTimerScheduler() *TimerScheduler {
	s := &TimerScheduler{
		cancels: make(map[Handle]chan struct{}),
		run:     make(chan func(), 16),
		done:    make(chan struct{}),
	}
	go s.dispatch()
	return s
}

func (s *TimerScheduler) dispatch() {
	for {
		select {
		case task := <-s.run:
			task()
		case <-s.done:
			return
		}
	}
}

// Schedule registers task on its own ticker goroutine. Invocations are handed
// to the dispatch loop, never run on the ticker goroutine itself.
func (s *TimerScheduler) Schedule(interval time.Duration, task func()) Handle {
	s.mu.Lock()
	s.next++
	h := s.next
	stop := make(chan struct{})
	s.cancels[h] = stop
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case s.run <- task:
				case <-stop:
					return
				case <-s.done:
					return
				}
			case <-stop:
				return
			case <-s.done:
				return
			}
		}
	}()
	return h
}

// Cancel deregisters a cadence. Unknown or already-cancelled handles are
// ignored.
func (s *TimerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stop, ok := s.cancels[h]; ok {
		delete(s.cancels, h)
		close(stop)
	}
}

// Stop shuts down the dispatch loop and every remaining cadence. The
// scheduler cannot be reused afterwards.
func (s *TimerScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		for h, stop := range s.cancels {
			delete(s.cancels, h)
			close(stop)
		}
		s.mu.Unlock()
	})
}
