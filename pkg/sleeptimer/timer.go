/*
 * Copyright 2026 PlayerKit Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sleeptimer

import (
	"sync"
	"time"

	"github.com/playerkit/plugin-sleeptimer/internal/logging"
)

var internalLogger = logging.New("sleeptimer", nil)

// timerState is the instruction cell shared between configuring callers
// and the worker. Callers overwrite it under mu and set pending; the
// worker clears pending after acting on the values. Only the latest write
// survives: rapid successive instructions coalesce.
type timerState struct {
	pending   bool // an unconsumed instruction exists for the worker
	terminate bool // the worker must exit its loop permanently
	timeout   int  // minutes; out-of-range means disarm
}

// Service owns one logical countdown timer and the single worker
// goroutine that waits it out. A Service is single-shot: once Shutdown
// returns, or once the timer has expired, it cannot be re-armed.
type Service struct {
	mu    sync.Mutex
	state timerState

	// wake carries at most one token; a token is queued under mu
	// whenever pending is set, and drained under mu whenever pending is
	// consumed. Together with the expiry re-check this is the
	// condition-variable-plus-flag pattern of the shared cell.
	wake chan struct{}
	done chan struct{}

	onExpire func()
	unit     time.Duration
	newTimer TimerFactory

	// observable state, for Snapshot only
	armed    bool
	deadline time.Time
	expired  bool
}

// New starts the worker immediately and returns the service handle.
// onExpire is invoked at most once, from the worker goroutine, when a
// deadline elapses without being superseded; the caller is responsible
// for terminating the host application in response.
func New(onExpire func(), opts ...Option) *Service {
	s := &Service{
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		onExpire: onExpire,
		unit:     time.Minute,
		newTimer: defaultNewTimer,
	}
	s.state.timeout = Cancel
	for _, opt := range opts {
		opt(s)
	}
	go s.run()
	return s
}

// SetTimeout arms the timer for the given number of minutes, replacing
// any timer currently running. Values outside MinMinutes..MaxMinutes
// disarm instead. SetTimeout never blocks on the worker; it records the
// instruction and returns.
func (s *Service) SetTimeout(minutes int) {
	if ValidTimeout(minutes) {
		armsTotal.Inc()
		internalLogger.Debugf("timer armed for %d minute(s)", minutes)
	} else {
		cancelsTotal.Inc()
		internalLogger.Debugf("timer cancelled (timeout %d out of range)", minutes)
	}
	s.instruct(false, minutes)
}

// Cancel disarms the timer. No expiry fires until a subsequent valid
// SetTimeout.
func (s *Service) Cancel() {
	s.SetTimeout(Cancel)
}

// Shutdown tells the worker to exit and waits until it has. After
// Shutdown returns the exit callback can never fire. Shutdown is meant to
// be called exactly once, at plugin deactivation; the behavior of any
// operation after it is undefined (no-op here, never a panic or a hang).
func (s *Service) Shutdown() {
	internalLogger.Debugf("timer service shutting down")
	s.instruct(true, Cancel)
	<-s.done
}

// Done is closed when the worker has exited, either through Shutdown or
// after firing the exit callback.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

// Alive reports whether the worker goroutine is still running.
func (s *Service) Alive() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Snapshot is a copy of the externally observable timer state.
type Snapshot struct {
	Armed    bool
	Deadline time.Time // meaningful only when Armed
	Expired  bool
	Down     bool // worker has exited
}

// Snapshot returns the current observable state. It is an observer only;
// it cannot perturb the worker.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		Armed:    s.armed,
		Deadline: s.deadline,
		Expired:  s.expired,
	}
	s.mu.Unlock()
	snap.Down = !s.Alive()
	return snap
}

// instruct overwrites the instruction cell and wakes the worker. Holding
// mu across the channel send keeps the token count consistent with
// pending: at most one token is ever queued.
func (s *Service) instruct(terminate bool, minutes int) {
	s.mu.Lock()
	s.state.pending = true
	s.state.terminate = terminate
	s.state.timeout = minutes
	select {
	case s.wake <- struct{}{}:
	default:
	}
	s.mu.Unlock()
}

// consume acknowledges the pending instruction and returns the coalesced
// values. The wake token, if still queued, is drained under the same lock
// so a consumed instruction can never cause a second wakeup.
func (s *Service) consume() (terminate bool, minutes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.pending = false
	select {
	case <-s.wake:
	default:
	}
	return s.state.terminate, s.state.timeout
}

// consumeIfPending is the expiry-path variant of consume: it only
// acknowledges an instruction if one raced in while the deadline timer
// was firing. A deadline is honored only when this returns ok=false.
func (s *Service) consumeIfPending() (ok bool, terminate bool, minutes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.pending {
		return false, false, Cancel
	}
	s.state.pending = false
	select {
	case <-s.wake:
	default:
	}
	return true, s.state.terminate, s.state.timeout
}

func (s *Service) noteArmed(deadline time.Time) {
	s.mu.Lock()
	s.armed = true
	s.deadline = deadline
	s.mu.Unlock()
	armedGauge.Set(1)
}

func (s *Service) noteDisarmed() {
	s.mu.Lock()
	s.armed = false
	s.deadline = time.Time{}
	s.mu.Unlock()
	armedGauge.Set(0)
}

func (s *Service) noteExpired() {
	s.mu.Lock()
	s.armed = false
	s.expired = true
	s.mu.Unlock()
	armedGauge.Set(0)
	expiriesTotal.Inc()
}

// run is the worker. It exists once per Service, for the Service's
// entire lifetime. The structure mirrors the instruction cell: an outer
// wait for the next instruction, and an inner wait that races the armed
// deadline against further instructions. The worker never distinguishes
// arm, cancel and shutdown structurally; it re-reads terminate and
// timeout on every wakeup, and treats a wakeup as expiry only when it
// happened with no pending instruction.
func (s *Service) run() {
	defer close(s.done)
	for {
		// Wait until an instruction arrives.
		<-s.wake
		terminate, minutes := s.consume()

		for !terminate && ValidTimeout(minutes) {
			d := time.Duration(minutes) * s.unit
			s.noteArmed(time.Now().Add(d))

			expiry, stop := s.newTimer(d)
			select {
			case <-s.wake:
				// Superseded before the deadline.
				stop()
				terminate, minutes = s.consume()
				continue
			case <-expiry:
			}

			// The deadline passed, but an instruction may have raced
			// with it. Honor the instruction, never the timeout.
			if ok, t, m := s.consumeIfPending(); ok {
				terminate, minutes = t, m
				continue
			}

			s.noteExpired()
			internalLogger.Infof("timer expired after %d minute(s), invoking exit callback", minutes)
			s.onExpire()
			return
		}

		s.noteDisarmed()
		if terminate {
			internalLogger.Debugf("timer worker terminating")
			return
		}
	}
}
