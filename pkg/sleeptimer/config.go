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

import "time"

// Timeout bounds, in minutes. Any value outside MinMinutes..MaxMinutes
// disarms a running timer; Cancel is the canonical disarm value.
const (
	MinMinutes = 1
	MaxMinutes = 999

	// Cancel is the sentinel passed through the instruction cell to
	// disarm the timer.
	Cancel = 0

	// DefaultAdjustable is the value the adjustable-timer dialog starts
	// from, and the fallback when a dialog hands back an out-of-range
	// value.
	DefaultAdjustable = 60
)

// ValidTimeout reports whether minutes is a timeout that arms the timer.
// Everything else is treated as a cancel, never as an error.
func ValidTimeout(minutes int) bool {
	return minutes >= MinMinutes && minutes <= MaxMinutes
}

// TimerFactory produces a one-shot deadline channel and a stop function.
// Injectable so tests can substitute a deterministic timer.
type TimerFactory func(d time.Duration) (<-chan time.Time, func() bool)

func defaultNewTimer(d time.Duration) (<-chan time.Time, func() bool) {
	t := time.NewTimer(d)
	return t.C, t.Stop
}

// Option configures a Service at construction time.
type Option func(*Service)

// WithUnit changes the duration one "minute" stands for. The default is
// time.Minute; tests shrink it to run the end-to-end scenarios in
// milliseconds.
func WithUnit(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.unit = d
		}
	}
}

// WithTimerFactory replaces the deadline timer used by the worker.
func WithTimerFactory(f TimerFactory) Option {
	return func(s *Service) {
		if f != nil {
			s.newTimer = f
		}
	}
}
