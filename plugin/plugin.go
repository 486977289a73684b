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

// Package plugin implements the sleep-timer plugin: host-runtime glue
// around the countdown service in pkg/sleeptimer. It builds the Timer
// menu, routes menu selections through an action dispatcher, and tears
// the timer down at deactivation.
package plugin

import (
	"errors"
	"sync"

	"github.com/playerkit/plugin-sleeptimer/api"
	"github.com/playerkit/plugin-sleeptimer/internal/hostproc"
	"github.com/playerkit/plugin-sleeptimer/internal/logging"
	"github.com/playerkit/plugin-sleeptimer/pkg/sleeptimer"
)

var pluginLogger = logging.New("plugin", nil)

const (
	// PluginID is the identifier the plugin registers under.
	PluginID = "sleeptimer"

	pluginVersion = "1.0.0"
)

var (
	ErrAlreadyActive = errors.New("sleep timer plugin is already active")
	ErrNotActive     = errors.New("sleep timer plugin is not active")
)

// Auditor receives plugin and timer lifecycle events. Optional.
type Auditor interface {
	LogEvent(event string, details map[string]interface{}) error
}

// Option configures the plugin at construction time.
type Option func(*SleepTimer)

// WithTimerOptions forwards options to the countdown service created at
// activation. Tests use this to shrink the minute unit.
func WithTimerOptions(opts ...sleeptimer.Option) Option {
	return func(p *SleepTimer) {
		p.timerOpts = append(p.timerOpts, opts...)
	}
}

// WithAuditor attaches an audit sink for lifecycle and timer events.
func WithAuditor(a Auditor) Option {
	return func(p *SleepTimer) {
		p.auditor = a
	}
}

// SleepTimer is the plugin. One instance serves one activation at a
// time; activating twice without deactivating is an error.
type SleepTimer struct {
	mu        sync.Mutex
	host      api.Host
	menu      api.MenuHandle
	svc       *sleeptimer.Service
	disp      *actionDispatcher
	active    bool
	timerOpts []sleeptimer.Option
	auditor   Auditor
}

var _ api.Plugin = (*SleepTimer)(nil)

// New returns an inactive sleep-timer plugin.
func New(opts ...Option) *SleepTimer {
	p := &SleepTimer{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *SleepTimer) Info() api.PluginInfo {
	return api.PluginInfo{
		ID:          PluginID,
		Name:        "Sleep Timer",
		Version:     pluginVersion,
		Description: "Programmable timer that exits the player upon expiry.",
	}
}

// Activate starts the countdown service and attaches the Timer menu.
func (p *SleepTimer) Activate(host api.Host) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return ErrAlreadyActive
	}

	disp, err := newActionDispatcher(1)
	if err != nil {
		return err
	}

	p.host = host
	p.disp = disp
	p.svc = sleeptimer.New(p.onExpire, p.timerOpts...)

	handle, err := host.AttachMenu(p.buildMenu())
	if err != nil {
		p.svc.Shutdown()
		disp.close()
		p.host = nil
		p.disp = nil
		p.svc = nil
		return err
	}
	p.menu = handle
	p.active = true

	if logging.DebugMode() {
		if st, err := hostproc.Snapshot(); err == nil {
			pluginLogger.Debugf("host process pid=%d rss=%d threads=%d", st.PID, st.RSSBytes, st.NumThreads)
		}
	}

	p.audit("plugin.activated", nil)
	pluginLogger.Infof("sleep timer plugin activated")
	return nil
}

// Deactivate shuts the countdown service down, drains the dispatcher and
// detaches the menu. After Deactivate returns, the exit callback can
// never fire.
func (p *SleepTimer) Deactivate() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return ErrNotActive
	}

	p.svc.Shutdown()
	p.disp.close()
	if err := p.menu.Detach(); err != nil {
		pluginLogger.Warnf("menu detach failed: %v", err)
	}

	p.audit("plugin.deactivated", nil)
	p.active = false
	p.host = nil
	p.menu = nil
	p.svc = nil
	p.disp = nil
	pluginLogger.Infof("sleep timer plugin deactivated")
	return nil
}

// Service exposes the countdown service while active, for health and
// instrumentation surfaces. Nil when inactive.
func (p *SleepTimer) Service() *sleeptimer.Service {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.svc
}

// onExpire runs on the worker goroutine of the countdown service.
func (p *SleepTimer) onExpire() {
	p.audit("timer.expired", nil)
	pluginLogger.Infof("sleep timer expired, exiting host")
	p.host.Exit()
}

func (p *SleepTimer) audit(event string, details map[string]interface{}) {
	if p.auditor == nil {
		return
	}
	if err := p.auditor.LogEvent(event, details); err != nil {
		pluginLogger.Warnf("audit event %s dropped: %v", event, err)
	}
}
