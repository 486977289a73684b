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

package plugin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/playerkit/plugin-sleeptimer/api"
	"github.com/playerkit/plugin-sleeptimer/pkg/sleeptimer"
)

type fakeMenuHandle struct {
	mu       sync.Mutex
	menu     api.Menu
	enabled  map[string]bool
	detached bool
}

func (h *fakeMenuHandle) SetItemEnabled(name string, enabled bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.enabled[name]; !ok {
		return fmt.Errorf("no such item: %s", name)
	}
	h.enabled[name] = enabled
	return nil
}

func (h *fakeMenuHandle) Detach() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detached = true
	return nil
}

func (h *fakeMenuHandle) itemEnabled(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enabled[name]
}

type fakeHost struct {
	mu          sync.Mutex
	handle      *fakeMenuHandle
	attachErr   error
	promptValue int
	promptOK    bool
	prompts     []api.IntegerPrompt
	exited      atomic.Int32
}

func (f *fakeHost) AttachMenu(menu api.Menu) (api.MenuHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attachErr != nil {
		return nil, f.attachErr
	}
	h := &fakeMenuHandle{menu: menu, enabled: make(map[string]bool, len(menu.Items))}
	for _, item := range menu.Items {
		h.enabled[item.Name] = item.Enabled
	}
	f.handle = h
	return h, nil
}

func (f *fakeHost) PromptInteger(req api.IntegerPrompt) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, req)
	return f.promptValue, f.promptOK
}

func (f *fakeHost) Exit() {
	f.exited.Add(1)
}

// selectItem invokes a menu item's OnSelect the way a host would.
func (f *fakeHost) selectItem(t *testing.T, name string) {
	t.Helper()
	f.mu.Lock()
	h := f.handle
	f.mu.Unlock()
	if h == nil {
		t.Fatal("no menu attached")
	}
	for _, item := range h.menu.Items {
		if item.Name == name {
			item.OnSelect()
			return
		}
	}
	t.Fatalf("menu item %q not found", name)
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []string
}

func (a *recordingAuditor) LogEvent(event string, _ map[string]interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return nil
}

func (a *recordingAuditor) seen(event string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.events {
		if e == event {
			return true
		}
	}
	return false
}

type SleepTimerPluginTestSuite struct {
	suite.Suite
}

func (s *SleepTimerPluginTestSuite) TestInfo() {
	p := New()
	info := p.Info()
	s.Equal(PluginID, info.ID)
	s.NotEmpty(info.Name)
	s.NotEmpty(info.Version)
}

func (s *SleepTimerPluginTestSuite) TestActivateBuildsMenu() {
	host := &fakeHost{}
	p := New(WithTimerOptions(sleeptimer.WithUnit(time.Hour)))
	s.Require().NoError(p.Activate(host))
	defer func() { s.Require().NoError(p.Deactivate()) }()

	s.Require().NotNil(host.handle)
	menu := host.handle.menu
	s.Equal("Timer", menu.Label)
	s.Require().Len(menu.Items, 2+len(fixedPresetLabels))
	s.Equal(itemCancelName, menu.Items[0].Name)
	s.Equal(itemAdjustName, menu.Items[1].Name)
	for i, label := range fixedPresetLabels {
		s.Equal(label, menu.Items[2+i].Name)
	}
	// nothing to cancel yet
	s.False(host.handle.itemEnabled(itemCancelName))

	s.ErrorIs(p.Activate(host), ErrAlreadyActive)
}

func (s *SleepTimerPluginTestSuite) TestActivateFailureCleansUp() {
	host := &fakeHost{attachErr: errors.New("no menu bar")}
	p := New()
	s.Error(p.Activate(host))
	s.Nil(p.Service())
	s.ErrorIs(p.Deactivate(), ErrNotActive)
}

func (s *SleepTimerPluginTestSuite) TestFixedPresetArmsTimer() {
	host := &fakeHost{}
	p := New(WithTimerOptions(sleeptimer.WithUnit(time.Hour)))
	s.Require().NoError(p.Activate(host))
	defer func() { s.Require().NoError(p.Deactivate()) }()

	host.selectItem(s.T(), "30m")
	s.Eventually(func() bool { return p.Service().Snapshot().Armed }, time.Second, 5*time.Millisecond)
	s.Eventually(func() bool { return host.handle.itemEnabled(itemCancelName) }, time.Second, 5*time.Millisecond)
}

func (s *SleepTimerPluginTestSuite) TestCancelDisarms() {
	host := &fakeHost{}
	p := New(WithTimerOptions(sleeptimer.WithUnit(time.Hour)))
	s.Require().NoError(p.Activate(host))
	defer func() { s.Require().NoError(p.Deactivate()) }()

	host.selectItem(s.T(), "60m")
	s.Eventually(func() bool { return p.Service().Snapshot().Armed }, time.Second, 5*time.Millisecond)

	host.selectItem(s.T(), itemCancelName)
	s.Eventually(func() bool { return !p.Service().Snapshot().Armed }, time.Second, 5*time.Millisecond)
	s.Eventually(func() bool { return !host.handle.itemEnabled(itemCancelName) }, time.Second, 5*time.Millisecond)
	s.Equal(int32(0), host.exited.Load())
}

func (s *SleepTimerPluginTestSuite) TestExpiryExitsHost() {
	host := &fakeHost{}
	audit := &recordingAuditor{}
	p := New(
		WithTimerOptions(sleeptimer.WithUnit(time.Millisecond)),
		WithAuditor(audit),
	)
	s.Require().NoError(p.Activate(host))

	host.selectItem(s.T(), "30m")
	s.Eventually(func() bool { return host.exited.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.True(audit.seen("timer.armed"))
	s.True(audit.seen("timer.expired"))

	// deactivation after expiry must still be clean
	s.Require().NoError(p.Deactivate())
	s.Equal(int32(1), host.exited.Load())
}

func (s *SleepTimerPluginTestSuite) TestAdjustableArmsWithPromptValue() {
	host := &fakeHost{promptValue: 42, promptOK: true}
	p := New(WithTimerOptions(sleeptimer.WithUnit(time.Hour)))
	s.Require().NoError(p.Activate(host))
	defer func() { s.Require().NoError(p.Deactivate()) }()

	host.selectItem(s.T(), itemAdjustName)
	s.Eventually(func() bool { return p.Service().Snapshot().Armed }, time.Second, 5*time.Millisecond)

	host.mu.Lock()
	defer host.mu.Unlock()
	s.Require().Len(host.prompts, 1)
	s.Equal(sleeptimer.MinMinutes, host.prompts[0].Min)
	s.Equal(sleeptimer.MaxMinutes, host.prompts[0].Max)
	s.Equal(sleeptimer.DefaultAdjustable, host.prompts[0].Default)
}

func (s *SleepTimerPluginTestSuite) TestAdjustableAbortLeavesTimerAlone() {
	host := &fakeHost{promptOK: false}
	p := New(WithTimerOptions(sleeptimer.WithUnit(time.Hour)))
	s.Require().NoError(p.Activate(host))
	defer func() { s.Require().NoError(p.Deactivate()) }()

	host.selectItem(s.T(), itemAdjustName)
	s.Eventually(func() bool {
		host.mu.Lock()
		defer host.mu.Unlock()
		return len(host.prompts) == 1
	}, time.Second, 5*time.Millisecond)
	s.False(p.Service().Snapshot().Armed)
}

func (s *SleepTimerPluginTestSuite) TestAdjustableOutOfRangeCoercedToDefault() {
	var requested atomic.Int64
	silent := func(d time.Duration) (<-chan time.Time, func() bool) {
		requested.Store(int64(d))
		return make(chan time.Time), func() bool { return true }
	}
	host := &fakeHost{promptValue: 5000, promptOK: true}
	p := New(WithTimerOptions(
		sleeptimer.WithUnit(time.Second),
		sleeptimer.WithTimerFactory(silent),
	))
	s.Require().NoError(p.Activate(host))
	defer func() { s.Require().NoError(p.Deactivate()) }()

	host.selectItem(s.T(), itemAdjustName)
	s.Eventually(func() bool {
		return requested.Load() == int64(sleeptimer.DefaultAdjustable*int(time.Second))
	}, time.Second, 5*time.Millisecond)
}

func (s *SleepTimerPluginTestSuite) TestDeactivateIsFinal() {
	host := &fakeHost{}
	unit := 10 * time.Millisecond
	p := New(WithTimerOptions(sleeptimer.WithUnit(unit)))
	s.Require().NoError(p.Activate(host))

	host.selectItem(s.T(), "30m")
	s.Eventually(func() bool { return p.Service().Snapshot().Armed }, time.Second, 5*time.Millisecond)

	s.Require().NoError(p.Deactivate())
	s.True(host.handle.detached)
	s.Nil(p.Service())

	time.Sleep(35 * unit)
	s.Equal(int32(0), host.exited.Load())
}

func TestSleepTimerPluginTestSuite(t *testing.T) {
	suite.Run(t, new(SleepTimerPluginTestSuite))
}
