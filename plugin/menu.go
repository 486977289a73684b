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
	"fmt"

	"github.com/playerkit/plugin-sleeptimer/api"
	"github.com/playerkit/plugin-sleeptimer/pkg/sleeptimer"
)

const (
	menuLabel      = "Timer"
	itemCancelName = "Cancel"
	itemAdjustName = "Adjustable..."
)

// fixedPresetLabels are the fixed timer entries, in menu order. Labels
// must have the form "%dm" with a value within the timeout bounds; the
// selection handler parses the label back, as a guard against the table
// and the handler drifting apart.
var fixedPresetLabels = []string{"30m", "60m", "90m", "120m"}

// buildMenu assembles the Timer menu: Cancel (initially disabled, there
// is nothing to cancel yet), the adjustable dialog entry, then the fixed
// presets.
func (p *SleepTimer) buildMenu() api.Menu {
	items := []api.MenuItem{
		{
			Name:     itemCancelName,
			Label:    itemCancelName,
			Enabled:  false,
			OnSelect: func() { p.disp.dispatch(itemCancelName, p.handleCancel) },
		},
		{
			Name:     itemAdjustName,
			Label:    itemAdjustName,
			Enabled:  true,
			OnSelect: func() { p.disp.dispatch(itemAdjustName, p.handleAdjustable) },
		},
	}
	for _, label := range fixedPresetLabels {
		label := label
		items = append(items, api.MenuItem{
			Name:     label,
			Label:    label,
			Enabled:  true,
			OnSelect: func() { p.disp.dispatch(label, func() { p.handleFixed(label) }) },
		})
	}
	return api.Menu{Label: menuLabel, Items: items}
}

func (p *SleepTimer) handleCancel() {
	p.svc.Cancel()
	p.setCancelEnabled(false)
	p.audit("timer.cancelled", nil)
}

func (p *SleepTimer) handleFixed(label string) {
	minutes, err := parsePresetLabel(label)
	if err != nil {
		// preset table is defined improperly
		pluginLogger.Errorf("bad preset label %q: %v", label, err)
		return
	}
	p.arm(minutes)
}

func (p *SleepTimer) handleAdjustable() {
	minutes, ok := p.host.PromptInteger(api.IntegerPrompt{
		Title: "Configure Timer",
		Message: "Enter the desired value (in minutes) for the timer.\n" +
			"'Apply' will start/restart the timer with the supplied value.\n" +
			"'Abort' will leave timer configuration unchanged.",
		Min:     sleeptimer.MinMinutes,
		Max:     sleeptimer.MaxMinutes,
		Default: sleeptimer.DefaultAdjustable,
	})
	if !ok {
		return
	}
	if !sleeptimer.ValidTimeout(minutes) {
		// the prompt should have clamped; fall back to the default
		minutes = sleeptimer.DefaultAdjustable
	}
	p.arm(minutes)
}

func (p *SleepTimer) arm(minutes int) {
	p.svc.SetTimeout(minutes)
	p.setCancelEnabled(true)
	p.audit("timer.armed", map[string]interface{}{"minutes": minutes})
}

func (p *SleepTimer) setCancelEnabled(enabled bool) {
	if err := p.menu.SetItemEnabled(itemCancelName, enabled); err != nil {
		pluginLogger.Warnf("toggling Cancel item failed: %v", err)
	}
}

// parsePresetLabel extracts the minute value from a fixed preset label.
func parsePresetLabel(label string) (int, error) {
	var minutes int
	if _, err := fmt.Sscanf(label, "%dm", &minutes); err != nil {
		return 0, fmt.Errorf("preset label %q: %w", label, err)
	}
	if !sleeptimer.ValidTimeout(minutes) {
		return 0, fmt.Errorf("preset label %q: %d minutes out of range", label, minutes)
	}
	return minutes, nil
}
