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

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/playerkit/plugin-sleeptimer/api"
)

var (
	ErrPluginRegistered = errors.New("plugin already registered")
	ErrPluginNotFound   = errors.New("plugin not registered")
)

// registeredPlugin tracks one plugin and its activation state. The entry
// mutex serializes activation transitions per plugin; the registry map
// itself is lock-free for lookups.
type registeredPlugin struct {
	mu     sync.Mutex
	plugin api.Plugin
	active bool
}

// Registry is a host-side plugin registry implementing api.Lifecycle.
// Hosts embedding more than one plugin activate and deactivate them by
// ID.
type Registry struct {
	host    api.Host
	plugins cmap.ConcurrentMap[string, *registeredPlugin]
}

var _ api.Lifecycle = (*Registry)(nil)

// NewRegistry returns an empty registry bound to a host.
func NewRegistry(host api.Host) *Registry {
	return &Registry{
		host:    host,
		plugins: cmap.New[*registeredPlugin](),
	}
}

// Register adds a plugin under its Info().ID.
func (r *Registry) Register(p api.Plugin) error {
	id := p.Info().ID
	if !r.plugins.SetIfAbsent(id, &registeredPlugin{plugin: p}) {
		return fmt.Errorf("%w: %s", ErrPluginRegistered, id)
	}
	pluginLogger.Debugf("registered plugin %s", id)
	return nil
}

// ActivatePlugin activates a registered plugin. Activating an active
// plugin is an error, reported by the plugin itself.
func (r *Registry) ActivatePlugin(pluginID string) error {
	entry, ok := r.plugins.Get(pluginID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPluginNotFound, pluginID)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.plugin.Activate(r.host); err != nil {
		return err
	}
	entry.active = true
	return nil
}

// DeactivatePlugin deactivates a registered plugin.
func (r *Registry) DeactivatePlugin(pluginID string) error {
	entry, ok := r.plugins.Get(pluginID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPluginNotFound, pluginID)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.plugin.Deactivate(); err != nil {
		return err
	}
	entry.active = false
	return nil
}

// Active reports whether a plugin is currently active.
func (r *Registry) Active(pluginID string) bool {
	entry, ok := r.plugins.Get(pluginID)
	if !ok {
		return false
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.active
}

// List returns the info of every registered plugin.
func (r *Registry) List() []api.PluginInfo {
	infos := make([]api.PluginInfo, 0, r.plugins.Count())
	r.plugins.IterCb(func(_ string, entry *registeredPlugin) {
		infos = append(infos, entry.plugin.Info())
	})
	return infos
}
