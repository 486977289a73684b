// Package api defines the contracts between the sleep-timer plugin and a
// media-player host.
package api

// Lifecycle is the host-side surface for activating and deactivating
// registered plugins by ID.
type Lifecycle interface {
	ActivatePlugin(pluginID string) error
	DeactivatePlugin(pluginID string) error
}
