// Package api defines the contracts between the sleep-timer plugin and a
// media-player host.
package api

// PluginInfo identifies a plugin to the host.
type PluginInfo struct {
	ID          string
	Name        string
	Version     string
	Description string
}

// Plugin is implemented by plugins the host can activate. Activate is
// called when the user enables the plugin; Deactivate when the user
// disables it, or when the host exits with the plugin still active.
type Plugin interface {
	Info() PluginInfo
	Activate(host Host) error
	Deactivate() error
}
