// Package api defines the contracts between the sleep-timer plugin and a
// media-player host.
package api

// Host exposes the player capabilities a plugin may use. Implementations
// wrap the real UI toolkit; the plugin never touches it directly.
type Host interface {
	// AttachMenu adds a menu to the host's menu bar and popup menu.
	// Item callbacks run on the host's event-dispatch context and must
	// not block.
	AttachMenu(menu Menu) (MenuHandle, error)

	// PromptInteger shows a modal integer prompt. ok is false when the
	// user aborted the dialog.
	PromptInteger(req IntegerPrompt) (value int, ok bool)

	// Exit terminates the host application. It may return before the
	// process is gone.
	Exit()
}

// Menu is a named menu with an ordered list of items.
type Menu struct {
	Label string
	Items []MenuItem
}

// MenuItem is a single selectable entry. OnSelect is invoked by the host
// when the user picks the item.
type MenuItem struct {
	Name     string
	Label    string
	Enabled  bool
	OnSelect func()
}

// MenuHandle controls a menu after it has been attached.
type MenuHandle interface {
	// SetItemEnabled toggles an item's sensitivity by item name.
	SetItemEnabled(name string, enabled bool) error
	// Detach removes the menu from the host.
	Detach() error
}

// IntegerPrompt describes a modal spin-button dialog.
type IntegerPrompt struct {
	Title   string
	Message string
	Min     int
	Max     int
	Default int
}
