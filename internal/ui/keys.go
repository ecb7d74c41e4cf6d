package ui

// Keybinding represents a keyboard shortcut with its display name.
type Keybinding struct {
	Key  string // actual key(s) to match
	Desc string // description for help display
}

// Global keybindings (always available)
var (
	KeyQuit        = Keybinding{Key: "q", Desc: "Quit"}
	KeyQuitAlt     = Keybinding{Key: "ctrl+c", Desc: "Quit"}
	KeySortMode    = Keybinding{Key: "s", Desc: "Sort"}
	KeyResolve     = Keybinding{Key: "d", Desc: "Toggle DNS"}
	KeyRefreshUp   = Keybinding{Key: "+", Desc: "Faster refresh"}
	KeyRefreshDown = Keybinding{Key: "-", Desc: "Slower refresh"}
)

// Sort mode keybindings
var (
	KeyLeft     = Keybinding{Key: "left", Desc: "Previous column"}
	KeyLeftAlt  = Keybinding{Key: "h", Desc: "Previous column"}
	KeyRight    = Keybinding{Key: "right", Desc: "Next column"}
	KeyRightAlt = Keybinding{Key: "l", Desc: "Next column"}
	KeyApply    = Keybinding{Key: "enter", Desc: "Apply sort"}
	KeyCancel   = Keybinding{Key: "esc", Desc: "Cancel"}
)

// matchKey checks if the input matches any of the keybindings.
func matchKey(input string, keys ...Keybinding) bool {
	for _, k := range keys {
		if input == k.Key {
			return true
		}
	}
	return false
}
