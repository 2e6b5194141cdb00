package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the §6 key-binding table, expressed as bubbles/key.Binding
// values so Update can dispatch with key.Matches the way most bubbletea
// apps in the corpus structure their key handling.
type KeyMap struct {
	Down          key.Binding
	Up            key.Binding
	PageDown      key.Binding
	PageUp        key.Binding
	Collapse      key.Binding
	Expand        key.Binding
	ToggleFold    key.Binding
	OpenDiff      key.Binding
	Quit          key.Binding
	SearchForward key.Binding
	SearchBack    key.Binding
	NextMatch     key.Binding
	PrevMatch     key.Binding
	Cancel        key.Binding
}

// DefaultKeyMap returns the bindings spec.md §6 enumerates verbatim:
// "j/Down next row, k/Up previous row, PgDn/PgUp page, h/Left
// collapse/ascend, l/Right expand/descend or follow commit-link, Space
// toggle fold / follow link, Enter open diff, q close diff or quit,
// /? start forward/backward search, n/N next/previous match, Esc cancel
// search."
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down:          key.NewBinding(key.WithKeys("j", "down")),
		Up:            key.NewBinding(key.WithKeys("k", "up")),
		PageDown:      key.NewBinding(key.WithKeys("pgdown")),
		PageUp:        key.NewBinding(key.WithKeys("pgup")),
		Collapse:      key.NewBinding(key.WithKeys("h", "left")),
		Expand:        key.NewBinding(key.WithKeys("l", "right")),
		ToggleFold:    key.NewBinding(key.WithKeys(" ")),
		OpenDiff:      key.NewBinding(key.WithKeys("enter")),
		Quit:          key.NewBinding(key.WithKeys("q")),
		SearchForward: key.NewBinding(key.WithKeys("/")),
		SearchBack:    key.NewBinding(key.WithKeys("?")),
		NextMatch:     key.NewBinding(key.WithKeys("n")),
		PrevMatch:     key.NewBinding(key.WithKeys("N")),
		Cancel:        key.NewBinding(key.WithKeys("esc")),
	}
}
