// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back closes the inspector or leaves the current folder.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select opens a folder or inspects a document.
	Select key.Binding

	// Search focuses the name filter input.
	Search key.Binding

	// Refresh refetches the catalog.
	Refresh key.Binding

	// Star toggles the star on the selected document.
	Star key.Binding

	// Starred toggles the starred quick-access filter.
	Starred key.Binding

	// Recent toggles the recent quick-access filter.
	Recent key.Binding

	// Sort cycles the sort field.
	Sort key.Binding

	// SortDir flips the sort direction.
	SortDir key.Binding

	// Tree toggles the navigation tree pane.
	Tree key.Binding

	// Expand toggles expansion of the selected tree node.
	Expand key.Binding

	// NewFolder creates a folder in the current scope.
	NewFolder key.Binding

	// TierUp and TierDown change the selected document's security tier.
	TierUp   key.Binding
	TierDown key.Binding

	// Index toggles indexing of the selected document.
	Index key.Binding

	// Download resolves and opens a download URL.
	Download key.Binding

	// Verify runs integrity verification on the selected document.
	Verify key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/inspect"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Star: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "star"),
		),
		Starred: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "starred"),
		),
		Recent: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "recent"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort"),
		),
		SortDir: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "direction"),
		),
		Tree: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tree"),
		),
		Expand: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "expand"),
		),
		NewFolder: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new folder"),
		),
		TierUp: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "raise tier"),
		),
		TierDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "lower tier"),
		),
		Index: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "index"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verify"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Select, k.Help, k.Quit}
}

// ExplorerHelp returns keybindings for the explorer list.
func (k *KeyMap) ExplorerHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Search, k.Sort, k.Starred, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Search, k.Sort, k.SortDir, k.Starred, k.Recent},
		{k.Star, k.TierUp, k.TierDown, k.Index, k.Download, k.Verify},
		{k.Tree, k.Expand, k.NewFolder, k.Refresh},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
