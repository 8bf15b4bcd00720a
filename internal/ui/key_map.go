package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	tab        key.Binding
	enter      key.Binding
	logs       key.Binding
	autoscroll key.Binding
	timeline   key.Binding
	sync       key.Binding
	start      key.Binding
	stop       key.Binding
	logout     key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		tab:        key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		logs:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logs")),
		autoscroll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autoscroll")),
		timeline:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timeline")),
		sync:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync now")),
		start:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "start scheduler")),
		stop:       key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "stop scheduler")),
		logout:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "log out")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.logs, k.autoscroll, k.timeline},
		{k.sync, k.start, k.stop},
		{k.logout, k.quit},
	}
}
