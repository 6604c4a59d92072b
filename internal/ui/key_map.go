package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enqueue   key.Binding
	queueNext key.Binding
	next      key.Binding
	previous  key.Binding
	remove    key.Binding
	repeat    key.Binding
	pause     key.Binding
	search    key.Binding
	back      key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enqueue:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "queue")),
		queueNext: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "queue next")),
		next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
		previous:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "previous")),
		remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "drop playing")),
		repeat:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat mode")),
		pause:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enqueue, k.search, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enqueue, k.queueNext},
		{k.next, k.previous, k.remove, k.repeat},
		{k.pause, k.search, k.back, k.quit},
	}
}
