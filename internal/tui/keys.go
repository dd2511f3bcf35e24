package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	login     key.Binding
	register  key.Binding
	logout    key.Binding
	autoSync  key.Binding
	push      key.Binding
	pull      key.Binding
	takeCloud key.Binding
	takeLocal key.Binding
	copy      key.Binding
	version   key.Binding
	yes       key.Binding
	no        key.Binding
}

var keys = keyMap{
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
	login:     key.NewBinding(key.WithKeys("i")),
	register:  key.NewBinding(key.WithKeys("r")),
	logout:    key.NewBinding(key.WithKeys("o")),
	autoSync:  key.NewBinding(key.WithKeys("a")),
	push:      key.NewBinding(key.WithKeys("p")),
	pull:      key.NewBinding(key.WithKeys("g")),
	takeCloud: key.NewBinding(key.WithKeys("c")),
	takeLocal: key.NewBinding(key.WithKeys("l")),
	copy:      key.NewBinding(key.WithKeys("y")),
	version:   key.NewBinding(key.WithKeys("v")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n")),
}
