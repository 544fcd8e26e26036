package main

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit        key.Binding
	Filter      key.Binding
	ResetFilter key.Binding
	Sort        key.Binding
	History     key.Binding
	Export      key.Binding
	Copy        key.Binding
	SwitchTable key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	ExtendUp    key.Binding
	ExtendDown  key.Binding
	ExtendLeft  key.Binding
	ExtendRight key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	MoveLeft    key.Binding
	MoveRight   key.Binding
	Narrow      key.Binding
	Widen       key.Binding
	ResetLayout key.Binding
	Undo        key.Binding
	Redo        key.Binding
	Cancel      key.Binding
	ToggleHelp  key.Binding
}

var keys = KeyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Filter:      key.NewBinding(key.WithKeys("f", "/"), key.WithHelp("f", "filter")),
	ResetFilter: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "reset filter")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort rules")),
	History:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "update history")),
	Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
	Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy range")),
	SwitchTable: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch table")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	ExtendUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("⇧↑", "extend up")),
	ExtendDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("⇧↓", "extend down")),
	ExtendLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("⇧←", "extend left")),
	ExtendRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("⇧→", "extend right")),
	PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	MoveLeft:    key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move column left")),
	MoveRight:   key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move column right")),
	Narrow:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrow column")),
	Widen:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "widen column")),
	ResetLayout: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset layout")),
	Undo:        key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo layout")),
	Redo:        key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "redo layout")),
	Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	ToggleHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Sort, k.Copy, k.SwitchTable, k.Export, k.ToggleHelp, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.SwitchTable},
		{k.ExtendUp, k.ExtendDown, k.ExtendLeft, k.ExtendRight, k.Copy},
		{k.MoveLeft, k.MoveRight, k.Narrow, k.Widen, k.ResetLayout, k.Undo, k.Redo},
		{k.Filter, k.ResetFilter, k.Sort, k.History, k.Export, k.Cancel, k.ToggleHelp, k.Quit},
	}
}

// sortKeyMap drives the sort rule panel.
type sortKeyMap struct {
	Add      key.Binding
	Remove   key.Binding
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	PrevCol  key.Binding
	NextCol  key.Binding
	Toggle   key.Binding
	Apply    key.Binding
	Reset    key.Binding
	Close    key.Binding
}

var sortKeys = sortKeyMap{
	Add:      key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "add rule")),
	Remove:   key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "remove rule")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "select")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select")),
	MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
	MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
	PrevCol:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
	NextCol:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
	Toggle:   key.NewBinding(key.WithKeys(" ", "o"), key.WithHelp("space", "asc/desc")),
	Apply:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset sort")),
	Close:    key.NewBinding(key.WithKeys("esc", "s"), key.WithHelp("esc", "close")),
}

func (k sortKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Remove, k.MoveUp, k.MoveDown, k.PrevCol, k.Toggle, k.Apply, k.Reset, k.Close}
}

func (k sortKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
