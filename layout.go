package main

import (
	"encoding/json"
	"log/slog"
	"slices"
)

// columnLayout owns the column order and widths of one logical table.
// The order is always a permutation of the table's canonical columns.
// Widths are keyed by column name so a reorder carries them along.
type columnLayout struct {
	spec   tableSpec
	store  Store
	log    *slog.Logger
	order  []string
	widths map[string]int
}

func newColumnLayout(spec tableSpec, store Store, log *slog.Logger) *columnLayout {
	l := &columnLayout{
		spec:   spec,
		store:  store,
		log:    log.With(slog.String("table", string(spec.ID))),
		order:  slices.Clone(spec.Columns),
		widths: make(map[string]int),
	}
	l.restore()
	return l
}

func (l *columnLayout) restore() {
	if raw, ok := l.load(l.spec.OrderKey); ok {
		var parsed []string
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil || !isPermutation(parsed, l.spec.Columns) {
			l.log.Warn("stored column order invalid, using default", slog.String("key", l.spec.OrderKey))
			l.forget(l.spec.OrderKey)
		} else {
			l.order = parsed
			l.log.Info("column order restored", slog.Any("order", parsed))
		}
	}

	if raw, ok := l.load(l.spec.WidthKey); ok {
		var parsed map[string]int
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			l.log.Warn("stored column widths invalid, discarding", slog.String("key", l.spec.WidthKey), slog.Any("error", err))
			l.forget(l.spec.WidthKey)
			return
		}
		for name, px := range parsed {
			if !slices.Contains(l.spec.Columns, name) {
				continue
			}
			l.widths[name] = max(minColumnWidth, px)
		}
	}
}

// isPermutation reports whether candidate holds exactly the canonical names.
func isPermutation(candidate, canonical []string) bool {
	if len(candidate) != len(canonical) {
		return false
	}
	seen := make(map[string]bool, len(candidate))
	for _, name := range candidate {
		if seen[name] || !slices.Contains(canonical, name) {
			return false
		}
		seen[name] = true
	}
	return true
}

func (l *columnLayout) Order() []string {
	return slices.Clone(l.order)
}

func (l *columnLayout) Len() int {
	return len(l.order)
}

// SetOrder accepts only permutations of the canonical set. Anything else
// reverts to the canonical order and clears the stored value.
func (l *columnLayout) SetOrder(order []string) bool {
	if !isPermutation(order, l.spec.Columns) {
		l.log.Warn("rejected column order, reverting to default", slog.Any("order", order))
		l.order = slices.Clone(l.spec.Columns)
		l.forget(l.spec.OrderKey)
		return false
	}
	l.order = slices.Clone(order)
	l.save(l.spec.OrderKey, l.order)
	return true
}

// Move removes the column at from and inserts it before to in the shortened
// sequence, appending when to falls past its end.
func (l *columnLayout) Move(from, to int) bool {
	n := len(l.order)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	return l.SetOrder(moveElement(l.order, from, to))
}

func moveElement(order []string, from, to int) []string {
	moved := order[from]
	next := slices.Delete(slices.Clone(order), from, from+1)
	if to >= len(next) {
		return append(next, moved)
	}
	return slices.Insert(next, to, moved)
}

func (l *columnLayout) Name(index int) (string, bool) {
	if index < 0 || index >= len(l.order) {
		return "", false
	}
	return l.order[index], true
}

func (l *columnLayout) IndexOf(name string) int {
	return slices.Index(l.order, name)
}

// Width returns the stored width of the column currently at index.
func (l *columnLayout) Width(index int) (int, bool) {
	name, ok := l.Name(index)
	if !ok {
		return 0, false
	}
	return l.WidthOf(name)
}

func (l *columnLayout) WidthOf(name string) (int, bool) {
	px, ok := l.widths[name]
	return px, ok
}

// SetWidth clamps px to the minimum width and persists it immediately.
// It returns the stored width, or 0 when index is out of range.
func (l *columnLayout) SetWidth(index, px int) int {
	name, ok := l.Name(index)
	if !ok {
		return 0
	}
	return l.SetWidthOf(name, px)
}

func (l *columnLayout) SetWidthOf(name string, px int) int {
	if !slices.Contains(l.spec.Columns, name) {
		return 0
	}
	px = max(minColumnWidth, px)
	l.widths[name] = px
	l.save(l.spec.WidthKey, l.widths)
	return px
}

func (l *columnLayout) ClearWidth(name string) {
	if _, ok := l.widths[name]; !ok {
		return
	}
	delete(l.widths, name)
	if len(l.widths) == 0 {
		l.forget(l.spec.WidthKey)
		return
	}
	l.save(l.spec.WidthKey, l.widths)
}

func (l *columnLayout) Widths() map[string]int {
	out := make(map[string]int, len(l.widths))
	for k, v := range l.widths {
		out[k] = v
	}
	return out
}

// Reset restores the canonical order and drops every stored width.
func (l *columnLayout) Reset() {
	l.order = slices.Clone(l.spec.Columns)
	l.widths = make(map[string]int)
	l.forget(l.spec.OrderKey)
	l.forget(l.spec.WidthKey)
}

func (l *columnLayout) load(key string) (string, bool) {
	raw, ok, err := l.store.Get(key)
	if err != nil {
		l.log.Warn("failed to read layout state", slog.String("key", key), slog.Any("error", err))
		return "", false
	}
	return raw, ok
}

func (l *columnLayout) save(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		l.log.Error("failed to encode layout state", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := l.store.Set(key, string(raw)); err != nil {
		l.log.Error("failed to persist layout state", slog.String("key", key), slog.Any("error", err))
	}
}

func (l *columnLayout) forget(key string) {
	if err := l.store.Delete(key); err != nil {
		l.log.Error("failed to clear layout state", slog.String("key", key), slog.Any("error", err))
	}
}
