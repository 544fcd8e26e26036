package main

import "slices"

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Label() string {
	if d == SortDesc {
		return "Giảm dần"
	}
	return "Tăng dần"
}

type SortRule struct {
	Column string        `json:"column"`
	Order  SortDirection `json:"order"`
}

// SortableColumn is a logical sort key understood by the query service.
type SortableColumn struct {
	Key   string
	Label string
}

var sortableColumns = []SortableColumn{
	{Key: "ma_tbmt", Label: "Mã TBMT"},
	{Key: "investor", Label: "Chủ đầu tư"},
	{Key: "approvalDecision", Label: "Quyết định phê duyệt"},
	{Key: "approvalDate", Label: "Ngày phê duyệt"},
	{Key: "expiryDate", Label: "Ngày hết hiệu lực"},
	{Key: "unit", Label: "Đơn vị tính"},
	{Key: "quantity", Label: "Số lượng"},
	{Key: "unitPrice", Label: "Đơn giá trúng thầu (VND)"},
	{Key: "amount", Label: "Thành tiền (VND)"},
	{Key: "drugName", Label: "Tên thuốc"},
	{Key: "origin", Label: "Xuất xứ"},
	{Key: "winner", Label: "Nhà thầu trúng thầu"},
	{Key: "place", Label: "Địa điểm"},
	{Key: "validity", Label: "Tình trạng hiệu lực"},
}

// SortRules is the ordered multi-key sort; the first rule is the primary key.
type SortRules struct {
	columns []SortableColumn
	rules   []SortRule
}

func NewSortRules(columns []SortableColumn) *SortRules {
	return &SortRules{columns: columns}
}

func (s *SortRules) Rules() []SortRule {
	return slices.Clone(s.rules)
}

func (s *SortRules) Len() int {
	return len(s.rules)
}

func (s *SortRules) Columns() []SortableColumn {
	return s.columns
}

func (s *SortRules) Label(key string) string {
	for _, c := range s.columns {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}

// Add appends the default rule: first sortable column, ascending.
func (s *SortRules) Add() int {
	key := "ma_tbmt"
	if len(s.columns) > 0 {
		key = s.columns[0].Key
	}
	s.rules = append(s.rules, SortRule{Column: key, Order: SortAsc})
	return len(s.rules) - 1
}

// Move swaps rule i with its neighbour in direction delta (-1 up, +1 down).
// Moves past either end are no-ops.
func (s *SortRules) Move(i, delta int) bool {
	j := i + delta
	if i < 0 || i >= len(s.rules) || j < 0 || j >= len(s.rules) || i == j {
		return false
	}
	s.rules[i], s.rules[j] = s.rules[j], s.rules[i]
	return true
}

func (s *SortRules) MoveUp(i int) bool   { return s.Move(i, -1) }
func (s *SortRules) MoveDown(i int) bool { return s.Move(i, 1) }

func (s *SortRules) SetColumn(i int, key string) bool {
	if i < 0 || i >= len(s.rules) {
		return false
	}
	s.rules[i].Column = key
	return true
}

func (s *SortRules) SetOrder(i int, order SortDirection) bool {
	if i < 0 || i >= len(s.rules) || (order != SortAsc && order != SortDesc) {
		return false
	}
	s.rules[i].Order = order
	return true
}

// CycleColumn steps rule i to the next (or previous) sortable column.
func (s *SortRules) CycleColumn(i, delta int) bool {
	if i < 0 || i >= len(s.rules) || len(s.columns) == 0 {
		return false
	}
	cur := slices.IndexFunc(s.columns, func(c SortableColumn) bool { return c.Key == s.rules[i].Column })
	next := ((cur+delta)%len(s.columns) + len(s.columns)) % len(s.columns)
	return s.SetColumn(i, s.columns[next].Key)
}

func (s *SortRules) ToggleOrder(i int) bool {
	if i < 0 || i >= len(s.rules) {
		return false
	}
	if s.rules[i].Order == SortDesc {
		return s.SetOrder(i, SortAsc)
	}
	return s.SetOrder(i, SortDesc)
}

// Remove drops rule i and reports whether the list is now empty.
func (s *SortRules) Remove(i int) (removed, emptied bool) {
	if i < 0 || i >= len(s.rules) {
		return false, false
	}
	s.rules = slices.Delete(s.rules, i, i+1)
	return true, len(s.rules) == 0
}

func (s *SortRules) Clear() {
	s.rules = nil
}
