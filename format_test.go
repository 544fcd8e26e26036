package main

import (
	"encoding/json"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		f    formatter
		in   any
		want string
	}{
		{"number grouping", formatNumber, 1234567.0, "1.234.567"},
		{"number from json", formatNumber, json.Number("2500"), "2.500"},
		{"number from string", formatNumber, "42", "42"},
		{"number not numeric", formatNumber, "n/a", "n/a"},
		{"number nil", formatNumber, nil, ""},
		{"currency rounds", formatCurrency, 1234.567, "1.234,57"},
		{"date iso", formatDate, "2024-03-05", "05/03/2024"},
		{"date with time", formatDate, "2024-03-05T10:20:00", "05/03/2024"},
		{"date garbage", formatDate, "abc", ""},
		{"date nil", formatDate, nil, ""},
		{"export date keeps garbage", formatDateKeep, "chưa rõ", "chưa rõ"},
		{"export date formats", formatDateKeep, "2024-12-31", "31/12/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.f(tt.in), tt.want)
		})
	}
}

func TestCellString(t *testing.T) {
	assert.Equal(t, cellString(nil), "")
	assert.Equal(t, cellString("x"), "x")
	assert.Equal(t, cellString(12.5), "12.5")
	assert.Equal(t, cellString(3.0), "3")
	assert.Equal(t, cellString(true), "true")
	assert.Equal(t, cellString(7), "7")
}

func TestRelativeAge(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{5 * time.Minute, "5 phút trước"},
		{90 * time.Minute, "2 giờ trước"},
		{72 * time.Hour, "3 ngày trước"},
	}
	for _, tt := range tests {
		assert.Equal(t, relativeAge(now, now.Add(-tt.ago)), tt.want)
	}
}

func TestParseDateInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "", true},
		{"05/03/2024", "2024-03-05", true},
		{"5/3/2024", "2024-03-05", true},
		{"2024-03-05", "2024-03-05", true},
		{"31/02/2024", "", false},
		{"hôm qua", "", false},
	}
	for _, tt := range tests {
		got, ok := parseDateInput(tt.in)
		assert.Equal(t, ok, tt.ok, tt.in)
		assert.Equal(t, got, tt.want, tt.in)
	}
}

func TestSplitList(t *testing.T) {
	assert.DeepEqual(t, splitList(""), []string{})
	assert.DeepEqual(t, splitList(" Tỉnh An Giang , ,Hà Nội"), []string{"Tỉnh An Giang", "Hà Nội"})
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, clampInt(5, 0, 3), 3)
	assert.Equal(t, clampInt(-1, 0, 3), 0)
	assert.Equal(t, clampInt(2, 0, -1), 0)
}

func TestTimestampedName(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 30, 15, 0, time.UTC)

	assert.Equal(t, timestampedName("standard-table", ".png", now), "standard-table_20240510_083015.png")
}
