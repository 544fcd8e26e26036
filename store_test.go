package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestStoreBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return newMemoryStore() },
		"file": func(t *testing.T) Store {
			s, err := openFileStore(filepath.Join(t.TempDir(), "layout.json"), testLogger())
			assert.NilError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) Store {
			s, err := openSQLiteStore(filepath.Join(t.TempDir(), "layout.db"))
			assert.NilError(t, err)
			return s
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			_, ok, err := s.Get("columnOrderDf1")
			assert.NilError(t, err)
			assert.Assert(t, !ok)

			assert.NilError(t, s.Set("columnOrderDf1", `["A"]`))
			assert.NilError(t, s.Set("columnOrderDf1", `["B"]`))
			v, ok, err := s.Get("columnOrderDf1")
			assert.NilError(t, err)
			assert.Assert(t, ok)
			assert.Equal(t, v, `["B"]`)

			assert.NilError(t, s.Delete("columnOrderDf1"))
			assert.NilError(t, s.Delete("columnOrderDf1"))
			_, ok, _ = s.Get("columnOrderDf1")
			assert.Assert(t, !ok)
		})
	}
}

func TestPersistentStoresSurviveReopen(t *testing.T) {
	tests := []struct {
		name string
		open func(path string) (Store, error)
	}{
		{"file", func(p string) (Store, error) { return openFileStore(p, testLogger()) }},
		{"sqlite", func(p string) (Store, error) { return openSQLiteStore(p) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "state")
			s, err := tt.open(path)
			assert.NilError(t, err)
			assert.NilError(t, s.Set("colWidthDf2", `{"X":80}`))
			assert.NilError(t, s.Close())

			s, err = tt.open(path)
			assert.NilError(t, err)
			defer s.Close()
			v, ok, err := s.Get("colWidthDf2")
			assert.NilError(t, err)
			assert.Assert(t, ok)
			assert.Equal(t, v, `{"X":80}`)
		})
	}
}

func TestFileStoreStartsEmptyOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	assert.NilError(t, os.WriteFile(path, []byte("{not json"), 0644))
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := openFileStore(path, log)
	assert.NilError(t, err)

	_, ok, _ := s.Get("anything")
	assert.Assert(t, !ok)
	assert.Assert(t, strings.Contains(logs.String(), "store file unreadable"))

	assert.NilError(t, s.Set("columnOrderDf1", `["A"]`))
	assert.Assert(t, strings.Contains(logs.String(), "store flushed"))
	assert.Assert(t, strings.Contains(logs.String(), "keys=1"))
}

func TestOpenStoreByKind(t *testing.T) {
	dir := t.TempDir()

	s, err := openStore(&Config{Store: "memory"}, testLogger())
	assert.NilError(t, err)
	_, isMemory := s.(*memoryStore)
	assert.Assert(t, isMemory)

	s, err = openStore(&Config{Store: "file", StorePath: filepath.Join(dir, "a.json")}, testLogger())
	assert.NilError(t, err)
	_, isFile := s.(*fileStore)
	assert.Assert(t, isFile)

	s, err = openStore(&Config{Store: "sqlite", StorePath: filepath.Join(dir, "a.db")}, testLogger())
	assert.NilError(t, err)
	defer s.Close()
	_, isSQLite := s.(*sqliteStore)
	assert.Assert(t, isSQLite)

	_, err = openStore(&Config{Store: "redis"}, testLogger())
	assert.ErrorContains(t, err, "unknown store kind")
}

func TestLayoutRestoresFromSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.db")
	s, err := openSQLiteStore(path)
	assert.NilError(t, err)
	g := NewGrid(testSpecs(), s, testLogger())
	g.ReorderColumn(TableExtended, 1, 0)
	g.SetColumnWidth(TableExtended, 0, 77)
	assert.NilError(t, s.Close())

	s, err = openSQLiteStore(path)
	assert.NilError(t, err)
	defer s.Close()
	g = NewGrid(testSpecs(), s, testLogger())

	assert.DeepEqual(t, g.ColumnOrder(TableExtended), []string{"Y", "X"})
	px, ok := g.ColumnWidth(TableExtended, 0)
	assert.Assert(t, ok)
	assert.Equal(t, px, 77)
}
