package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// mockSpecIO is an in-memory test double for SpecIO, keyed by path.
type mockSpecIO struct {
	files    map[string]string
	dirs     map[string]bool
	statErr  error
	scanErr  error
	writeErr error
	written  map[string]string
}

func newMockSpecIO() *mockSpecIO {
	return &mockSpecIO{
		files:   make(map[string]string),
		dirs:    make(map[string]bool),
		written: make(map[string]string),
	}
}

func (m *mockSpecIO) ReadFile(_ context.Context, path string) ([]byte, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(content), nil
}

func (m *mockSpecIO) StatFile(path string) (bool, bool, error) {
	if m.statErr != nil {
		return false, false, m.statErr
	}
	if m.dirs[path] {
		return true, true, nil
	}
	_, ok := m.files[path]
	return ok, false, nil
}

func (m *mockSpecIO) ScanSpecs(_ context.Context, dir string) ([]string, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	var specs []string
	for path := range m.files {
		if strings.HasPrefix(path, dir+"/") && filepath.Ext(path) == SpecExt {
			specs = append(specs, path)
		}
	}
	slices.Sort(specs)
	return specs, nil
}

func (m *mockSpecIO) WriteFileAtomic(path, content string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.written[path] = content
	m.files[path] = content
	return nil
}

var errDisk = errors.New("disk full")

const addItemSpec = `;===============================================
; User can add an item.
;===============================================
GIVEN an empty storage.
AND a key "hoge".
WHEN the user stores a value.
THEN the storage holds the value.
`

const twoScenarioSpec = `;===
; First scenario.
;===
GIVEN one thing.
THEN it holds.

;===
; Second scenario.
;===
WHEN something happens.
THEN it is observed.
`
