package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SpecExt is the file extension of plain-text GWT specs.
const SpecExt = ".txt"

// SpecIO handles file I/O for the parse and scaffold commands.
type SpecIO interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// StatFile reports whether path exists and whether it is a directory.
	StatFile(path string) (exists, isDir bool, err error)
	// ScanSpecs returns the spec files under dir in lexical order.
	ScanSpecs(ctx context.Context, dir string) ([]string, error)
	WriteFileAtomic(path, content string) error
}

// fileSpecIO implements SpecIO using OS file I/O.
type fileSpecIO struct{}

func newDefaultSpecIO() *fileSpecIO {
	return &fileSpecIO{}
}

func (f *fileSpecIO) ReadFile(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// StatFile returns an error only for unexpected OS errors.
func (f *fileSpecIO) StatFile(path string) (bool, bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return true, info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, false, nil
	}
	return false, false, err
}

func (f *fileSpecIO) ScanSpecs(ctx context.Context, dir string) ([]string, error) {
	return ScanSpecsImpl(ctx, dir)
}

func (f *fileSpecIO) WriteFileAtomic(path, content string) error {
	return WriteFileAtomicImpl(path, content)
}

// ScanSpecsImpl walks dir recursively, collecting every spec file.
// It is an Impl function: it performs OS filesystem operations and is
// excluded from unit test coverage calculations.
func ScanSpecsImpl(ctx context.Context, dir string) ([]string, error) {
	var specs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SpecExt) {
			specs = append(specs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	slices.Sort(specs)
	return specs, nil
}

// WriteFileAtomicImpl writes content to path via a temp file rename,
// creating parent directories as needed.
func WriteFileAtomicImpl(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".spicy-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write([]byte(content)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
