// Package genfs collects generated files in memory and batch-writes
// them to disk, or batch-verifies that what is on disk already matches.
// Verify supports the go-generate discipline where CI checks committed
// output instead of regenerating it.
package genfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

const writeConcurrency = 8

// FS holds generated file contents keyed by relative path. Files may
// not be replaced once added; a path conflict is an error.
type FS struct {
	mu    sync.Mutex
	files map[string][]byte
}

// New returns an empty FS.
func New() *FS {
	return &FS{files: make(map[string][]byte)}
}

// Add records the contents for a relative path.
func (f *FS) Add(path string, data []byte) error {
	if filepath.IsAbs(path) {
		return fmt.Errorf("generated files must have relative paths, got %s", path)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.files[path]; exists {
		return fmt.Errorf("duplicate generated file %s", path)
	}
	f.files[path] = data
	return nil
}

// Len returns the number of files held.
func (f *FS) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

// Paths returns every held path in sorted order.
func (f *FS) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	paths := make([]string, 0, len(f.files))
	for p := range f.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Get returns the contents for a path.
func (f *FS) Get(path string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.files[path]
	return b, ok
}

type entry struct {
	path string
	data []byte
}

func (f *FS) toSlice() []entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entry, 0, len(f.files))
	for p, b := range f.files {
		out = append(out, entry{path: p, data: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out
}

// Write writes every held file under prefix, creating directories as
// needed. Writes run in parallel, bounded by a small worker limit.
func (f *FS) Write(ctx context.Context, prefix string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(writeConcurrency)
	for _, it := range f.toSlice() {
		g.Go(func() error {
			path := filepath.Join(prefix, it.path)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("%s: creating parent dir: %w", path, err)
			}
			if err := os.WriteFile(path, it.data, 0o644); err != nil {
				return fmt.Errorf("%s: writing file: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Verify compares every held file against the filesystem under prefix
// and aggregates one error per missing or differing file.
func (f *FS) Verify(ctx context.Context, prefix string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(writeConcurrency)
	var mu sync.Mutex
	var result *multierror.Error
	for _, it := range f.toSlice() {
		g.Go(func() error {
			path := filepath.Join(prefix, it.path)
			ondisk, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					mu.Lock()
					result = multierror.Append(result, fmt.Errorf("%s: generated file should exist, but does not", path))
					mu.Unlock()
					return nil
				}
				return fmt.Errorf("%s: reading file: %w", path, err)
			}
			if diff := cmp.Diff(string(ondisk), string(it.data)); diff != "" {
				mu.Lock()
				result = multierror.Append(result, fmt.Errorf("%s would have changed:\n\n%s", path, diff))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return result.ErrorOrNil()
}
