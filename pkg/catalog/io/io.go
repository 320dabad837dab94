package io

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oeis-tools/collab/pkg/catalog"
)

// DirectoryRecordLoader loads record documents from a local directory.
// Only files in the directory itself are considered; subdirectories and
// files without the record extension are ignored.
type DirectoryRecordLoader struct {
	dir string
}

// NewDirectoryRecordLoader creates a loader over the given directory.
func NewDirectoryRecordLoader(dir string) *DirectoryRecordLoader {
	return &DirectoryRecordLoader{
		dir: dir,
	}
}

// List returns the names of all record files in the directory.
func (l *DirectoryRecordLoader) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", catalog.ErrUnreadable, l.dir, err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !catalog.IsRecordKey(entry.Name()) {
			continue
		}
		keys = append(keys, entry.Name())
	}
	return keys, nil
}

// Read returns the content of one record file.
func (l *DirectoryRecordLoader) Read(ctx context.Context, key string) ([]byte, error) {
	path := filepath.Join(l.dir, key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", catalog.ErrUnreadable, path, err)
	}
	return data, nil
}
