package io

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/oeis-tools/collab/pkg/catalog"
)

func TestListReturnsOnlyRecordFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"A000045.json", "A000032.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0o755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	loader := NewDirectoryRecordLoader(dir)
	keys, err := loader.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := []string{"A000032.json", "A000045.json"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
}

func TestListMissingDirectory(t *testing.T) {
	t.Parallel()

	loader := NewDirectoryRecordLoader(filepath.Join(t.TempDir(), "missing"))
	if _, err := loader.List(context.Background()); !errors.Is(err, catalog.ErrUnreadable) {
		t.Fatalf("err = %v, want ErrUnreadable", err)
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := []byte(`{"results":[]}`)
	if err := os.WriteFile(filepath.Join(dir, "A000045.json"), content, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	loader := NewDirectoryRecordLoader(dir)

	data, err := loader.Read(context.Background(), "A000045.json")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !reflect.DeepEqual(data, content) {
		t.Fatalf("data = %q, want %q", data, content)
	}

	if _, err := loader.Read(context.Background(), "missing.json"); !errors.Is(err, catalog.ErrUnreadable) {
		t.Fatalf("err = %v, want ErrUnreadable", err)
	}
}
