package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// CollectWheels copies every wheel in dir into the store's wheel namespace.
// Returns the collected names. A missing dir is not an error: a failed cell
// simply has nothing to collect.
func CollectWheels(store Store, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read wheel output dir: %w", err)
	}
	var collected []string
	for _, entry := range entries {
		if entry.IsDir() || !IsWheelFile(entry.Name()) {
			continue
		}
		if err := store.Put(KindWheel, entry.Name(), filepath.Join(dir, entry.Name())); err != nil {
			return collected, err
		}
		collected = append(collected, entry.Name())
	}
	return collected, nil
}

// CollectConda copies every conda package under dir into the store's conda
// namespace, preserving the per-platform subdirectory as a name prefix.
func CollectConda(store Store, dir string) ([]string, error) {
	var collected []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == dir {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !IsCondaFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if err := store.Put(KindConda, name, p); err != nil {
			return err
		}
		collected = append(collected, name)
		return nil
	})
	if err != nil {
		return collected, fmt.Errorf("collect conda packages: %w", err)
	}
	return collected, nil
}
