package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind distinguishes the two packaging formats, each with its own flat
// namespace in the store.
type Kind string

const (
	KindWheel Kind = "wheel"
	KindConda Kind = "conda"
)

// Store is the shared artifact namespace every matrix cell feeds into.
// Names are namespace-relative (conda names keep their platform subdir).
// Put overwrites on collision: reproducible builds make last-write-wins
// safe.
type Store interface {
	Put(kind Kind, name string, src string) error
	List(kind Kind) ([]string, error)
	Path(kind Kind, name string) string
}

// DirStore is a directory-backed Store with one subtree per kind.
type DirStore struct {
	root string
}

// NewDirStore creates the backing directories under root.
func NewDirStore(root string) (*DirStore, error) {
	for _, kind := range []Kind{KindWheel, KindConda} {
		if err := os.MkdirAll(filepath.Join(root, string(kind)), 0o750); err != nil {
			return nil, fmt.Errorf("create artifact store: %w", err)
		}
	}
	return &DirStore{root: root}, nil
}

// Put copies src into the namespace under name, replacing any existing
// entry with that name.
func (s *DirStore) Put(kind Kind, name string, src string) error {
	dst := s.Path(kind, name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("create namespace dir: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open artifact %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create artifact %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy artifact %s: %w", name, err)
	}
	return out.Close()
}

// List returns all names in the kind's namespace, sorted, with conda
// platform subdirs preserved as name prefixes.
func (s *DirStore) List(kind Kind) ([]string, error) {
	root := filepath.Join(s.root, string(kind))
	var names []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s artifacts: %w", kind, err)
	}
	sort.Strings(names)
	return names, nil
}

// Path returns the filesystem location for a namespace entry.
func (s *DirStore) Path(kind Kind, name string) string {
	return filepath.Join(s.root, string(kind), filepath.FromSlash(name))
}

// Decide reports whether the kind's namespace holds at least one artifact
// matching the expected naming pattern. It is computed independently per
// kind: a missing wheel namespace must not block a conda upload and vice
// versa.
func Decide(store Store, kind Kind) (bool, error) {
	names, err := store.List(kind)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if matches(kind, name) {
			return true, nil
		}
	}
	return false, nil
}

func matches(kind Kind, name string) bool {
	switch kind {
	case KindWheel:
		_, err := ParseWheelName(name)
		return err == nil
	case KindConda:
		_, err := ParseCondaName(name)
		return err == nil
	default:
		return false
	}
}

// FilterValid returns the subset of names that parse as the kind's naming
// pattern. Stray files (logs, checksums) in the namespace are ignored by
// the upload gate.
func FilterValid(kind Kind, names []string) []string {
	var valid []string
	for _, name := range names {
		if matches(kind, name) {
			valid = append(valid, name)
		}
	}
	return valid
}

// IsWheelFile is a cheap suffix check used when scanning build output
// directories before full name validation.
func IsWheelFile(name string) bool { return strings.HasSuffix(name, ".whl") }

// IsCondaFile is the conda counterpart of IsWheelFile.
func IsCondaFile(name string) bool { return strings.HasSuffix(name, ".tar.bz2") }
