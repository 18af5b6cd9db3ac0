// Package resolver builds and queries the mapping between filesystem
// paths and locations in the instance tree declared by a Rojo project.
//
// Construction walks the project document (and any nested documents it
// references) once, producing an immutable Table. All filesystem access
// goes through the billy.Filesystem handed to the entry points, so the
// same code runs against the OS filesystem and against memfs fixtures.
package resolver

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/rbxkit/instancemap/api"
	"github.com/rbxkit/instancemap/internal/docparse"
	"github.com/rbxkit/instancemap/internal/globscope"
	"github.com/rbxkit/instancemap/internal/vpath"
)

// Partition maps a whole real file or directory subtree onto a
// virtual-path prefix. Its interior is resolved lazily by relative-path
// arithmetic at query time, never enumerated during construction.
type Partition struct {
	// RealPath is the absolute, slash-normalized root of the partition.
	RealPath string
	// Prefix is the virtual location the partition root stands for.
	Prefix vpath.Path
	// Scope holds the ignore rules active where the partition was declared.
	Scope globscope.Scope
}

// Table is the resolved project: explicit file mappings, ordered
// partitions, and the fixed container lists the classification queries
// run against. Immutable after construction; safe for concurrent readers.
type Table struct {
	fsys billy.Filesystem

	name     string
	mappings map[string]vpath.Path
	// partitions in registration order; queries search newest-first so
	// the most recently declared partition wins.
	partitions []Partition
	isGame     bool
	warnings   []string

	// activeDocs tracks the project documents currently being parsed,
	// from the root down to the innermost nested document. Re-entering
	// one means the documents reference each other in a cycle.
	activeDocs map[string]bool

	isolation []vpath.Path
	server    []vpath.Path
	client    []vpath.Path
}

func newTable(fsys billy.Filesystem) *Table {
	return &Table{
		fsys:       fsys,
		mappings:   map[string]vpath.Path{},
		activeDocs: map[string]bool{},
		isolation:  defaultIsolationContainers(),
		server:     defaultServerContainers(),
		client:     defaultClientContainers(),
	}
}

// Load builds a table from a project document on disk. Reading the root
// document is the only hard failure; a root document that fails schema
// validation yields an empty table carrying the validation warning.
func Load(fsys billy.Filesystem, projectPath string) (*Table, error) {
	projectPath = normPath(projectPath)
	data, err := util.ReadFile(fsys, projectPath)
	if err != nil {
		return nil, fmt.Errorf("read project %s: %w", projectPath, err)
	}
	t := newTable(fsys)
	doc, err := docparse.Decode(data)
	if err != nil {
		t.warnf("invalid project %s: %v", projectPath, err)
		return t, nil
	}
	t.name = doc.Name
	t.activeDocs[projectPath] = true
	t.parseDocument(doc, path.Dir(projectPath), vpath.Root(), nil, true)
	delete(t.activeDocs, projectPath)
	return t, nil
}

// Discover locates the project document governing dir and builds its
// table. With no document present the directory itself becomes a
// synthetic root. When several candidate documents compete, the first
// in lexical order wins and each passed-over candidate is recorded as
// a construction warning.
func Discover(fsys billy.Filesystem, dir string) (*Table, error) {
	dir = normPath(dir)
	chosen, ignored, err := docparse.FindProjectFile(fsys, dir)
	if errors.Is(err, docparse.ErrNoProject) {
		return SyntheticRoot(fsys, dir), nil
	}
	if err != nil {
		return nil, err
	}
	t, err := Load(fsys, chosen)
	if err != nil {
		return nil, err
	}
	for _, extra := range ignored {
		t.warnf("ambiguous project discovery in %s: ignoring %s", dir, extra)
	}
	return t, nil
}

// LoadDocument builds a table from an already-materialized document.
// Relative $path bindings resolve against baseDir.
func LoadDocument(fsys billy.Filesystem, doc *api.Document, baseDir string) (*Table, error) {
	t := newTable(fsys)
	t.name = doc.Name
	t.parseDocument(doc, normPath(baseDir), vpath.Root(), nil, true)
	return t, nil
}

// SyntheticRoot builds a table with a single partition binding baseDir
// to the tree root. Used when no project document exists: every
// resolution becomes an ancestor-relative match under one base directory.
func SyntheticRoot(fsys billy.Filesystem, baseDir string) *Table {
	t := newTable(fsys)
	t.partitions = append(t.partitions, Partition{RealPath: normPath(baseDir), Prefix: vpath.Root()})
	return t
}

// Name returns the root project's declared name ("" in synthetic mode).
func (t *Table) Name() string { return t.name }

// IsGame reports whether the tree declares a DataModel root anywhere.
// Tables without one never report isolation or network affiliation.
func (t *Table) IsGame() bool { return t.isGame }

// Warnings returns the construction warnings in the order recorded.
func (t *Table) Warnings() []string {
	out := make([]string, len(t.warnings))
	copy(out, t.warnings)
	return out
}

// Mappings returns a copy of the explicit file→virtual-path entries.
func (t *Table) Mappings() map[string]vpath.Path {
	out := make(map[string]vpath.Path, len(t.mappings))
	for k, v := range t.mappings {
		out[k] = v.Clone()
	}
	return out
}

// Partitions returns the registered partitions, oldest first.
func (t *Table) Partitions() []Partition {
	out := make([]Partition, len(t.partitions))
	copy(out, t.partitions)
	return out
}

func (t *Table) warnf(format string, args ...any) {
	t.warnings = append(t.warnings, fmt.Sprintf(format, args...))
}

// normPath slash-normalizes and cleans a filesystem path.
func normPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// resolveReal resolves a $path binding against the declaring document's
// directory.
func resolveReal(baseDir, p string) string {
	p = filepath.ToSlash(p)
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(baseDir, p)
}

// ancestorRel returns child relative to root when root is an
// ancestor-or-equal of child. Equal paths yield ("", true).
func ancestorRel(root, child string) (string, bool) {
	if child == root {
		return "", true
	}
	prefix := root
	if prefix != "/" {
		prefix += "/"
	}
	if len(child) <= len(prefix) || child[:len(prefix)] != prefix {
		return "", false
	}
	return child[len(prefix):], true
}

// realPath follows symlinks until p names the underlying file or
// directory, so bindings and queries agree on one canonical spelling.
// Link resolution failures are absorbed as warnings and leave the
// path as given.
func (t *Table) realPath(p string) string {
	const maxHops = 40
	resolved := p
	for i := 0; i < maxHops; i++ {
		info, err := t.fsys.Lstat(resolved)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			return resolved
		}
		target, err := t.fsys.Readlink(resolved)
		if err != nil {
			t.warnf("resolve link %s: %v", resolved, err)
			return resolved
		}
		target = filepath.ToSlash(target)
		if !path.IsAbs(target) {
			target = path.Join(path.Dir(resolved), target)
		}
		resolved = path.Clean(target)
	}
	t.warnf("too many levels of links resolving %s", p)
	return resolved
}

func (t *Table) isDir(p string) bool {
	info, err := t.fsys.Stat(p)
	return err == nil && info.IsDir()
}

func (t *Table) isFile(p string) bool {
	info, err := t.fsys.Stat(p)
	return err == nil && !info.IsDir()
}

func (t *Table) exists(p string) bool {
	_, err := t.fsys.Stat(p)
	return err == nil
}
