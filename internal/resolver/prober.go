package resolver

import (
	"path"

	"github.com/rbxkit/instancemap/internal/docparse"
	"github.com/rbxkit/instancemap/internal/globscope"
	"github.com/rbxkit/instancemap/internal/vpath"
)

// probe walks a partition's directory looking for nested project
// documents. It builds no file mappings: a partition's interior resolves
// lazily at query time. prefix is the virtual location of dir itself.
func (t *Table) probe(dir string, prefix vpath.Path, scope globscope.Scope) {
	// A default-named document takes over this level; nothing beneath it
	// belongs to the enclosing walk.
	def := path.Join(dir, docparse.DefaultFilename)
	if t.isFile(def) {
		t.loadNestedProject(def, prefix, scope)
		return
	}
	if scope.Matches(dir) {
		return
	}
	entries, err := t.fsys.ReadDir(dir)
	if err != nil {
		t.warnf("list %s: %v", dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == docparse.DefaultFilename || !docparse.IsProjectFilename(name) {
			continue
		}
		// A named project file sits inside this level; it does not
		// introduce a tree level of its own.
		t.loadNestedProject(path.Join(dir, name), prefix, scope)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			t.probe(path.Join(dir, entry.Name()), prefix.Append(entry.Name()), scope)
		}
	}
}
