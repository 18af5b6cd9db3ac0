package resolver

import (
	"path"

	"github.com/go-git/go-billy/v5/util"

	"github.com/rbxkit/instancemap/api"
	"github.com/rbxkit/instancemap/internal/docparse"
	"github.com/rbxkit/instancemap/internal/globscope"
	"github.com/rbxkit/instancemap/internal/vpath"
)

// parseDocument walks one project document. The top-level document's
// tree enters the virtual path under the project name; a nested document
// is reparented at the prefix it was discovered at, without pushing its
// own name (intentional, matches the original format's behavior).
func (t *Table) parseDocument(doc *api.Document, baseDir string, prefix vpath.Path, inherited globscope.Scope, topLevel bool) {
	scope := inherited
	if len(doc.GlobIgnorePaths) > 0 {
		scope = inherited.Extend(baseDir, doc.GlobIgnorePaths)
		for _, r := range scope[len(inherited):] {
			if !r.Valid() {
				t.warnf("invalid ignore glob %q in %s", r.Pattern, baseDir)
			}
		}
	}
	if topLevel {
		prefix = prefix.Append(doc.Name)
	}
	t.parseNode(doc.Tree, baseDir, prefix, scope)
}

// parseNode handles one declared tree node. The caller has already
// extended prefix with the node's name; recursion passes each child an
// owned copy of the extended prefix, so no shared stack exists.
func (t *Table) parseNode(node *api.Node, baseDir string, prefix vpath.Path, scope globscope.Scope) {
	if node.Path != nil {
		declared := resolveReal(baseDir, node.Path.Value)
		real := t.realPath(normalizeScriptExt(declared))
		t.parsePath(real, declared, prefix, scope, node.Path.Optional)
	}
	if node.ClassName == gameRootClass {
		t.isGame = true
	}
	for _, child := range node.Children {
		t.parseNode(child.Node, baseDir, prefix.Append(child.Name), scope)
	}
}

// parsePath classifies a resolved real path and registers whatever it
// stands for: a nested project document, a single file mapping, or a
// partition. real is the canonical spelling (extension normalized,
// links followed); declared is the spelling as resolved from the
// document, kept so existence and ignore checks see what the author
// wrote.
func (t *Table) parsePath(real, declared string, prefix vpath.Path, scope globscope.Scope, optional bool) {
	if scope.Matches(real) || scope.Matches(declared) {
		return
	}
	if !optional && !t.exists(declared) && !t.exists(real) {
		t.warnf("project path does not exist: %s", declared)
	}
	if docparse.IsProjectFilename(path.Base(real)) {
		t.loadNestedProject(real, prefix, scope)
		return
	}
	if isDataPath(real) {
		// A data module is a leaf: exactly one file, one virtual path,
		// never a partition, never searched further.
		t.mappings[real] = prefix.Clone()
		return
	}
	if t.isDir(real) {
		def := path.Join(real, docparse.DefaultFilename)
		if t.isFile(def) {
			// The default document is authoritative for this location.
			t.loadNestedProject(def, prefix, scope)
			return
		}
	}
	t.partitions = append(t.partitions, Partition{
		RealPath: real,
		Prefix:   prefix.Clone(),
		Scope:    scope,
	})
	if t.isDir(real) {
		t.probe(real, prefix, scope)
	}
}

// loadNestedProject reads and parses a nested project document at the
// current prefix. All failures are absorbed as warnings; the subtree is
// skipped, construction continues. A document already on the parse
// stack is not re-entered, so mutually referencing documents terminate.
func (t *Table) loadNestedProject(docPath string, prefix vpath.Path, scope globscope.Scope) {
	if t.activeDocs[docPath] {
		t.warnf("project document cycle: %s references itself", docPath)
		return
	}
	data, err := util.ReadFile(t.fsys, docPath)
	if err != nil {
		t.warnf("read project %s: %v", docPath, err)
		return
	}
	doc, err := docparse.Decode(data)
	if err != nil {
		t.warnf("invalid project %s: %v", docPath, err)
		return
	}
	t.activeDocs[docPath] = true
	t.parseDocument(doc, path.Dir(docPath), prefix, scope, false)
	delete(t.activeDocs, docPath)
}
