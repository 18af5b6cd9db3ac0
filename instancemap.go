// Package instancemap resolves filesystem paths to locations in the
// Roblox instance tree declared by a Rojo project file. It answers, for
// a compiler or tooling pipeline: what virtual path does this file map
// to, what runtime role does it play, and is it visible from some other
// location in the tree.
package instancemap

import (
	"github.com/go-git/go-billy/v5"

	"github.com/rbxkit/instancemap/api"
	"github.com/rbxkit/instancemap/internal/docparse"
	"github.com/rbxkit/instancemap/internal/resolver"
	"github.com/rbxkit/instancemap/internal/vpath"
)

// Public aliases for the internal types that make up the query surface.
// These are Go type aliases (=) — identical to the internal types at
// compile time, so no conversions are needed anywhere.

type Table = resolver.Table
type Partition = resolver.Partition
type Role = resolver.Role
type Relation = resolver.Relation
type Network = resolver.Network
type Path = vpath.Path
type SchemaError = docparse.SchemaError

const (
	RoleUnknown     = resolver.RoleUnknown
	RoleModule      = resolver.RoleModule
	RoleScript      = resolver.RoleScript
	RoleLocalScript = resolver.RoleLocalScript

	RelationOutToOut = resolver.RelationOutToOut
	RelationOutToIn  = resolver.RelationOutToIn
	RelationInToOut  = resolver.RelationInToOut
	RelationInToIn   = resolver.RelationInToIn

	NetworkUnknown = resolver.NetworkUnknown
	NetworkClient  = resolver.NetworkClient
	NetworkServer  = resolver.NetworkServer
)

// ErrNoProject is returned by FindProjectFile when a directory contains
// no project document.
var ErrNoProject = docparse.ErrNoProject

// Load builds a resolver table from a project document on disk.
// Construction failures inside the tree are absorbed into
// Table.Warnings; only an unreadable root document is an error.
func Load(fsys billy.Filesystem, projectPath string) (*Table, error) {
	return resolver.Load(fsys, projectPath)
}

// LoadDocument builds a table from an already-parsed project document,
// resolving relative path bindings against baseDir.
func LoadDocument(fsys billy.Filesystem, doc *api.Document, baseDir string) (*Table, error) {
	return resolver.LoadDocument(fsys, doc, baseDir)
}

// SyntheticRoot builds a table mapping baseDir onto the tree root, for
// use when no project document exists.
func SyntheticRoot(fsys billy.Filesystem, baseDir string) *Table {
	return resolver.SyntheticRoot(fsys, baseDir)
}

// Discover locates the project document governing dir and builds its
// table, falling back to a synthetic root when none exists. Passed-over
// candidates from an ambiguous discovery land in Table.Warnings.
func Discover(fsys billy.Filesystem, dir string) (*Table, error) {
	return resolver.Discover(fsys, dir)
}

// ClassifyRole reports the runtime role of a file by its extension.
func ClassifyRole(filePath string) Role {
	return resolver.ClassifyRole(filePath)
}

// ParseDocument decodes and validates a project document. Validation
// failures are reported as a *SchemaError.
func ParseDocument(data []byte) (*api.Document, error) {
	return docparse.Decode(data)
}

// FindProjectFile locates the project document for dir: the default
// name wins, otherwise the first "*.project.json" (or legacy-named)
// candidate in name order; the rest come back as ignored.
func FindProjectFile(fsys billy.Filesystem, dir string) (chosen string, ignored []string, err error) {
	return docparse.FindProjectFile(fsys, dir)
}
