package resolver

import (
	"path"
	"strings"

	"github.com/rbxkit/instancemap/internal/vpath"
)

// Role classifies what a file contributes at runtime.
type Role int

const (
	RoleUnknown Role = iota
	// RoleModule: a module script or any recognized data file.
	RoleModule
	// RoleScript: a server-only script (.server sub-extension).
	RoleScript
	// RoleLocalScript: a client-only script (.client sub-extension).
	RoleLocalScript
)

func (r Role) String() string {
	switch r {
	case RoleModule:
		return "Module"
	case RoleScript:
		return "Script"
	case RoleLocalScript:
		return "LocalScript"
	default:
		return "Unknown"
	}
}

// Relation classifies visibility between a file and a module relative to
// the isolation containers.
type Relation int

const (
	RelationOutToOut Relation = iota
	RelationOutToIn
	RelationInToOut
	RelationInToIn
)

func (r Relation) String() string {
	switch r {
	case RelationOutToIn:
		return "OutToIn"
	case RelationInToOut:
		return "InToOut"
	case RelationInToIn:
		return "InToIn"
	default:
		return "OutToOut"
	}
}

// Network classifies which side of the client/server boundary a virtual
// location executes on.
type Network int

const (
	NetworkUnknown Network = iota
	NetworkClient
	NetworkServer
)

func (n Network) String() string {
	switch n {
	case NetworkClient:
		return "Client"
	case NetworkServer:
		return "Server"
	default:
		return "Unknown"
	}
}

func defaultIsolationContainers() []vpath.Path {
	return []vpath.Path{
		vpath.New("StarterGui"),
		vpath.New("StarterPack"),
		vpath.New("StarterPlayer", "StarterPlayerScripts"),
		vpath.New("StarterPlayer", "StarterCharacterScripts"),
	}
}

func defaultServerContainers() []vpath.Path {
	return []vpath.Path{
		vpath.New("ServerScriptService"),
		vpath.New("ServerStorage"),
	}
}

func defaultClientContainers() []vpath.Path {
	return []vpath.Path{
		vpath.New("StarterGui"),
		vpath.New("StarterPack"),
		vpath.New("StarterPlayer"),
	}
}

// Resolve maps a file path to its virtual location. Explicit file
// mappings win; otherwise the newest-registered partition whose root is
// an ancestor-or-equal of the file (and whose ignore scope does not
// exclude it) supplies the prefix, and the remaining path segments
// descend from there. ok is false when nothing matches.
func (t *Table) Resolve(filePath string) (vp vpath.Path, ok bool) {
	real := normalizeScriptExt(normPath(filePath))
	if mapped, found := t.mappings[real]; found {
		return mapped.Clone(), true
	}
	for i := len(t.partitions) - 1; i >= 0; i-- {
		part := t.partitions[i]
		rel, under := ancestorRel(part.RealPath, real)
		if !under {
			continue
		}
		if part.Scope.Matches(real) {
			// Excluded from this partition; an older one may still claim it.
			continue
		}
		if rel == "" {
			return part.Prefix.Clone(), true
		}
		return part.Prefix.Concat(interiorSegments(rel)...), true
	}
	return nil, false
}

// interiorSegments converts a partition-relative file path into virtual
// path segments: the extension goes, a script's role sub-extension goes,
// and an init-named script collapses into its directory's node.
func interiorSegments(rel string) []string {
	segments := strings.Split(rel, "/")
	last := segments[len(segments)-1]
	switch {
	case isScriptPath(last):
		stem := stripRoleSubExt(strings.TrimSuffix(last, scriptExt))
		if stem == initStem {
			return segments[:len(segments)-1]
		}
		segments[len(segments)-1] = stem
	case isDataPath(last):
		segments[len(segments)-1] = strings.TrimSuffix(last, path.Ext(last))
	}
	return segments
}

// ClassifyRole reports the runtime role of a file by extension. The
// legacy script extension is normalized first, so "foo.server.lua" and
// "foo.server.luau" classify identically.
func ClassifyRole(filePath string) Role {
	name := path.Base(normalizeScriptExt(normPath(filePath)))
	if isScriptPath(name) {
		switch path.Ext(strings.TrimSuffix(name, scriptExt)) {
		case "":
			return RoleModule
		case serverSubExt:
			return RoleScript
		case clientSubExt:
			return RoleLocalScript
		default:
			return RoleUnknown
		}
	}
	if isDataPath(name) {
		return RoleModule
	}
	return RoleUnknown
}

// containerIndex returns the index of the first container that is a
// prefix of vp, or -1.
func containerIndex(vp vpath.Path, containers []vpath.Path) int {
	for i, c := range containers {
		if vp.StartsWith(c) {
			return i
		}
	}
	return -1
}

// IsIsolated reports whether vp sits inside one of the isolation
// containers. Always false for tables that are not full game trees.
func (t *Table) IsIsolated(vp vpath.Path) bool {
	if !t.isGame {
		return false
	}
	return containerIndex(vp, t.isolation) >= 0
}

// ContainerOf returns the first candidate prefix containing vp, in
// candidate order. Never matches on tables that are not full game trees.
func (t *Table) ContainerOf(vp vpath.Path, candidates []vpath.Path) (vpath.Path, bool) {
	if !t.isGame {
		return nil, false
	}
	if i := containerIndex(vp, candidates); i >= 0 {
		return candidates[i].Clone(), true
	}
	return nil, false
}

// FileRelation classifies visibility from a file's location to a
// module's location across the isolation containers. Only matching
// containers on both sides yield RelationInToIn; any other combination
// involving isolation resolves toward the cross-boundary case in the
// direction of the isolated side.
func (t *Table) FileRelation(fileVP, moduleVP vpath.Path) Relation {
	if !t.isGame {
		return RelationOutToOut
	}
	fi := containerIndex(fileVP, t.isolation)
	mi := containerIndex(moduleVP, t.isolation)
	switch {
	case fi < 0 && mi < 0:
		return RelationOutToOut
	case fi >= 0 && fi == mi:
		return RelationInToIn
	case fi >= 0:
		return RelationInToOut
	default:
		return RelationOutToIn
	}
}

// NetworkType classifies vp against the server containers first, then
// the client containers. Unknown for everything else, and always Unknown
// on tables that are not full game trees.
func (t *Table) NetworkType(vp vpath.Path) Network {
	if !t.isGame {
		return NetworkUnknown
	}
	if containerIndex(vp, t.server) >= 0 {
		return NetworkServer
	}
	if containerIndex(vp, t.client) >= 0 {
		return NetworkClient
	}
	return NetworkUnknown
}
