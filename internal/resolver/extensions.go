package resolver

import (
	"path"
	"strings"
)

const (
	scriptExt       = ".luau"
	legacyScriptExt = ".lua"
	serverSubExt    = ".server"
	clientSubExt    = ".client"

	// initStem names a script that stands for its containing directory's
	// node rather than a child of it.
	initStem = "init"

	// gameRootClass marks a tree as a full game tree; only such trees
	// report isolation and network affiliation.
	gameRootClass = "DataModel"
)

// dataExts are the recognized non-script module extensions. Files with
// these extensions are always data modules, never scripts, regardless of
// any sub-extension-looking text in their name.
var dataExts = map[string]bool{
	".json": true,
	".toml": true,
}

// normalizeScriptExt rewrites the legacy script extension to the
// canonical one. "foo.lua" → "foo.luau"; everything else is unchanged.
func normalizeScriptExt(p string) string {
	if strings.HasSuffix(p, legacyScriptExt) {
		return strings.TrimSuffix(p, legacyScriptExt) + scriptExt
	}
	return p
}

func isScriptPath(p string) bool {
	return path.Ext(p) == scriptExt
}

func isDataPath(p string) bool {
	return dataExts[path.Ext(p)]
}

// stripRoleSubExt removes a trailing role sub-extension from a script
// stem. Unrecognized sub-extensions stay part of the name.
func stripRoleSubExt(stem string) string {
	switch path.Ext(stem) {
	case serverSubExt, clientSubExt:
		return strings.TrimSuffix(stem, path.Ext(stem))
	}
	return stem
}
