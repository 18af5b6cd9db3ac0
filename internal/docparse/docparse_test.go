package docparse

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMinimal(t *testing.T) {
	doc, err := Decode([]byte(`{"name":"app","tree":{"$className":"DataModel"}}`))
	require.NoError(t, err)
	assert.Equal(t, "app", doc.Name)
	require.NotNil(t, doc.Tree)
	assert.Equal(t, "DataModel", doc.Tree.ClassName)
	assert.Empty(t, doc.Tree.Children)
}

func TestDecodePreservesChildOrder(t *testing.T) {
	doc, err := Decode([]byte(`{
		"name": "app",
		"tree": {
			"Zebra": {},
			"Alpha": {},
			"Middle": {"$path": "src"}
		}
	}`))
	require.NoError(t, err)
	require.Len(t, doc.Tree.Children, 3)
	assert.Equal(t, "Zebra", doc.Tree.Children[0].Name)
	assert.Equal(t, "Alpha", doc.Tree.Children[1].Name)
	assert.Equal(t, "Middle", doc.Tree.Children[2].Name)
	require.NotNil(t, doc.Tree.Children[2].Node.Path)
	assert.Equal(t, "src", doc.Tree.Children[2].Node.Path.Value)
	assert.False(t, doc.Tree.Children[2].Node.Path.Optional)
}

func TestDecodeOptionalPath(t *testing.T) {
	doc, err := Decode([]byte(`{
		"name": "app",
		"tree": {"Plugins": {"$path": {"optional": "plugins"}}}
	}`))
	require.NoError(t, err)
	spec := doc.Tree.Children[0].Node.Path
	require.NotNil(t, spec)
	assert.Equal(t, "plugins", spec.Value)
	assert.True(t, spec.Optional)
}

func TestDecodeMetadataKeys(t *testing.T) {
	doc, err := Decode([]byte(`{
		"name": "app",
		"tree": {
			"Workspace": {
				"$ignoreUnknownInstances": true,
				"$properties": {"Gravity": 196.2, "Tags": ["a", "b"]}
			}
		},
		"globIgnorePaths": ["**/*.spec.luau"],
		"servePort": 34872
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"**/*.spec.luau"}, doc.GlobIgnorePaths)
	assert.Equal(t, 34872, doc.ServePort)

	ws := doc.Tree.Child("Workspace")
	require.NotNil(t, ws)
	require.NotNil(t, ws.IgnoreUnknownInstances)
	assert.True(t, *ws.IgnoreUnknownInstances)
	assert.Equal(t, 196.2, ws.Properties["Gravity"])
	assert.Equal(t, []any{"a", "b"}, ws.Properties["Tags"])
}

func TestDecodeSchemaErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		at   string
	}{
		{"missing name", `{"tree":{}}`, "name"},
		{"empty name", `{"name":"","tree":{}}`, "name"},
		{"missing tree", `{"name":"app"}`, "tree"},
		{"tree not object", `{"name":"app","tree":3}`, "tree"},
		{"bad path type", `{"name":"app","tree":{"X":{"$path":3}}}`, "tree.X.$path"},
		{"bad optional object", `{"name":"app","tree":{"X":{"$path":{"opt":"y"}}}}`, "tree.X.$path"},
		{"unknown reserved key", `{"name":"app","tree":{"$bogus":1}}`, "tree.$bogus"},
		{"child not object", `{"name":"app","tree":{"X":"str"}}`, "tree.X"},
		{"bad ignore globs", `{"name":"app","tree":{},"globIgnorePaths":[1]}`, "globIgnorePaths"},
		{"bad serve port", `{"name":"app","tree":{},"servePort":"x"}`, "servePort"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.data))
			require.Error(t, err)
			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tc.at, schemaErr.At)
		})
	}
}

func TestIsProjectFilename(t *testing.T) {
	assert.True(t, IsProjectFilename("default.project.json"))
	assert.True(t, IsProjectFilename("game.project.json"))
	assert.True(t, IsProjectFilename("roblox-project.json"))
	assert.False(t, IsProjectFilename(".project.json"), "bare suffix is not a project name")
	assert.False(t, IsProjectFilename("project.json"))
	assert.False(t, IsProjectFilename("default.project.json5"))
}

func TestFindProjectFilePrefersDefault(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "/proj/default.project.json", []byte("{}"), 0o644))
	require.NoError(t, util.WriteFile(fsys, "/proj/aaa.project.json", []byte("{}"), 0o644))

	chosen, ignored, err := FindProjectFile(fsys, "/proj")
	require.NoError(t, err)
	assert.Equal(t, "/proj/default.project.json", chosen)
	assert.Empty(t, ignored, "default name wins outright, no ambiguity")
}

func TestFindProjectFileAmbiguousPicksFirst(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "/proj/beta.project.json", []byte("{}"), 0o644))
	require.NoError(t, util.WriteFile(fsys, "/proj/alpha.project.json", []byte("{}"), 0o644))
	require.NoError(t, util.WriteFile(fsys, "/proj/roblox-project.json", []byte("{}"), 0o644))

	chosen, ignored, err := FindProjectFile(fsys, "/proj")
	require.NoError(t, err)
	assert.Equal(t, "/proj/alpha.project.json", chosen)
	assert.Equal(t, []string{"/proj/beta.project.json", "/proj/roblox-project.json"}, ignored)
}

func TestFindProjectFileNone(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "/proj/readme.md", []byte("x"), 0o644))

	_, _, err := FindProjectFile(fsys, "/proj")
	assert.ErrorIs(t, err, ErrNoProject)
}
