package instancemap_test

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbxkit/instancemap"
)

func TestEndToEnd(t *testing.T) {
	fsys := memfs.New()
	project := `{
		"name": "game",
		"tree": {
			"$className": "DataModel",
			"ReplicatedStorage": {"$path": "src/shared"},
			"StarterGui": {"$className": "StarterGui", "UI": {"$path": "src/gui"}}
		}
	}`
	files := map[string]string{
		"/game/default.project.json": project,
		"/game/extra.project.json":   project,
		"/game/src/shared/Util.luau": "return {}",
		"/game/src/gui/Main.client.luau": "print('ui')",
	}
	for name, content := range files {
		require.NoError(t, util.WriteFile(fsys, name, []byte(content), 0o644))
	}

	chosen, ignored, err := instancemap.FindProjectFile(fsys, "/game")
	require.NoError(t, err)
	assert.Equal(t, "/game/default.project.json", chosen)
	assert.Empty(t, ignored)

	table, err := instancemap.Load(fsys, chosen)
	require.NoError(t, err)
	require.Empty(t, table.Warnings())
	assert.Equal(t, "game", table.Name())
	require.True(t, table.IsGame())

	vp, ok := table.Resolve("/game/src/shared/Util.luau")
	require.True(t, ok)
	assert.Equal(t, instancemap.Path{"game", "ReplicatedStorage", "Util"}, vp)
	assert.Equal(t, instancemap.RoleModule, instancemap.ClassifyRole("/game/src/shared/Util.luau"))

	gui, ok := table.Resolve("/game/src/gui/Main.client.luau")
	require.True(t, ok)
	assert.Equal(t, instancemap.Path{"game", "StarterGui", "UI", "Main"}, gui)
	assert.Equal(t, instancemap.RoleLocalScript, instancemap.ClassifyRole("/game/src/gui/Main.client.luau"))
}

func TestParseDocumentSchemaError(t *testing.T) {
	_, err := instancemap.ParseDocument([]byte(`{"name":"x"}`))
	require.Error(t, err)
	var schemaErr *instancemap.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}
