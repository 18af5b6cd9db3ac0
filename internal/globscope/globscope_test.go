package globscope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleMatchesFullPath(t *testing.T) {
	r := Rule{Root: "/proj", Pattern: "**/*.spec.luau"}
	assert.True(t, r.Matches("/proj/src/shared/Foo.spec.luau"))
	assert.True(t, r.Matches("/proj/Foo.spec.luau"))
	assert.False(t, r.Matches("/proj/src/shared/Foo.luau"))
}

// A pattern matching a containing directory implies exclusion of
// everything beneath it.
func TestRuleMatchesDirectoryPrefix(t *testing.T) {
	r := Rule{Root: "/proj", Pattern: "node_modules"}
	assert.True(t, r.Matches("/proj/node_modules"))
	assert.True(t, r.Matches("/proj/node_modules/pkg/index.luau"))
	assert.False(t, r.Matches("/proj/src/node.luau"))
}

func TestRuleOutsideRootNeverMatches(t *testing.T) {
	r := Rule{Root: "/proj/sub", Pattern: "**"}
	assert.False(t, r.Matches("/proj/other/file.luau"))
	assert.False(t, r.Matches("/elsewhere/file.luau"))
	// The root itself has no non-empty relative prefix to test.
	assert.False(t, r.Matches("/proj/sub"))
}

func TestInvalidPatternNeverMatches(t *testing.T) {
	r := Rule{Root: "/proj", Pattern: "[unclosed"}
	assert.False(t, r.Valid())
	assert.False(t, r.Matches("/proj/anything.luau"))
}

func TestScopeExtendCopies(t *testing.T) {
	base := Scope{{Root: "/a", Pattern: "one"}}
	extended := base.Extend("/a/sub", []string{"two", "three"})

	assert.Len(t, base, 1, "Extend must not mutate the receiver")
	assert.Len(t, extended, 3)
	assert.Equal(t, "/a/sub", extended[1].Root)

	assert.True(t, extended.Matches("/a/sub/two"))
	assert.False(t, base.Matches("/a/sub/two"))
}

func TestScopeExtendEmptyIsSameScope(t *testing.T) {
	base := Scope{{Root: "/a", Pattern: "one"}}
	assert.Equal(t, base, base.Extend("/b", nil))
}
