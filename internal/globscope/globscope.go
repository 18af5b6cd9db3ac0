// Package globscope evaluates ignore-glob patterns scoped to the
// directory of the project document that declared them.
//
// Matching is prefix-incremental: a pattern is tested against every
// successively deeper prefix of the relative path, so a pattern that
// matches a containing directory excludes everything beneath it. This
// mirrors the matcher semantics project documents are written against.
package globscope

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Rule is one ignore pattern, scoped to the directory containing the
// project document that declared it.
type Rule struct {
	// Root is the declaring document's directory, absolute and
	// slash-normalized without a trailing slash.
	Root string
	// Pattern is a doublestar glob, e.g. "**/*.spec.luau".
	Pattern string
}

// Valid reports whether the rule's pattern parses. Invalid patterns
// never match; callers surface them as construction warnings.
func (r Rule) Valid() bool {
	return doublestar.ValidatePattern(r.Pattern)
}

// Matches reports whether path (absolute, slash-normalized) is excluded
// by this rule. Paths outside the rule's root never match.
func (r Rule) Matches(path string) bool {
	rel, ok := relativeTo(r.Root, path)
	if !ok || rel == "" {
		return false
	}
	segments := strings.Split(rel, "/")
	for i := 1; i <= len(segments); i++ {
		ok, err := doublestar.Match(r.Pattern, strings.Join(segments[:i], "/"))
		if err != nil {
			return false
		}
		if ok {
			return true
		}
	}
	return false
}

// Scope is the set of ignore rules active for one subtree walk.
type Scope []Rule

// Matches reports whether any rule in the scope excludes path.
func (s Scope) Matches(path string) bool {
	for _, r := range s {
		if r.Matches(path) {
			return true
		}
	}
	return false
}

// Extend returns a new scope with one rule per pattern appended, rooted
// at root. The receiver is not modified: nested documents widen their
// own scope without leaking rules back into the enclosing document's
// remaining subtree.
func (s Scope) Extend(root string, patterns []string) Scope {
	if len(patterns) == 0 {
		return s
	}
	out := make(Scope, 0, len(s)+len(patterns))
	out = append(out, s...)
	for _, p := range patterns {
		out = append(out, Rule{Root: root, Pattern: p})
	}
	return out
}

// relativeTo returns path relative to root, or ok=false when path does
// not sit under root. root == path yields ("", true).
func relativeTo(root, path string) (string, bool) {
	if path == root {
		return "", true
	}
	prefix := root
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	return path[len(prefix):], true
}
