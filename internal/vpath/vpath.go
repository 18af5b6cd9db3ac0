// Package vpath implements the virtual path value type: an ordered list
// of instance name segments locating a node in the target tree,
// independent of any filesystem path.
package vpath

import "strings"

// ParentMarker is the step-up sentinel emitted by Relative. It is never a
// real instance name; segments of a Path proper never contain separators
// or markers.
const ParentMarker = ".."

// Path is a location in the virtual instance tree. The empty path is the
// tree root. Paths are treated as immutable values: operations return
// fresh slices and never alias their receiver's backing array in a way a
// later Append could observe.
type Path []string

// Root returns the empty path.
func Root() Path { return nil }

// New builds a path from segments, copying the input.
func New(segments ...string) Path {
	if len(segments) == 0 {
		return nil
	}
	p := make(Path, len(segments))
	copy(p, segments)
	return p
}

// Append returns a new path with seg added. The receiver is not modified
// and the result owns its backing array, so sibling branches of a
// recursive walk can extend the same prefix independently.
func (p Path) Append(seg string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// Concat returns p followed by all of tail, as a new path.
func (p Path) Concat(tail ...string) Path {
	if len(tail) == 0 {
		return p.Clone()
	}
	out := make(Path, 0, len(p)+len(tail))
	out = append(out, p...)
	out = append(out, tail...)
	return out
}

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Equal reports whether p and other have identical segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// StartsWith reports whether p and prefix agree element-wise up to the
// shorter of the two lengths. This makes containment checks hold in
// both directions: a path inside a container matches, and so does a
// proper ancestor of the container. It is not subsequence matching.
func (p Path) StartsWith(prefix Path) bool {
	n := min(len(p), len(prefix))
	for i := 0; i < n; i++ {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Relative computes the delta from p to target: one ParentMarker per
// segment of p beyond the common prefix, followed by target's segments
// beyond the common prefix. Relative(p, p) is empty.
func (p Path) Relative(target Path) []string {
	common := 0
	for common < len(p) && common < len(target) && p[common] == target[common] {
		common++
	}
	out := make([]string, 0, (len(p)-common)+(len(target)-common))
	for i := common; i < len(p); i++ {
		out = append(out, ParentMarker)
	}
	out = append(out, target[common:]...)
	return out
}

// String renders p joined with '/' for display. The root renders as "".
func (p Path) String() string {
	return strings.Join(p, "/")
}
