package vpath

import "testing"

func TestStartsWith(t *testing.T) {
	cases := []struct {
		name   string
		p      Path
		prefix Path
		want   bool
	}{
		{"root prefixes everything", New("a", "b"), Root(), true},
		{"equal", New("a", "b"), New("a", "b"), true},
		{"proper prefix", New("a", "b", "c"), New("a", "b"), true},
		{"ancestor of the longer path", New("a"), New("a", "b"), true},
		{"diverging", New("a", "x", "c"), New("a", "b"), false},
		{"diverging longer prefix", New("a"), New("b", "c"), false},
		{"not subsequence matching", New("a", "b", "c"), New("b", "c"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.StartsWith(tc.prefix); got != tc.want {
				t.Errorf("StartsWith(%v, %v) = %v, want %v", tc.p, tc.prefix, got, tc.want)
			}
		})
	}
}

func TestRelativeSelfIsEmpty(t *testing.T) {
	p := New("a", "b", "c")
	if delta := p.Relative(p); len(delta) != 0 {
		t.Errorf("Relative(p, p) = %v, want empty", delta)
	}
}

func TestRelativeShape(t *testing.T) {
	cases := []struct {
		name string
		from Path
		to   Path
		want []string
	}{
		{"descend only", New("a"), New("a", "b", "c"), []string{"b", "c"}},
		{"ascend only", New("a", "b", "c"), New("a"), []string{"..", ".."}},
		{"siblings", New("a", "x"), New("a", "y"), []string{"..", "y"}},
		{"disjoint", New("a", "b"), New("c"), []string{"..", "..", "c"}},
		{"from root", Root(), New("x"), []string{"x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.from.Relative(tc.to)
			if len(got) != len(tc.want) {
				t.Fatalf("Relative(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("Relative(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
				}
			}
		})
	}
}

// Step-up count equals len(from) minus the common prefix length, and the
// trailing segments are exactly to's segments past the common prefix.
func TestRelativeDecomposition(t *testing.T) {
	from := New("g", "a", "b")
	to := New("g", "x", "y", "z")
	delta := from.Relative(to)

	ups := 0
	for _, seg := range delta {
		if seg != ParentMarker {
			break
		}
		ups++
	}
	if ups != 2 {
		t.Errorf("step-up count = %d, want 2", ups)
	}
	rest := delta[ups:]
	want := []string{"x", "y", "z"}
	if len(rest) != len(want) {
		t.Fatalf("trailing segments = %v, want %v", rest, want)
	}
	for i := range rest {
		if rest[i] != want[i] {
			t.Fatalf("trailing segments = %v, want %v", rest, want)
		}
	}
	for _, seg := range rest {
		if seg == ParentMarker {
			t.Error("concrete segments must come after all step-up markers")
		}
	}
}

func TestAppendDoesNotAliasSiblings(t *testing.T) {
	base := New("root")
	left := base.Append("left")
	right := base.Append("right")
	if left[1] != "left" || right[1] != "right" {
		t.Errorf("sibling branches alias one backing array: %v / %v", left, right)
	}
	if !base.Equal(New("root")) {
		t.Errorf("Append modified its receiver: %v", base)
	}
}

func TestString(t *testing.T) {
	if got := New("a", "b").String(); got != "a/b" {
		t.Errorf("String() = %q, want %q", got, "a/b")
	}
	if got := Root().String(); got != "" {
		t.Errorf("root String() = %q, want empty", got)
	}
}
