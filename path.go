package js2e

import "strings"

// RootSegment marks the document root of every Path.
const RootSegment = "#"

// Path locates a type node inside a single schema document. The first
// segment is always the root marker "#"; children append their name.
// Segments are compared as raw strings, no pointer escaping is applied
// (JSON Schema keys are taken literally).
type Path []string

// RootPath returns the path of a schema's root node.
func RootPath() Path { return Path{RootSegment} }

// PathFromString parses the "#/a/b" form back into a Path. The bare
// root "#" yields ["#"]. Empty segments produced by doubled slashes
// are dropped.
func PathFromString(s string) Path {
	s = strings.TrimPrefix(s, RootSegment)
	p := RootPath()
	for _, seg := range strings.Split(s, "/") {
		if seg == "" {
			continue
		}
		p = append(p, seg)
	}
	return p
}

// String renders the "#/a/b" form. The root path renders as "#".
func (p Path) String() string {
	if len(p) <= 1 {
		return RootSegment
	}
	return RootSegment + "/" + strings.Join(p[1:], "/")
}

// Child returns a new Path with name appended. The receiver is not
// modified.
func (p Path) Child(name string) Path {
	c := make(Path, len(p), len(p)+1)
	copy(c, p)
	return append(c, name)
}

// Parent returns the path one level up, or the root path when the
// receiver is already the root.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return RootPath()
	}
	return p[:len(p)-1]
}

// Name is the last segment; for the root path it is "#".
func (p Path) Name() string {
	if len(p) == 0 {
		return RootSegment
	}
	return p[len(p)-1]
}

// IsRoot reports whether p addresses the document root.
func (p Path) IsRoot() bool { return len(p) <= 1 }

// Equal compares two paths segment by segment.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
