package cpp

import "strings"

// Style maps an indentation depth to the whitespace prefix for lines at
// that depth. Implementations must be pure: same depth, same prefix.
type Style interface {
	Indent(depth int) string
}

// TabStyle indents with one tab per depth level.
type TabStyle struct{}

func (TabStyle) Indent(depth int) string {
	if depth < 1 {
		return ""
	}
	return strings.Repeat("\t", depth)
}

// SpaceStyle indents with Width spaces per depth level.
type SpaceStyle struct {
	Width int
}

func (s SpaceStyle) Indent(depth int) string {
	if depth < 1 || s.Width < 1 {
		return ""
	}
	return strings.Repeat(strings.Repeat(" ", s.Width), depth)
}
