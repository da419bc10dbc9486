package matcher

import "regexp"

// Params holds the ordered capture-group values of a matched path.
type Params []string

// At returns the capture at index i, or the empty string when the
// index is out of range.
func (p Params) At(i int) string {
	if i < 0 || i >= len(p) {
		return ""
	}
	return p[i]
}

// Rule is a compiled path specifier. A rule matches the whole path
// component of a request url, never a prefix, except for the root
// rule returned by Root.
type Rule struct {
	re *regexp.Regexp
}

// Compile turns a path specifier into a rule. The specifier is either
// a literal path or a regular expression with capture groups; both are
// anchored at start and end. A specifier that already carries its own
// anchors is unsupported.
//
// Compile panics when the specifier is not a valid expression. Routes
// are registered during configuration, so a bad specifier surfaces at
// startup, not while serving.
func Compile(spec string) *Rule {
	return &Rule{regexp.MustCompile("^" + spec + "$")}
}

// Prefix returns an end-unanchored rule matching every path that
// starts with spec. Mounts use it; everything else wants Compile.
func Prefix(spec string) *Rule {
	return &Rule{regexp.MustCompile("^" + spec)}
}

// Root returns the mount rule. It matches every path and is the only
// rule in a plain registry without an end anchor.
func Root() *Rule {
	return Prefix("/")
}

// Match runs the rule against a request path. On a match it returns
// the ordered capture-group values, an empty slice when the rule has
// no groups.
func (r *Rule) Match(path string) (Params, bool) {
	m := r.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	return Params(m[1:]), true
}

// String returns the underlying expression.
func (r *Rule) String() string {
	return r.re.String()
}
