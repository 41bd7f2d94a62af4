// Package xmldoc loads a compiler-produced XML documentation export into an
// addressable member model. The export contains one <member name="K:Id">
// record per documented program element, where K is a single-letter kind tag.
package xmldoc

import (
	"sort"
	"strings"
)

// Kind identifies what a documentation member describes, derived from the
// one-letter prefix of its identifier.
type Kind byte

const (
	KindUnknown  Kind = 0
	KindType     Kind = 'T'
	KindMethod   Kind = 'M'
	KindProperty Kind = 'P'
	KindField    Kind = 'F'
	KindEvent    Kind = 'E'
)

// Word returns the long-form kind name used in rendered headers.
func (k Kind) Word() string {
	switch k {
	case KindType:
		return "Type"
	case KindMethod:
		return "Method"
	case KindProperty:
		return "Property"
	case KindField:
		return "Field"
	case KindEvent:
		return "Event"
	default:
		return "Member"
	}
}

// Node is one node of a member's documentation content tree. Element nodes
// carry a Tag and optional attributes; character data nodes carry Text only.
// Text is kept verbatim so code blocks survive untouched.
type Node struct {
	Tag      string
	Text     string
	Attr     map[string]string
	Children []*Node
}

// Get returns the named attribute, or "" if absent.
func (n *Node) Get(name string) string {
	if n == nil || n.Attr == nil {
		return ""
	}
	return n.Attr[name]
}

// FlatText concatenates all character data beneath the node.
func (n *Node) FlatText() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.Tag == "" {
			b.WriteString(cur.Text)
			return
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Member is a single exported documentation record.
type Member struct {
	// Name is the full identifier including the kind prefix,
	// e.g. "M:Ns.Type.Method(System.Int32)".
	Name string
	Kind Kind
	// ID is the identifier without the kind prefix. Method IDs embed a
	// parenthesized parameter-type list whose generic argument lists are
	// brace-delimited in the export.
	ID string
	// Doc is a synthetic root whose children are the member's section
	// elements (summary, remarks, param, returns, ...) in document order.
	Doc *Node
}

// Section returns the first child section with the given tag, or nil.
func (m *Member) Section(tag string) *Node {
	if m == nil || m.Doc == nil {
		return nil
	}
	for _, c := range m.Doc.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// Sections returns all child sections with the given tag in document order.
func (m *Member) Sections(tag string) []*Node {
	if m == nil || m.Doc == nil {
		return nil
	}
	var out []*Node
	for _, c := range m.Doc.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// HasSection reports whether a section with the given tag exists.
func (m *Member) HasSection(tag string) bool {
	return m.Section(tag) != nil
}

// Param returns the <param> section whose name attribute matches, or nil.
func (m *Member) Param(name string) *Node {
	for _, p := range m.Sections("param") {
		if p.Get("name") == name {
			return p
		}
	}
	return nil
}

// Model is an immutable-after-load mapping from full identifier to member.
// Lookups are exact and case-sensitive.
type Model struct {
	members map[string]*Member
}

// Lookup returns the member with the given full identifier.
func (m *Model) Lookup(name string) (*Member, bool) {
	mem, ok := m.members[name]
	return mem, ok
}

// Len returns the number of loaded members.
func (m *Model) Len() int {
	return len(m.members)
}

// Types returns all type members sorted by identifier. This is the
// enumeration root for rendering.
func (m *Model) Types() []*Member {
	var out []*Member
	for _, mem := range m.members {
		if mem.Kind == KindType {
			out = append(out, mem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Members returns every member sorted by identifier.
func (m *Model) Members() []*Member {
	out := make([]*Member, 0, len(m.members))
	for _, mem := range m.members {
		out = append(out, mem)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
