package render

import (
	"strings"

	"xmldocmd/internal/links"
	"xmldocmd/internal/signature"
	"xmldocmd/internal/xmldoc"
)

// memberGroup collects the members sharing one group key, i.e. overloads of
// the same method.
type memberGroup struct {
	key     string
	members []*xmldoc.Member
}

var memberKinds = map[xmldoc.Kind]bool{
	xmldoc.KindMethod:   true,
	xmldoc.KindProperty: true,
	xmldoc.KindField:    true,
	xmldoc.KindEvent:    true,
}

// memberGroups returns the type's members grouped by normalized name key,
// in identifier order of first appearance.
func (r *Renderer) memberGroups(t *xmldoc.Member) []memberGroup {
	var groups []memberGroup
	index := make(map[string]int)

	for _, m := range r.model.Members() {
		if !memberKinds[m.Kind] {
			continue
		}
		if links.OwnerType(m.ID, m.Kind == xmldoc.KindMethod) != t.ID {
			continue
		}

		key := groupKey(m)
		if i, ok := index[key]; ok {
			groups[i].members = append(groups[i].members, m)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, memberGroup{key: key, members: []*xmldoc.Member{m}})
	}

	return groups
}

// groupKey is the bare member name with method generic arity formatted.
// Distinct overloads of one method share a key; the parameter list is
// deliberately excluded.
func groupKey(m *xmldoc.Member) string {
	if m.Kind != xmldoc.KindMethod {
		return simpleName(m.ID)
	}
	name, _ := splitMethodID(m.ID)
	return name
}

// renderGroup emits one member group. Groups holding several method
// overloads render a shared heading with one bullet per overload; single
// members render as a full section. Every member's anchor is emitted before
// its heading or bullet text.
func (r *Renderer) renderGroup(g memberGroup, ctx renderContext) string {
	var b strings.Builder

	methods := 0
	for _, m := range g.members {
		if m.Kind == xmldoc.KindMethod {
			methods++
		}
	}

	if methods > 1 {
		b.WriteString("## Method: " + g.key + "\n\n")
		for _, m := range g.members {
			b.WriteString(`<a id="` + links.Anchor(m.Name) + `"></a>` + "\n")
			b.WriteString("- `" + memberTitle(m) + "`\n\n")
			if detail := r.renderMemberDetail(m, ctx); detail != "" {
				b.WriteString(indent(detail, "  ") + "\n\n")
			}
		}
		return b.String()
	}

	for _, m := range g.members {
		b.WriteString(`<a id="` + links.Anchor(m.Name) + `"></a>` + "\n")
		b.WriteString("## " + MemberHeader(m) + "\n\n")
		if detail := r.renderMemberDetail(m, ctx); detail != "" {
			b.WriteString(detail + "\n\n")
		}
	}
	return b.String()
}

// MemberHeader renders the long-form heading for a member, e.g.
// "Method: Transform<T1,T2>(List<Dictionary<T1, List<T2>>>)".
func MemberHeader(m *xmldoc.Member) string {
	return m.Kind.Word() + ": " + memberTitle(m)
}

// memberTitle is the member's display name: methods carry generic arity
// placeholders and a depth-aware formatted parameter list, other kinds show
// the simple name alone.
func memberTitle(m *xmldoc.Member) string {
	if m.Kind != xmldoc.KindMethod {
		return simpleName(m.ID)
	}
	name, rawParams := splitMethodID(m.ID)
	return name + "(" + strings.Join(signature.FormatParams(rawParams), ", ") + ")"
}

// renderMemberDetail emits summary, parameters, returns, exceptions,
// examples and see-also for one member, applying inheritance first.
func (r *Renderer) renderMemberDetail(m *xmldoc.Member, ctx renderContext) string {
	r.applyInheritance(m)

	var blocks []string

	if summary := normalizeSection(m.Section("summary"), ctx, false); summary != "" {
		blocks = append(blocks, summary)
	}
	if remarks := normalizeSection(m.Section("remarks"), ctx, false); remarks != "" {
		blocks = append(blocks, "**Remarks**\n\n"+remarks)
	}

	if params := m.Sections("param"); len(params) > 0 {
		var b strings.Builder
		b.WriteString("**Parameters**\n")
		for _, p := range params {
			b.WriteString("\n- `" + p.Get("name") + "`")
			if text := inlineText(p, ctx); text != "" {
				b.WriteString(" — " + text)
			}
		}
		blocks = append(blocks, b.String())
	}

	if returns := normalizeSection(m.Section("returns"), ctx, false); returns != "" {
		blocks = append(blocks, "**Returns**\n\n"+returns)
	}

	if exceptions := m.Sections("exception"); len(exceptions) > 0 {
		var b strings.Builder
		b.WriteString("**Exceptions**\n")
		for _, ex := range exceptions {
			b.WriteString("\n- ")
			if cref := ex.Get("cref"); cref != "" {
				href, label := links.Resolve(cref, ctx.links)
				if href != "" {
					b.WriteString("[" + label + "](" + href + ")")
				} else {
					b.WriteString(label)
				}
			}
			if text := inlineText(ex, ctx); text != "" {
				b.WriteString(" — " + text)
			}
		}
		blocks = append(blocks, b.String())
	}

	for _, example := range m.Sections("example") {
		if text := normalizeSection(example, ctx, true); text != "" {
			blocks = append(blocks, "**Example**\n\n"+text)
		}
	}

	if seeAlso := r.renderSeeAlso(m, ctx); seeAlso != "" {
		blocks = append(blocks, "**See also**\n\n"+strings.TrimRight(seeAlso, "\n"))
	}

	return strings.Join(blocks, "\n\n")
}

// inlineText normalizes a section for use inside a bullet: paragraphs
// collapse onto one line. Sections containing a fence keep their shape.
func inlineText(n *xmldoc.Node, ctx renderContext) string {
	text := normalizeSection(n, ctx, false)
	if strings.Contains(text, "```") {
		return text
	}
	return strings.Join(strings.Fields(text), " ")
}

// splitMethodID separates a method identifier into its display name (arity
// placeholders applied) and raw parameter text.
func splitMethodID(id string) (name, rawParams string) {
	front := id
	if paren := strings.IndexByte(id, '('); paren >= 0 {
		front = id[:paren]
		rawParams = strings.TrimSuffix(id[paren+1:], ")")
	}

	name = simpleName(front)
	arity := signature.Arity(name)
	if tick := strings.IndexByte(name, '`'); tick >= 0 {
		name = name[:tick]
	}
	return name + signature.ArityPlaceholders(arity), rawParams
}

func simpleName(id string) string {
	if dot := strings.LastIndexByte(id, '.'); dot >= 0 {
		return id[dot+1:]
	}
	return id
}

// indent prefixes every non-empty line.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
