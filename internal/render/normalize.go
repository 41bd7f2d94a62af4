package render

import (
	"regexp"
	"strings"

	"xmldocmd/internal/links"
	"xmldocmd/internal/xmldoc"
)

// renderNodes converts a documentation section's mixed markup into raw
// Markdown. preferBlock forces code-bearing nodes into fenced blocks (used
// inside examples). The result still needs a normalize pass.
func renderNodes(nodes []*xmldoc.Node, ctx renderContext, preferBlock bool) string {
	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n, ctx, preferBlock)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *xmldoc.Node, ctx renderContext, preferBlock bool) {
	if n.Tag == "" {
		b.WriteString(n.Text)
		return
	}

	switch n.Tag {
	case "see", "seealso":
		writeReference(b, n, ctx)
	case "a":
		text := strings.TrimSpace(n.FlatText())
		href := n.Get("href")
		if text == "" {
			text = href
		}
		b.WriteString("[" + text + "](" + href + ")")
	case "paramref", "typeparamref":
		b.WriteString("`" + n.Get("name") + "`")
	case "para":
		b.WriteString("\n\n")
		for _, c := range n.Children {
			writeNode(b, c, ctx, preferBlock)
		}
		b.WriteString("\n\n")
	case "c":
		writeCode(b, n.FlatText(), ctx, preferBlock)
	case "code":
		writeFence(b, n.FlatText(), fenceLang(n, ctx))
	default:
		for _, c := range n.Children {
			writeNode(b, c, ctx, preferBlock)
		}
	}
}

// writeReference renders a cross-reference tag. A cref resolves through the
// link resolver; an href becomes a literal link; a token that resolves to no
// target degrades to its label.
func writeReference(b *strings.Builder, n *xmldoc.Node, ctx renderContext) {
	if href := n.Get("href"); href != "" {
		text := strings.TrimSpace(n.FlatText())
		if text == "" {
			text = href
		}
		b.WriteString("[" + text + "](" + href + ")")
		return
	}

	cref := n.Get("cref")
	if cref == "" {
		b.WriteString(strings.TrimSpace(n.FlatText()))
		return
	}

	href, label := links.Resolve(cref, ctx.links)
	if text := strings.TrimSpace(n.FlatText()); text != "" {
		label = text
	}
	if href == "" {
		b.WriteString(label)
		return
	}
	b.WriteString("[" + label + "](" + href + ")")
}

// writeCode renders inline-code content: single-line content becomes a
// backtick span unless the context prefers block rendering.
func writeCode(b *strings.Builder, content string, ctx renderContext, preferBlock bool) {
	if !preferBlock && !strings.Contains(strings.TrimSpace(content), "\n") {
		b.WriteString("`" + strings.TrimSpace(content) + "`")
		return
	}
	writeFence(b, content, ctx.opts.CodeBlockLanguage)
}

// writeFence emits a fenced block. One leading newline and trailing
// whitespace are dropped so the fence lines sit flush; everything between is
// preserved byte for byte.
func writeFence(b *strings.Builder, content, lang string) {
	content = strings.TrimPrefix(content, "\n")
	content = strings.TrimRight(content, " \t\n")
	b.WriteString("\n\n```" + lang + "\n")
	b.WriteString(content)
	b.WriteString("\n```\n\n")
}

func fenceLang(n *xmldoc.Node, ctx renderContext) string {
	if lang := n.Get("lang"); lang != "" {
		return lang
	}
	if lang := n.Get("language"); lang != "" {
		return lang
	}
	return ctx.opts.CodeBlockLanguage
}

var spaceBeforePunct = regexp.MustCompile(` +([.,;:)\]])`)

// normalize runs the single top-to-bottom line pass over raw Markdown. It
// tracks fence state by the triple-backtick marker: inside a fence lines
// pass through untouched. Outside, run-internal whitespace collapses to one
// space, lines are trimmed, stray spaces before punctuation are removed,
// soft-wrapped lines join with a space, and blank runs collapse to a single
// paragraph separator.
func normalize(s string) string {
	lines := strings.Split(s, "\n")

	var blocks []string
	var para []string
	var fence []string
	inFence := false

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		joined := strings.Join(para, " ")
		joined = spaceBeforePunct.ReplaceAllString(joined, "$1")
		blocks = append(blocks, joined)
		para = para[:0]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inFence {
			fence = append(fence, line)
			if strings.HasPrefix(trimmed, "```") {
				inFence = false
				blocks = append(blocks, strings.Join(fence, "\n"))
				fence = fence[:0]
			}
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			flushPara()
			inFence = true
			fence = append(fence, trimmed)
			continue
		}

		if trimmed == "" {
			flushPara()
			continue
		}

		para = append(para, collapseSpaces(trimmed))
	}

	// An unterminated fence keeps its lines rather than losing them.
	if len(fence) > 0 {
		blocks = append(blocks, strings.Join(fence, "\n"))
	}
	flushPara()

	return strings.Join(blocks, "\n\n")
}

// collapseSpaces reduces every run of spaces and tabs to a single space.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			inRun = true
			continue
		}
		if inRun && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inRun = false
		b.WriteByte(s[i])
	}
	return b.String()
}

// normalizeSection renders and normalizes one content node's children.
func normalizeSection(n *xmldoc.Node, ctx renderContext, preferBlock bool) string {
	if n == nil {
		return ""
	}
	return normalize(renderNodes(n.Children, ctx, preferBlock))
}
