// Package render turns a loaded documentation model into Markdown, either
// one file per type or a single consolidated document. The render mode is
// call-scoped state threaded through the call graph, so repeated or
// concurrent renders on one Renderer behave like fresh ones.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"xmldocmd/internal/inherit"
	"xmldocmd/internal/links"
	"xmldocmd/internal/xmldoc"
)

// Renderer orchestrates signature formatting, link resolution, inheritance
// merging, and prose normalization over one model.
type Renderer struct {
	model    *xmldoc.Model
	opts     Options
	resolver inherit.Resolver
}

// renderContext carries per-call rendering state.
type renderContext struct {
	links links.Context
	opts  Options
}

// New creates a Renderer for the model with the heuristic inheritance
// resolver.
func New(model *xmldoc.Model, opts Options) *Renderer {
	return NewWithResolver(model, opts, inherit.HeuristicResolver{})
}

// NewWithResolver creates a Renderer with a custom inheritance resolver.
func NewWithResolver(model *xmldoc.Model, opts Options, resolver inherit.Resolver) *Renderer {
	return &Renderer{
		model:    model,
		opts:     opts.withDefaults(),
		resolver: resolver,
	}
}

func (r *Renderer) context(mode links.Mode) renderContext {
	return renderContext{
		links: links.Context{Mode: mode, Options: r.opts.linkOptions()},
		opts:  r.opts,
	}
}

// ToDirectory writes one Markdown file per documented type plus an index.md
// into dir, and returns the paths written.
func (r *Renderer) ToDirectory(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	ctx := r.context(links.PerType)
	var written []string

	for _, t := range r.model.Types() {
		name := links.FileName(t.ID, ctx.links.Options)
		path := filepath.Join(dir, name)
		content := r.renderType(t, ctx, true)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		written = append(written, path)
	}

	indexPath := filepath.Join(dir, "index.md")
	if err := os.WriteFile(indexPath, []byte(r.renderIndex(ctx)), 0644); err != nil {
		return nil, fmt.Errorf("writing index: %w", err)
	}
	written = append(written, indexPath)

	return written, nil
}

// ToString renders the single consolidated document.
func (r *Renderer) ToString() string {
	ctx := r.context(links.SingleFile)

	var b strings.Builder
	b.WriteString(r.renderIndex(ctx))

	for _, t := range r.model.Types() {
		heading := links.TypeHeading(t.ID, ctx.links.Options)
		b.WriteString("\n---\n\n")
		b.WriteString(`<a id="` + links.Slug(heading) + `"></a>` + "\n")
		b.WriteString("# " + heading + "\n\n")
		b.WriteString(r.renderType(t, ctx, false))
	}

	return b.String()
}

// ToSingleFile writes the consolidated document to path.
func (r *Renderer) ToSingleFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(r.ToString()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// renderIndex lists all types sorted by display name, linking to their files
// (per-type mode) or heading anchors (single-file mode).
func (r *Renderer) renderIndex(ctx renderContext) string {
	type entry struct {
		display string
		target  string
	}

	var entries []entry
	for _, t := range r.model.Types() {
		heading := links.TypeHeading(t.ID, ctx.links.Options)
		target := links.FileName(t.ID, ctx.links.Options)
		if ctx.links.Mode == links.SingleFile {
			target = "#" + links.Slug(heading)
		}
		entries = append(entries, entry{display: heading, target: target})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].display < entries[j].display })

	var b strings.Builder
	b.WriteString("# Index\n\n")
	for _, e := range entries {
		b.WriteString("- [" + e.display + "](" + e.target + ")\n")
	}
	return b.String()
}

// renderType emits a type's full section: summary, remarks, examples,
// see-also, then members. includeHeading is false in single-file mode, where
// the caller emits the heading once next to its anchor.
func (r *Renderer) renderType(t *xmldoc.Member, ctx renderContext, includeHeading bool) string {
	var b strings.Builder

	if includeHeading {
		b.WriteString("# " + links.TypeHeading(t.ID, ctx.links.Options) + "\n\n")
	}

	r.applyInheritance(t)

	if summary := normalizeSection(t.Section("summary"), ctx, false); summary != "" {
		b.WriteString(summary + "\n\n")
	}
	if remarks := normalizeSection(t.Section("remarks"), ctx, false); remarks != "" {
		b.WriteString("## Remarks\n\n" + remarks + "\n\n")
	}
	for _, example := range t.Sections("example") {
		if text := normalizeSection(example, ctx, true); text != "" {
			b.WriteString("## Example\n\n" + text + "\n\n")
		}
	}
	if seeAlso := r.renderSeeAlso(t, ctx); seeAlso != "" {
		b.WriteString("## See also\n\n" + seeAlso + "\n")
	}

	for _, group := range r.memberGroups(t) {
		b.WriteString(r.renderGroup(group, ctx))
	}

	return b.String()
}

func (r *Renderer) renderSeeAlso(m *xmldoc.Member, ctx renderContext) string {
	var b strings.Builder
	for _, sa := range m.Sections("seealso") {
		var item strings.Builder
		writeReference(&item, sa, ctx)
		if item.Len() > 0 {
			b.WriteString("- " + item.String() + "\n")
		}
	}
	return b.String()
}

// MemberMarkdown renders a single member (or type) as a standalone section
// in single-file link mode. Used by lookup surfaces that serve one entry at
// a time.
func (r *Renderer) MemberMarkdown(m *xmldoc.Member) string {
	ctx := r.context(links.SingleFile)
	if m.Kind == xmldoc.KindType {
		heading := links.TypeHeading(m.ID, ctx.links.Options)
		return "# " + heading + "\n\n" + r.renderType(m, ctx, false)
	}

	var b strings.Builder
	b.WriteString("## " + MemberHeader(m) + "\n\n")
	if detail := r.renderMemberDetail(m, ctx); detail != "" {
		b.WriteString(detail + "\n")
	}
	return b.String()
}

// applyInheritance merges inherited content into a member. The merge is
// idempotent and non-destructive, so re-renders see identical content.
func (r *Renderer) applyInheritance(m *xmldoc.Member) {
	if !m.HasSection("inheritdoc") {
		return
	}
	if src := r.resolver.Resolve(r.model, m); src != nil {
		inherit.Merge(m, src)
	}
}
