package inherit

import "xmldocmd/internal/xmldoc"

// singleSections are copied from the source only when the target lacks them
// entirely; author-supplied content is never overwritten.
var singleSections = []string{"summary", "remarks", "returns"}

// listSections are copied all-or-nothing: if the target has even one entry
// the source list is ignored.
var listSections = []string{"exception", "seealso", "example"}

// Merge appends missing documentation sections from src into dst. Parameters
// merge per-name. The operation is idempotent: running it on an already
// merged member changes nothing.
func Merge(dst, src *xmldoc.Member) {
	if dst == nil || src == nil || src.Doc == nil {
		return
	}
	if dst.Doc == nil {
		dst.Doc = &xmldoc.Node{Tag: "member"}
	}

	for _, tag := range singleSections {
		if dst.HasSection(tag) {
			continue
		}
		if sec := src.Section(tag); sec != nil {
			dst.Doc.Children = append(dst.Doc.Children, sec)
		}
	}

	for _, p := range src.Sections("param") {
		name := p.Get("name")
		if name == "" || dst.Param(name) != nil {
			continue
		}
		dst.Doc.Children = append(dst.Doc.Children, p)
	}

	for _, tag := range listSections {
		if dst.HasSection(tag) {
			continue
		}
		for _, sec := range src.Sections(tag) {
			dst.Doc.Children = append(dst.Doc.Children, sec)
		}
	}
}
