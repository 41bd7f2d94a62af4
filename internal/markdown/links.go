// Package markdown inspects emitted Markdown so links and anchors can be
// validated without re-implementing a parser: documents are parsed to an AST
// and the interesting nodes collected.
package markdown

import (
	"regexp"
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"
)

// Link is one outgoing link destination found in a document.
type Link struct {
	Destination string
	Text        string
}

// Doc is the extracted link surface of one Markdown document.
type Doc struct {
	Links    []Link
	Anchors  []string // ids of explicit <a id="..."> anchors
	Headings []string // visible heading text, in order
}

var anchorRe = regexp.MustCompile(`<a id="([^"]*)">`)

// Extract parses src and collects links, explicit anchors, and headings.
func Extract(src string) Doc {
	root := gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))

	var doc Doc

	ast.WalkFunc(root, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Link:
			doc.Links = append(doc.Links, Link{
				Destination: string(n.Destination),
				Text:        flatText(n),
			})
		case *ast.Heading:
			doc.Headings = append(doc.Headings, flatText(n))
		case *ast.HTMLBlock:
			doc.Anchors = append(doc.Anchors, anchorIDs(string(n.Literal))...)
		case *ast.HTMLSpan:
			doc.Anchors = append(doc.Anchors, anchorIDs(string(n.Literal))...)
		}
		return ast.GoToNext
	})

	return doc
}

// FragmentLinks returns the fragment part of every in-document link
// ("#anchor" or "file.md#anchor").
func (d Doc) FragmentLinks() []string {
	var out []string
	for _, l := range d.Links {
		if i := strings.IndexByte(l.Destination, '#'); i >= 0 {
			out = append(out, l.Destination[i+1:])
		}
	}
	return out
}

// HasAnchor reports whether an explicit anchor with the given id exists.
func (d Doc) HasAnchor(id string) bool {
	for _, a := range d.Anchors {
		if a == id {
			return true
		}
	}
	return false
}

func anchorIDs(html string) []string {
	var ids []string
	for _, m := range anchorRe.FindAllStringSubmatch(html, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

func flatText(node ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if leaf := n.AsLeaf(); leaf != nil {
			if _, ok := n.(*ast.HTMLSpan); ok {
				return ast.GoToNext
			}
			b.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return b.String()
}
