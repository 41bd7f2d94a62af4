// Package links resolves cross-reference tokens from a doc export into
// hyperlink targets and labels. Resolution is purely textual: a token that
// points at nothing still yields a best-effort label, never an error.
package links

import (
	"strings"

	"xmldocmd/internal/signature"
)

// Mode selects the linking strategy for one render call.
type Mode int

const (
	// PerType links point at one output file per type.
	PerType Mode = iota
	// SingleFile links point at in-document anchors.
	SingleFile
)

// FileNameStyle controls how type identifiers map to file names.
type FileNameStyle int

const (
	// Verbatim uses the identifier unmodified apart from filesystem-safety
	// replacements.
	Verbatim FileNameStyle = iota
	// CleanGenerics strips arity markers and normalizes generic delimiters
	// before the safety replacements.
	CleanGenerics
)

// Options carries the naming knobs that affect link targets and display.
type Options struct {
	FileNameStyle FileNameStyle
	// RootNamespace is removed as a display prefix from headings and index
	// entries. It never affects identifiers or anchors.
	RootNamespace        string
	TrimRootNamespaceInFileNames bool
}

// Context is the call-scoped resolution state. It travels through the render
// call graph as a value so repeated renders on one engine stay independent.
type Context struct {
	Mode    Mode
	Options Options
}

// Resolve turns a kind-prefixed cross-reference token into (href, label).
func Resolve(token string, ctx Context) (href, label string) {
	kind, id := splitToken(token)

	switch kind {
	case 'T':
		label = signature.Shorten(id)
		if ctx.Mode == SingleFile {
			return "#" + Slug(TypeHeading(id, ctx.Options)), label
		}
		return FileName(id, ctx.Options), label
	case 'M':
		return memberHref(id, true, ctx), methodLabel(id)
	case 'P', 'F', 'E':
		return memberHref(id, false, ctx), simpleName(id)
	default:
		// Unknown token shape; degrade to the token text itself.
		return "", id
	}
}

// TypeHeading returns the visible heading text for a type: the qualified
// identifier with generic formatting applied and the root namespace prefix
// removed.
func TypeHeading(typeID string, opts Options) string {
	s := signature.DisplayQualified(typeID)
	if opts.RootNamespace != "" {
		s = strings.TrimPrefix(s, opts.RootNamespace+".")
	}
	return s
}

// FileName computes the output file name for a type identifier. Angle
// brackets are never valid in file names, so both styles map them to square
// brackets before appending the extension.
func FileName(typeID string, opts Options) string {
	name := typeID
	if opts.FileNameStyle == CleanGenerics {
		name = stripArity(name)
		name = strings.ReplaceAll(name, "{", "<")
		name = strings.ReplaceAll(name, "}", ">")
	}
	if opts.TrimRootNamespaceInFileNames && opts.RootNamespace != "" {
		name = strings.TrimPrefix(name, opts.RootNamespace+".")
	}
	name = strings.ReplaceAll(name, "<", "[")
	name = strings.ReplaceAll(name, ">", "]")
	return name + ".md"
}

// Slug derives a GitHub-style anchor from visible heading text: lowercase,
// whitespace runs become one hyphen, everything outside [a-z0-9-] is
// dropped.
func Slug(heading string) string {
	var b strings.Builder
	b.Grow(len(heading))
	pendingHyphen := false
	for _, r := range strings.ToLower(heading) {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if b.Len() > 0 {
				pendingHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			if pendingHyphen {
				b.WriteByte('-')
				pendingHyphen = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Anchor is the member anchor for a full identifier (kind prefix included or
// not). It must match the anchor emitted where the member section is
// rendered, or links will not resolve.
func Anchor(token string) string {
	_, id := splitToken(token)
	return signature.Anchor(id)
}

// OwnerType returns the type identifier owning a member identifier. For
// methods the cut happens at the last '.' before the parameter list; cutting
// at the literal last '.' would select a parameter's namespace segment
// instead of the type.
func OwnerType(id string, isMethod bool) string {
	limit := len(id)
	if isMethod {
		if paren := strings.IndexByte(id, '('); paren >= 0 {
			limit = paren
		}
	}
	if dot := strings.LastIndexByte(id[:limit], '.'); dot >= 0 {
		return id[:dot]
	}
	return id
}

func memberHref(id string, isMethod bool, ctx Context) string {
	anchor := signature.Anchor(id)
	if ctx.Mode == SingleFile {
		return "#" + anchor
	}
	return FileName(OwnerType(id, isMethod), ctx.Options) + "#" + anchor
}

// methodLabel renders a method reference as its bare name, generic arity
// placeholders, and the alias-applied shortened parameter list.
func methodLabel(id string) string {
	front, params := id, ""
	if paren := strings.IndexByte(id, '('); paren >= 0 {
		front = id[:paren]
		params = strings.TrimSuffix(id[paren+1:], ")")
	}

	name := front
	if dot := strings.LastIndexByte(front, '.'); dot >= 0 {
		name = front[dot+1:]
	}
	arity := signature.Arity(name)
	if tick := strings.IndexByte(name, '`'); tick >= 0 {
		name = name[:tick]
	}

	return name + signature.ArityPlaceholders(arity) +
		"(" + strings.Join(signature.FormatParams(params), ", ") + ")"
}

// simpleName returns the final identifier segment of a property, field, or
// event identifier.
func simpleName(id string) string {
	if dot := strings.LastIndexByte(id, '.'); dot >= 0 {
		return id[dot+1:]
	}
	return id
}

func splitToken(token string) (byte, string) {
	if len(token) > 1 && token[1] == ':' {
		return token[0], token[2:]
	}
	return 0, token
}

// stripArity removes backtick arity markers (single or double backtick plus
// digits) from a type identifier.
func stripArity(s string) string {
	if !strings.Contains(s, "`") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '`' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i + 1
		for j < len(s) && s[j] == '`' {
			j++
		}
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		i = j
	}
	return b.String()
}
