// Package inherit resolves <inheritdoc> directives and merges the inherited
// content into a member without overwriting anything the author wrote.
package inherit

import (
	"strings"

	"xmldocmd/internal/xmldoc"
)

// Resolver finds the member another member should inherit documentation
// from. The heuristic implementation works on identifier text alone; an
// implementation backed by real symbol data can be swapped in without
// touching the merge logic.
type Resolver interface {
	Resolve(model *xmldoc.Model, member *xmldoc.Member) *xmldoc.Member
}

// HeuristicResolver resolves an explicit cref target directly, and otherwise
// walks successively shorter prefixes of the owning type name looking for a
// method with the same simple-name-and-parameters suffix. Without access to
// the actual type hierarchy this is best-effort: a same-named method in an
// unrelated shorter-prefix type would match too.
type HeuristicResolver struct{}

// Resolve returns the inheritance source for member, or nil when the member
// has no inherit directive or no source can be found.
func (HeuristicResolver) Resolve(model *xmldoc.Model, member *xmldoc.Member) *xmldoc.Member {
	directive := member.Section("inheritdoc")
	if directive == nil {
		return nil
	}

	if cref := directive.Get("cref"); cref != "" {
		if src, ok := model.Lookup(cref); ok {
			return src
		}
		if src, ok := model.Lookup("M:" + cref); ok {
			return src
		}
		return nil
	}

	if member.Kind != xmldoc.KindMethod {
		return nil
	}
	return baseWalk(model, member.ID)
}

// baseWalk drops trailing segments from the owning-type portion of a method
// identifier and probes for a method entity carrying the original member
// suffix on each shortened type id.
func baseWalk(model *xmldoc.Model, id string) *xmldoc.Member {
	limit := len(id)
	if paren := strings.IndexByte(id, '('); paren >= 0 {
		limit = paren
	}
	dot := strings.LastIndexByte(id[:limit], '.')
	if dot < 0 {
		return nil
	}

	owner := id[:dot]
	suffix := id[dot:] // ".Name(Params)" stays attached to each candidate

	segments := strings.Split(owner, ".")
	for end := len(segments) - 1; end > 0; end-- {
		candidate := "M:" + strings.Join(segments[:end], ".") + suffix
		if src, ok := model.Lookup(candidate); ok {
			return src
		}
	}
	return nil
}
