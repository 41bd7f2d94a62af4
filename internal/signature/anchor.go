package signature

import "strings"

// Anchor converts a member identifier (without its kind prefix) into the
// anchor id emitted next to the member's heading. The same alias table used
// for display is applied token-aware, remaining brace delimiters become
// square brackets so the value is safe inside an id attribute, and the whole
// string is lowercased. The parameter list, closing parenthesis included, is
// retained verbatim: every link targeting the member must reproduce this
// value byte for byte.
func Anchor(id string) string {
	s := applyAliases(id)
	s = strings.ReplaceAll(s, "{", "[")
	s = strings.ReplaceAll(s, "}", "]")
	return strings.ToLower(s)
}
