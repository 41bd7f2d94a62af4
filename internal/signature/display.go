package signature

import "strings"

// DisplayQualified formats a raw type identifier for headings and index
// entries: generic delimiters and arity markers are normalized exactly as in
// Shorten, but the namespace qualification is kept.
func DisplayQualified(raw string) string {
	s := strings.ReplaceAll(raw, "{", "<")
	s = strings.ReplaceAll(s, "}", ">")
	return replaceArity(s)
}
