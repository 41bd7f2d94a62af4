// Package signature turns raw qualified type references from a doc export
// into compact display strings. Inputs may carry generic arity markers
// (backtick suffixes) and nested brace-delimited generic argument lists.
package signature

import (
	"strconv"
	"strings"
)

// Shorten converts a raw type-reference string into its short display form:
// brace delimiters become angle brackets, arity markers become T1..Tn
// placeholders, well-known primitive names become keyword aliases, and
// namespaces are trimmed. Nested generic argument lists are formatted
// recursively. Input that cannot be bracket-matched is returned unmodified.
func Shorten(raw string) string {
	s := strings.ReplaceAll(raw, "{", "<")
	s = strings.ReplaceAll(s, "}", ">")
	s = replaceArity(s)

	lt := strings.IndexByte(s, '<')
	if lt < 0 {
		return trimNamespace(applyAliases(s))
	}

	gt := matchingBracket(s, lt)
	if gt < 0 {
		// Unbalanced generic syntax; a single bad signature must not
		// block the rest of the render.
		return raw
	}

	head := trimNamespace(applyAliases(s[:lt]))
	tail := s[gt:]

	args := splitTopLevel(s[lt+1:gt], '<', '>')
	for i, arg := range args {
		args[i] = Shorten(strings.TrimSpace(arg))
	}

	return head + "<" + strings.Join(args, ", ") + ">" + tail[1:]
}

// FormatParams splits a raw parameter-type list at top-level commas only
// (commas inside brace- or angle-delimited generic arguments never split)
// and shortens each parameter individually.
func FormatParams(rawParams string) []string {
	rawParams = strings.TrimSpace(rawParams)
	if rawParams == "" {
		return nil
	}
	parts := splitParams(rawParams)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = Shorten(strings.TrimSpace(p))
	}
	return out
}

// Arity returns the number of method generic parameters encoded by a
// double-backtick marker in a method identifier, or 0.
func Arity(id string) int {
	i := strings.Index(id, "``")
	if i < 0 {
		return 0
	}
	n := 0
	for j := i + 2; j < len(id) && id[j] >= '0' && id[j] <= '9'; j++ {
		n = n*10 + int(id[j]-'0')
	}
	return n
}

// ArityPlaceholders renders a method generic parameter list as "<T1, ...>",
// or "" for non-generic methods.
func ArityPlaceholders(arity int) string {
	if arity <= 0 {
		return ""
	}
	names := make([]string, arity)
	for i := range names {
		names[i] = "T" + strconv.Itoa(i+1)
	}
	return "<" + strings.Join(names, ",") + ">"
}

// replaceArity rewrites arity markers as 1-based placeholder names: a
// double-backtick + n (method generic parameter) and a single-backtick + n
// (type generic parameter) both become T{n+1}.
func replaceArity(s string) string {
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
		if j < len(s) && s[j] == '`' {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k == j {
			// Stray backtick with no digits; keep it.
			b.WriteString(s[i:j])
			i = j
			continue
		}

		n, _ := strconv.Atoi(s[j:k])
		b.WriteString("T")
		b.WriteString(strconv.Itoa(n + 1))
		i = k
	}
	return b.String()
}

// matchingBracket returns the index of the '>' closing the '<' at lt,
// accounting for nesting, or -1 when unbalanced.
func matchingBracket(s string, lt int) int {
	depth := 0
	for i := lt; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s at commas that sit outside any open/close pair.
func splitTopLevel(s string, open, close byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// splitParams splits a raw parameter list at top-level commas, treating both
// brace and angle delimiters as nesting (the export uses braces, already
// normalized text uses angles).
func splitParams(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '<':
			depth++
		case '}', '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// trimNamespace strips everything up to and including the final namespace
// separator.
func trimNamespace(s string) string {
	if dot := strings.LastIndexByte(s, '.'); dot >= 0 {
		return s[dot+1:]
	}
	return s
}
