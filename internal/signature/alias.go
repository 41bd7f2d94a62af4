package signature

import "strings"

// typeAliases maps fully-qualified primitive type names to their keyword
// aliases. Kept as a data table; replacement is done with boundary checks
// rather than blind substring replacement, which would corrupt identifiers
// that merely contain an aliasable name.
var typeAliases = map[string]string{
	"System.Boolean": "bool",
	"System.Byte":    "byte",
	"System.SByte":   "sbyte",
	"System.Char":    "char",
	"System.Decimal": "decimal",
	"System.Double":  "double",
	"System.Single":  "float",
	"System.Int16":   "short",
	"System.Int32":   "int",
	"System.Int64":   "long",
	"System.UInt16":  "ushort",
	"System.UInt32":  "uint",
	"System.UInt64":  "ulong",
	"System.Object":  "object",
	"System.String":  "string",
	"System.Void":    "void",
}

// applyAliases substitutes every whole-token occurrence of a well-known
// qualified primitive name with its keyword alias.
func applyAliases(s string) string {
	if !strings.Contains(s, "System.") {
		return s
	}
	for qualified, alias := range typeAliases {
		s = replaceToken(s, qualified, alias)
	}
	return s
}

// replaceToken replaces occurrences of old in s with new only when neither
// flanking character is an identifier character.
func replaceToken(s, old, new string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, old)
		if i < 0 {
			break
		}

		beforeOK := i == 0 || !isIdentByte(s[i-1])
		afterOK := i+len(old) == len(s) || !isIdentByte(s[i+len(old)])

		b.WriteString(s[:i])
		if beforeOK && afterOK {
			b.WriteString(new)
		} else {
			b.WriteString(s[i : i+len(old)])
		}
		s = s[i+len(old):]
	}
	if b.Len() == 0 {
		return s
	}
	b.WriteString(s)
	return b.String()
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
