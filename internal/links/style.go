package links

import "fmt"

// ParseFileNameStyle maps the configuration spelling of a file-name style
// onto its enum value.
func ParseFileNameStyle(s string) (FileNameStyle, error) {
	switch s {
	case "", "verbatim":
		return Verbatim, nil
	case "clean-generics":
		return CleanGenerics, nil
	default:
		return Verbatim, fmt.Errorf("unknown file name style %q (want verbatim or clean-generics)", s)
	}
}

func (s FileNameStyle) String() string {
	if s == CleanGenerics {
		return "clean-generics"
	}
	return "verbatim"
}
