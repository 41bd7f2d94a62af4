package render

import "xmldocmd/internal/links"

// Options is the configuration surface exposed to collaborators. CLI flags
// and build-task properties map 1:1 onto these fields.
type Options struct {
	FileNameStyle links.FileNameStyle
	// RootNamespaceToTrim is removed as a display prefix from headings and
	// index entries. Identifiers and anchors are never affected.
	RootNamespaceToTrim string
	// CodeBlockLanguage tags emitted code fences. Defaults to "csharp".
	CodeBlockLanguage            string
	TrimRootNamespaceInFileNames bool
}

func (o Options) withDefaults() Options {
	if o.CodeBlockLanguage == "" {
		o.CodeBlockLanguage = "csharp"
	}
	return o
}

func (o Options) linkOptions() links.Options {
	return links.Options{
		FileNameStyle:                o.FileNameStyle,
		RootNamespace:                o.RootNamespaceToTrim,
		TrimRootNamespaceInFileNames: o.TrimRootNamespaceInFileNames,
	}
}
