package xmldoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load parses the doc export at path. A missing or unreadable file, or
// malformed XML, fails the whole load; no partial model is returned.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening doc export: %w", err)
	}
	defer f.Close()

	model, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading doc export %s: %w", path, err)
	}
	return model, nil
}

// Parse reads a doc export from r. Later duplicate member names overwrite
// earlier ones. Character data is kept byte-exact so fenced code blocks
// render with their original whitespace.
func Parse(r io.Reader) (*Model, error) {
	dec := xml.NewDecoder(r)
	members := make(map[string]*Member)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing doc export: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "member" {
			continue
		}

		name := attrValue(start, "name")
		doc, err := parseElement(dec, start)
		if err != nil {
			return nil, fmt.Errorf("parsing member %q: %w", name, err)
		}
		if name == "" {
			continue
		}

		members[name] = &Member{
			Name: name,
			Kind: kindOf(name),
			ID:   idOf(name),
			Doc:  doc,
		}
	}

	return &Model{members: members}, nil
}

// parseElement consumes tokens up to the element's matching end tag and
// returns its content tree.
func parseElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	node := &Node{
		Tag:  start.Name.Local,
		Attr: attrMap(start),
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case xml.CharData:
			node.Children = append(node.Children, &Node{Text: string(t)})
		case xml.EndElement:
			return node, nil
		}
	}
}

func attrValue(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func attrMap(start xml.StartElement) map[string]string {
	if len(start.Attr) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(start.Attr))
	for _, a := range start.Attr {
		attrs[a.Name.Local] = a.Value
	}
	return attrs
}

// kindOf derives the member kind from the one-letter identifier prefix.
func kindOf(name string) Kind {
	if len(name) < 2 || name[1] != ':' {
		return KindUnknown
	}
	switch name[0] {
	case 'T', 'M', 'P', 'F', 'E':
		return Kind(name[0])
	default:
		return KindUnknown
	}
}

// idOf strips the kind prefix from a full identifier.
func idOf(name string) string {
	if i := strings.Index(name, ":"); i >= 0 && i <= 1 {
		return name[i+1:]
	}
	return name
}
