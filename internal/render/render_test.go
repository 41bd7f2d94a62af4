package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xmldocmd/internal/links"
	"xmldocmd/internal/markdown"
	"xmldocmd/internal/xmldoc"
)

const mathxExport = `<?xml version="1.0"?>
<doc><members>
  <member name="T:MyLib.Mathx">
    <summary>Arithmetic helpers. See <see cref="M:MyLib.Mathx.Add(System.Int32,System.Int32)"/>.</summary>
  </member>
  <member name="M:MyLib.Mathx.Add(System.Int32,System.Int32)">
    <summary>Adds two integers.</summary>
    <param name="a">Left addend.</param>
    <param name="b">Right addend.</param>
    <returns>The sum.</returns>
  </member>
  <member name="M:MyLib.Mathx.Add(System.Int32,System.Int32,System.Int32)">
    <summary>Adds three integers.</summary>
  </member>
  <member name="M:MyLib.Mathx.AddAlias(System.Int32,System.Int32)">
    <inheritdoc cref="M:MyLib.Mathx.Add(System.Int32,System.Int32)"/>
  </member>
  <member name="T:MyLib.Seq">
    <summary>Sequence operators.</summary>
  </member>
  <member name="M:MyLib.Seq.Transform` + "``" + `2(System.Collections.Generic.List{System.Collections.Generic.Dictionary{` + "``" + `0,System.Collections.Generic.List{` + "``" + `1}}})">
    <summary>Maps nested structures.</summary>
  </member>
</members></doc>`

func loadModel(t *testing.T) *xmldoc.Model {
	t.Helper()
	model, err := xmldoc.Parse(strings.NewReader(mathxExport))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return model
}

func TestToString(t *testing.T) {
	t.Parallel()

	out := New(loadModel(t), Options{}).ToString()

	for _, want := range []string{
		"# Index",
		"- [MyLib.Mathx](#mylibmathx)",
		"- [MyLib.Seq](#mylibseq)",
		`<a id="mylibmathx"></a>`,
		"# MyLib.Mathx",
		// Overloads share one group heading with per-overload bullets.
		"## Method: Add\n",
		"- `Add(int, int)`",
		"- `Add(int, int, int)`",
		`<a id="mylib.mathx.add(int,int)"></a>`,
		`<a id="mylib.mathx.add(int,int,int)"></a>`,
		// The sole AddAlias overload renders as a full section.
		"## Method: AddAlias(int, int)",
		// Cross-reference in the type summary resolves to the member anchor.
		"[Add(int, int)](#mylib.mathx.add(int,int))",
		"## Method: Transform<T1,T2>(List<Dictionary<T1, List<T2>>>)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Overload details are indented under their bullets.
	if !strings.Contains(out, "  Adds two integers.") {
		t.Error("overload detail not indented under bullet")
	}
}

func TestToString_InheritedSummary(t *testing.T) {
	t.Parallel()

	out := New(loadModel(t), Options{}).ToString()

	alias := out[strings.Index(out, "## Method: AddAlias"):]
	if !strings.Contains(alias, "Adds two integers.") {
		t.Error("inherited summary missing from AddAlias section")
	}
	if !strings.Contains(alias, "- `a` — Left addend.") {
		t.Error("inherited parameter missing from AddAlias section")
	}
}

func TestToString_FragmentLinksResolve(t *testing.T) {
	t.Parallel()

	out := New(loadModel(t), Options{}).ToString()
	doc := markdown.Extract(out)

	valid := make(map[string]bool)
	for _, a := range doc.Anchors {
		valid[a] = true
	}
	for _, h := range doc.Headings {
		valid[links.Slug(h)] = true
	}

	frags := doc.FragmentLinks()
	if len(frags) == 0 {
		t.Fatal("no fragment links found")
	}
	for _, f := range frags {
		if !valid[f] {
			t.Errorf("dangling fragment link %q", f)
		}
	}
}

func TestToDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	written, err := New(loadModel(t), Options{}).ToDirectory(dir)
	if err != nil {
		t.Fatalf("ToDirectory: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("wrote %d files, want 3: %v", len(written), written)
	}

	data, err := os.ReadFile(filepath.Join(dir, "MyLib.Mathx.md"))
	if err != nil {
		t.Fatalf("reading type file: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# MyLib.Mathx\n") {
		t.Errorf("type file does not start with heading: %q", content[:40])
	}
	// Per-type mode cross-references carry the target file name.
	if !strings.Contains(content, "[Add(int, int)](MyLib.Mathx.md#mylib.mathx.add(int,int))") {
		t.Error("per-type cross-reference missing file target")
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	if !strings.Contains(string(index), "- [MyLib.Mathx](MyLib.Mathx.md)") {
		t.Error("index entry missing file link")
	}
}

func TestToSingleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "api.md")
	if err := New(loadModel(t), Options{}).ToSingleFile(path); err != nil {
		t.Fatalf("ToSingleFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Index\n") {
		t.Error("single file does not start with index")
	}
}

func TestRootNamespaceTrim(t *testing.T) {
	t.Parallel()

	out := New(loadModel(t), Options{RootNamespaceToTrim: "MyLib"}).ToString()

	if !strings.Contains(out, "# Mathx\n") {
		t.Error("root namespace not trimmed from heading")
	}
	if !strings.Contains(out, "- [Mathx](#mathx)") {
		t.Error("root namespace not trimmed from index entry")
	}
	// Anchors keep the full identifier.
	if !strings.Contains(out, `<a id="mylib.mathx.add(int,int)"></a>`) {
		t.Error("anchor should not be affected by display trimming")
	}
}

func TestMemberMarkdown(t *testing.T) {
	t.Parallel()

	model := loadModel(t)
	r := New(model, Options{})

	add, _ := model.Lookup("M:MyLib.Mathx.Add(System.Int32,System.Int32)")
	out := r.MemberMarkdown(add)

	for _, want := range []string{
		"## Method: Add(int, int)",
		"Adds two integers.",
		"**Parameters**",
		"- `a` — Left addend.",
		"**Returns**",
		"The sum.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("member markdown missing %q", want)
		}
	}

	typ, _ := model.Lookup("T:MyLib.Mathx")
	out = r.MemberMarkdown(typ)
	if !strings.HasPrefix(out, "# MyLib.Mathx\n") {
		t.Error("type markdown missing heading")
	}
}

func TestRender_RepeatedCallsIdentical(t *testing.T) {
	t.Parallel()

	r := New(loadModel(t), Options{})
	first := r.ToString()
	second := r.ToString()
	if first != second {
		t.Error("repeated renders differ")
	}
}
