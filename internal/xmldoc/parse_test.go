package xmldoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleExport = `<?xml version="1.0"?>
<doc>
  <assembly><name>MyLib</name></assembly>
  <members>
    <member name="T:MyLib.Mathx">
      <summary>Arithmetic helpers.</summary>
    </member>
    <member name="M:MyLib.Mathx.Add(System.Int32,System.Int32)">
      <summary>Adds two integers.</summary>
      <param name="a">First addend.</param>
      <param name="b">Second addend.</param>
      <returns>The sum.</returns>
    </member>
    <member name="P:MyLib.Mathx.Zero">
      <summary>The additive identity.</summary>
    </member>
  </members>
</doc>`

func TestParse(t *testing.T) {
	t.Parallel()

	model, err := Parse(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if model.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", model.Len())
	}

	typ, ok := model.Lookup("T:MyLib.Mathx")
	if !ok {
		t.Fatal("type member not found")
	}
	if typ.Kind != KindType {
		t.Errorf("Kind = %v, want KindType", typ.Kind)
	}
	if typ.ID != "MyLib.Mathx" {
		t.Errorf("ID = %q, want %q", typ.ID, "MyLib.Mathx")
	}

	add, ok := model.Lookup("M:MyLib.Mathx.Add(System.Int32,System.Int32)")
	if !ok {
		t.Fatal("method member not found")
	}
	if add.Kind != KindMethod {
		t.Errorf("Kind = %v, want KindMethod", add.Kind)
	}
	if got := add.Section("summary").FlatText(); got != "Adds two integers." {
		t.Errorf("summary = %q", got)
	}
	if got := len(add.Sections("param")); got != 2 {
		t.Errorf("param count = %d, want 2", got)
	}
	if p := add.Param("b"); p == nil || p.FlatText() != "Second addend." {
		t.Errorf("Param(b) = %v", p)
	}
	if add.Param("missing") != nil {
		t.Error("Param(missing) should be nil")
	}
	if !add.HasSection("returns") {
		t.Error("returns section missing")
	}
}

func TestParse_DuplicateLastWins(t *testing.T) {
	t.Parallel()

	const dup = `<doc><members>
		<member name="T:A"><summary>first</summary></member>
		<member name="T:A"><summary>second</summary></member>
	</members></doc>`

	model, err := Parse(strings.NewReader(dup))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if model.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", model.Len())
	}
	m, _ := model.Lookup("T:A")
	if got := m.Section("summary").FlatText(); got != "second" {
		t.Errorf("summary = %q, want %q", got, "second")
	}
}

func TestParse_PreservesCodeWhitespace(t *testing.T) {
	t.Parallel()

	const export = `<doc><members>
		<member name="T:A">
			<example><code>var x = 1;
    var indented = 2;</code></example>
		</member>
	</members></doc>`

	model, err := Parse(strings.NewReader(export))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, _ := model.Lookup("T:A")
	code := m.Section("example").Children[0]
	if code.Tag != "code" {
		t.Fatalf("first child tag = %q, want code", code.Tag)
	}
	want := "var x = 1;\n    var indented = 2;"
	if got := code.FlatText(); got != want {
		t.Errorf("code text = %q, want %q", got, want)
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := Parse(strings.NewReader("<doc><members><member name=\"T:A\">")); err == nil {
		t.Error("expected error for truncated document")
	}
}

func TestParse_MissingNameSkipped(t *testing.T) {
	t.Parallel()

	const export = `<doc><members>
		<member><summary>anonymous</summary></member>
		<member name="T:A"><summary>ok</summary></member>
	</members></doc>`

	model, err := Parse(strings.NewReader(export))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if model.Len() != 1 {
		t.Errorf("Len() = %d, want 1", model.Len())
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "MyLib.xml")
	if err := os.WriteFile(path, []byte(sampleExport), 0o644); err != nil {
		t.Fatal(err)
	}

	model, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if model.Len() != 3 {
		t.Errorf("Len() = %d, want 3", model.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestModel_Types(t *testing.T) {
	t.Parallel()

	model, err := Parse(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	types := model.Types()
	if len(types) != 1 {
		t.Fatalf("Types() len = %d, want 1", len(types))
	}
	if types[0].Name != "T:MyLib.Mathx" {
		t.Errorf("Types()[0].Name = %q", types[0].Name)
	}

	members := model.Members()
	if len(members) != 3 {
		t.Fatalf("Members() len = %d, want 3", len(members))
	}
	for i := 1; i < len(members); i++ {
		if members[i-1].Name > members[i].Name {
			t.Errorf("Members() not sorted: %q > %q", members[i-1].Name, members[i].Name)
		}
	}
}
