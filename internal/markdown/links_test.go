package markdown

import "testing"

const sampleDoc = `# Index

- [MyLib.Mathx](#mylibmathx)
- [External](https://example.com/page#frag)

---

<a id="mylibmathx"></a>
# MyLib.Mathx

See [Add](#mylib.mathx.add(int,int)) for details.

<a id="mylib.mathx.add(int,int)"></a>
## Method: Add(int, int)
`

func TestExtract(t *testing.T) {
	t.Parallel()

	doc := Extract(sampleDoc)

	if len(doc.Links) != 3 {
		t.Fatalf("found %d links, want 3: %+v", len(doc.Links), doc.Links)
	}
	if doc.Links[0].Destination != "#mylibmathx" || doc.Links[0].Text != "MyLib.Mathx" {
		t.Errorf("first link = %+v", doc.Links[0])
	}

	if !doc.HasAnchor("mylibmathx") {
		t.Error("anchor mylibmathx not found")
	}
	if !doc.HasAnchor("mylib.mathx.add(int,int)") {
		t.Error("anchor with parameter list not found")
	}
	if doc.HasAnchor("missing") {
		t.Error("HasAnchor(missing) = true")
	}

	wantHeadings := []string{"Index", "MyLib.Mathx", "Method: Add(int, int)"}
	if len(doc.Headings) != len(wantHeadings) {
		t.Fatalf("headings = %v, want %v", doc.Headings, wantHeadings)
	}
	for i, h := range doc.Headings {
		if h != wantHeadings[i] {
			t.Errorf("heading %d = %q, want %q", i, h, wantHeadings[i])
		}
	}
}

func TestFragmentLinks(t *testing.T) {
	t.Parallel()

	doc := Extract(sampleDoc)
	frags := doc.FragmentLinks()

	want := map[string]bool{
		"mylibmathx":               true,
		"frag":                     true,
		"mylib.mathx.add(int,int)": true,
	}
	if len(frags) != len(want) {
		t.Fatalf("fragments = %v", frags)
	}
	for _, f := range frags {
		if !want[f] {
			t.Errorf("unexpected fragment %q", f)
		}
	}
}

func TestFragmentLinks_FileTargets(t *testing.T) {
	t.Parallel()

	doc := Extract("[Add](MyLib.Mathx.md#mylib.mathx.add(int,int))")
	frags := doc.FragmentLinks()
	if len(frags) != 1 || frags[0] != "mylib.mathx.add(int,int)" {
		t.Errorf("fragments = %v", frags)
	}
}
