package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"xmldocmd/internal/links"
	"xmldocmd/internal/markdown"
	"xmldocmd/internal/render"
	"xmldocmd/internal/xmldoc"
)

var lintCmd = &cobra.Command{
	Use:   "lint <export.xml>",
	Short: "Check that every cross-reference in the rendered output resolves",
	Long: `Renders the export in single-file mode, parses the resulting Markdown,
and reports every fragment link that matches neither an emitted member
anchor nor a heading slug.`,
	Args: cobra.ExactArgs(1),
	Run:  runLint,
}

func runLint(cmd *cobra.Command, args []string) {
	_, opts := loadRenderOptions(cmd)

	model, err := xmldoc.Load(args[0])
	if err != nil {
		slog.Error("failed to load export", "error", err)
		os.Exit(1)
	}

	doc := markdown.Extract(render.New(model, opts).ToString())

	valid := make(map[string]bool, len(doc.Anchors)+len(doc.Headings))
	for _, a := range doc.Anchors {
		valid[a] = true
	}
	for _, h := range doc.Headings {
		valid[links.Slug(h)] = true
	}

	dangling := 0
	for _, frag := range doc.FragmentLinks() {
		if !valid[frag] {
			fmt.Printf("dangling link target: #%s\n", frag)
			dangling++
		}
	}

	if dangling > 0 {
		slog.Error("lint failed", "dangling", dangling)
		os.Exit(1)
	}
	fmt.Printf("ok: %d links, %d anchors\n", len(doc.Links), len(doc.Anchors))
}
