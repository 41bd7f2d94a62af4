package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"xmldocmd/internal/cas"
	"xmldocmd/internal/config"
	"xmldocmd/internal/links"
	"xmldocmd/internal/render"
	"xmldocmd/internal/xmldoc"
)

var (
	genOut           string
	genSingleFile    string
	genFileNames     string
	genRootNamespace string
	genTrimFileNames bool
	genLanguage      string
	genReport        string
	genCache         bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <export.xml>...",
	Short: "Render one or more documentation exports to Markdown",
	Example: `  xmldocmd generate MyLib.xml --out docs
  xmldocmd generate MyLib.xml --single-file docs/MyLib.md
  xmldocmd generate MyLib.xml --file-names clean-generics --trim-namespace MyLib`,
	Args: cobra.MinimumNArgs(1),
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genOut, "out", "", "output directory for per-type files")
	generateCmd.Flags().StringVar(&genSingleFile, "single-file", "", "write one consolidated document to this path instead of a directory")
	generateCmd.Flags().StringVar(&genFileNames, "file-names", "", "file naming style: verbatim or clean-generics")
	generateCmd.Flags().StringVar(&genRootNamespace, "trim-namespace", "", "root namespace to trim from displayed names")
	generateCmd.Flags().BoolVar(&genTrimFileNames, "trim-file-names", false, "also trim the root namespace in file names")
	generateCmd.Flags().StringVar(&genLanguage, "lang", "", "code fence language tag (default csharp)")
	generateCmd.Flags().StringVar(&genReport, "report", "", "write a JSON report of generated files to this path")
	generateCmd.Flags().BoolVar(&genCache, "cache", false, "reuse cached single-file output for unchanged exports")
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg, opts := loadRenderOptions(cmd)

	outDir := cfg.Output.Dir
	if cmd.Flags().Changed("out") {
		outDir = genOut
	}
	singleFile := cfg.Output.SingleFile
	if cmd.Flags().Changed("single-file") {
		singleFile = genSingleFile
	}
	useCache := cfg.Output.Cache || genCache

	written := make([][]string, len(args))

	var g errgroup.Group
	for i, path := range args {
		g.Go(func() error {
			files, err := generateOne(path, args, i, outDir, singleFile, opts, useCache)
			if err != nil {
				return err
			}
			written[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("generate failed: %v", err)
	}

	var all []string
	for _, files := range written {
		all = append(all, files...)
	}
	sort.Strings(all)

	reportPath := cfg.Output.Report
	if cmd.Flags().Changed("report") {
		reportPath = genReport
	}
	if reportPath != "" {
		if err := writeReport(reportPath, all); err != nil {
			log.Fatalf("writing report: %v", err)
		}
	}

	fmt.Printf("wrote %d files\n", len(all))
}

// generateOne renders a single export. When several exports are given,
// per-type output lands in a subdirectory named after the export so their
// index files cannot collide.
func generateOne(path string, args []string, i int, outDir, singleFile string, opts render.Options, useCache bool) ([]string, error) {
	if singleFile != "" {
		target := singleFile
		if len(args) > 1 {
			target = filepath.Join(filepath.Dir(singleFile), exportName(path)+".md")
		}
		return generateSingle(path, target, opts, useCache)
	}

	model, err := xmldoc.Load(path)
	if err != nil {
		return nil, err
	}

	dir := outDir
	if len(args) > 1 {
		dir = filepath.Join(outDir, exportName(path))
	}
	return render.New(model, opts).ToDirectory(dir)
}

func generateSingle(path, target string, opts render.Options, useCache bool) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading doc export: %w", err)
	}

	var key string
	if useCache {
		key = cas.Key(data, []byte(optionsFingerprint(opts)))
		if cas.Has(key) {
			content, err := cas.Read(key)
			if err == nil {
				if err := os.WriteFile(target, []byte(content), 0644); err != nil {
					return nil, fmt.Errorf("writing %s: %w", target, err)
				}
				return []string{target}, nil
			}
			// Unreadable cache entry; fall through and re-render.
		}
	}

	model, err := xmldoc.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("loading doc export %s: %w", path, err)
	}

	content := render.New(model, opts).ToString()
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", target, err)
	}

	if useCache {
		if err := cas.Write(key, content); err != nil {
			return nil, err
		}
	}
	return []string{target}, nil
}

// loadRenderOptions merges config-file settings with any flags set on the
// command; flags win.
func loadRenderOptions(cmd *cobra.Command) (*config.Config, render.Options) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	opts := render.Options{
		FileNameStyle:                cfg.Render.FileNames,
		RootNamespaceToTrim:          cfg.Render.RootNamespace,
		CodeBlockLanguage:            cfg.Render.Language,
		TrimRootNamespaceInFileNames: cfg.Render.TrimFileNames,
	}

	if cmd.Flags().Changed("file-names") {
		style, err := links.ParseFileNameStyle(genFileNames)
		if err != nil {
			log.Fatalf("invalid --file-names: %v", err)
		}
		opts.FileNameStyle = style
	}
	if cmd.Flags().Changed("trim-namespace") {
		opts.RootNamespaceToTrim = genRootNamespace
	}
	if cmd.Flags().Changed("trim-file-names") {
		opts.TrimRootNamespaceInFileNames = genTrimFileNames
	}
	if cmd.Flags().Changed("lang") {
		opts.CodeBlockLanguage = genLanguage
	}

	return cfg, opts
}

func optionsFingerprint(opts render.Options) string {
	return fmt.Sprintf("%s|%s|%s|%t",
		opts.FileNameStyle, opts.RootNamespaceToTrim,
		opts.CodeBlockLanguage, opts.TrimRootNamespaceInFileNames)
}

func exportName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeReport(path string, files []string) error {
	report := struct {
		Files []string `json:"files"`
	}{Files: files}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
