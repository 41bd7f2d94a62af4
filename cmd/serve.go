package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"xmldocmd/internal/mcp"
	"xmldocmd/internal/xmldoc"
)

var serveCmd = &cobra.Command{
	Use:   "serve <export.xml>",
	Short: "Serve the export's documentation over MCP on stdio",
	Args:  cobra.ExactArgs(1),
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	_, opts := loadRenderOptions(cmd)

	model, err := xmldoc.Load(args[0])
	if err != nil {
		slog.Error("failed to load export", "error", err)
		os.Exit(1)
	}

	if err := mcp.NewServer(model, opts).Run(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
