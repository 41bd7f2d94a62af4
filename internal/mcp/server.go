// Package mcp exposes a loaded documentation model over the Model Context
// Protocol, so editors and agents can look up rendered reference entries
// without generating the whole file set.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"xmldocmd/internal/render"
	"xmldocmd/internal/xmldoc"
)

type Server struct {
	mcpServer *server.MCPServer
	model     *xmldoc.Model
	renderer  *render.Renderer
}

func NewServer(model *xmldoc.Model, opts render.Options) *Server {
	s := &Server{
		model:    model,
		renderer: render.New(model, opts),
	}

	mcpServer := server.NewMCPServer(
		"xmldocmd",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("list_types",
			mcp.WithDescription("List the documented types in the loaded export. Returns one full identifier per line; pass an identifier to lookup_member to read its documentation."),
		),
		s.handleListTypes,
	)

	mcpServer.AddTool(
		mcp.NewTool("lookup_member",
			mcp.WithDescription("Render one documented member as Markdown. Accepts a full kind-prefixed identifier, e.g. \"T:Ns.Type\" or \"M:Ns.Type.Method(System.Int32)\"."),
			mcp.WithString("name",
				mcp.Description("Full member identifier including the kind prefix"),
				mcp.Required(),
			),
		),
		s.handleLookupMember,
	)
}

func (s *Server) handleListTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, t := range s.model.Types() {
		b.WriteString(t.Name)
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleLookupMember(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	name, _ := args["name"].(string)
	if name == "" {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	member, ok := s.model.Lookup(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("member %q not found", name)), nil
	}

	return mcp.NewToolResultText(s.renderer.MemberMarkdown(member)), nil
}

// Run serves MCP over stdio until the client disconnects.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
