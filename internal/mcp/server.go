package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sdsheeks/gqlscout/internal/config"
	"github.com/sdsheeks/gqlscout/internal/schema"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"schema_search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
	"schema_get": {
		def:     getToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGet },
	},
	"schema_refresh": {
		def:     refreshToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRefresh },
	},
	"schema_status": {
		def:     statusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStatus },
	},
	"template_list": {
		def:     templateListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTemplateList },
	},
	"template_get": {
		def:     templateGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTemplateGet },
	},
	"keyword_list": {
		def:     keywordListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleKeywordList },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with gqlscout tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(manager *schema.Manager, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"gqlscout",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(manager)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(manager *schema.Manager, cfg *config.Config, version string) error {
	s := NewServer(manager, cfg, version)
	return server.ServeStdio(s)
}
