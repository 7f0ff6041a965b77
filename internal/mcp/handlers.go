package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sdsheeks/gqlscout/internal/errors"
	"github.com/sdsheeks/gqlscout/internal/keywords"
	"github.com/sdsheeks/gqlscout/internal/schema"
	"github.com/sdsheeks/gqlscout/internal/sdl"
	"github.com/sdsheeks/gqlscout/internal/search"
	"github.com/sdsheeks/gqlscout/internal/templates"
)

// DefaultContextWindow is the snippet radius used when a search request does
// not specify one.
const DefaultContextWindow = 2

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	manager *schema.Manager
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(manager *schema.Manager) *Handlers {
	return &Handlers{manager: manager}
}

// Request types for each tool

// SearchRequest represents the arguments for schema_search.
type SearchRequest struct {
	Query           string `json:"query"`
	ConstructFilter string `json:"construct_filter,omitempty"`
	ContextWindow   *int   `json:"context_window,omitempty"`
}

// GetRequest represents the arguments for schema_get.
type GetRequest struct {
	ForceRefresh bool `json:"force_refresh,omitempty"`
}

// TemplateGetRequest represents the arguments for template_get.
type TemplateGetRequest struct {
	Name string `json:"name"`
}

// KeywordListRequest represents the arguments for keyword_list.
type KeywordListRequest struct {
	Category string `json:"category,omitempty"`
}

// Response shapes

// GetResponse is the schema_get result.
type GetResponse struct {
	SDL      string          `json:"sdl"`
	Snapshot schema.Snapshot `json:"snapshot"`
}

// RefreshResponse is the schema_refresh result.
type RefreshResponse struct {
	Snapshot schema.Snapshot `json:"snapshot"`
	Summary  sdl.Summary     `json:"summary"`
}

// StatusResponse is the schema_status result.
type StatusResponse struct {
	Cache   *schema.Status `json:"cache"`
	Summary *sdl.Summary   `json:"summary,omitempty"`
}

// Handler implementations

// HandleSearch handles the schema_search tool call. Input problems never
// become tool failures: the structured result shape always comes back, with
// its error field populated instead.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	window := DefaultContextWindow
	if input.ContextWindow != nil {
		window = *input.ContextWindow
	}

	content, err := h.manager.GetContent(ctx)
	if err != nil {
		// Schema unavailable is reported inside the result shape too, so a
		// batch of searches degrades without exception handling upstream.
		return successResult(&search.Result{
			Matches:     []search.Match{},
			SearchQuery: input.Query,
			Filter:      input.ConstructFilter,
			Error:       err.Error(),
		})
	}

	return successResult(search.Search(content, search.Query{
		Pattern:       input.Query,
		Filter:        input.ConstructFilter,
		ContextWindow: window,
	}))
}

// HandleGet handles the schema_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	var doc *schema.Document
	if input.ForceRefresh {
		doc, err = h.manager.ForceRefresh(ctx)
	} else {
		doc, err = h.manager.GetDocument(ctx)
	}
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(GetResponse{SDL: doc.Content, Snapshot: doc.Snapshot})
}

// HandleRefresh handles the schema_refresh tool call.
func (h *Handlers) HandleRefresh(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := h.manager.ForceRefresh(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(RefreshResponse{
		Snapshot: doc.Snapshot,
		Summary:  sdl.Summarize(doc.Content),
	})
}

// HandleStatus handles the schema_status tool call.
func (h *Handlers) HandleStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp := StatusResponse{Cache: h.manager.Status()}
	if content, err := h.manager.Peek(); err == nil {
		summary := sdl.Summarize(content)
		resp.Summary = &summary
	}
	return successResult(resp)
}

// HandleTemplateList handles the template_list tool call.
func (h *Handlers) HandleTemplateList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := templates.List()
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"templates": items})
}

// HandleTemplateGet handles the template_get tool call.
func (h *Handlers) HandleTemplateGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TemplateGetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Name == "" {
		return errorResult(errors.NewInvalidRequest("name is required")), nil
	}

	tmpl, err := templates.Get(input.Name)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(tmpl)
}

// HandleKeywordList handles the keyword_list tool call.
func (h *Handlers) HandleKeywordList(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[KeywordListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.Category == "" {
		cats, err := keywords.Categories()
		if err != nil {
			return errorResult(err), nil
		}
		return successResult(map[string]any{"categories": cats})
	}

	words, err := keywords.List(input.Category)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"category": input.Category, "keywords": words})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if sErr, ok := err.(*errors.ScoutError); ok {
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": sErr.Message,
			"status":  sErr.Status,
		}
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
