package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Descriptions are written for AI callers: they explain
// when to reach for each tool, not just what it does.

var searchToolDef = mcp.NewTool("schema_search",
	mcp.WithDescription(
		"Search the GraphQL schema for a pattern and get matching lines with "+
			"surrounding context. The pattern is a case-insensitive regular "+
			"expression. Use construct_filter to scope matches: 'query' and "+
			"'mutation' find operations in the root blocks; 'type', 'input', "+
			"'enum', 'interface', 'union', 'scalar' find definitions and their "+
			"fields. Input problems are reported in the result's 'error' field, "+
			"never as a tool failure.",
	),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Pattern to search for (case-insensitive regex)"),
	),
	mcp.WithString("construct_filter",
		mcp.Description("Restrict matches: any|query|mutation|type|input|enum|interface|union|scalar (default: any)"),
	),
	mcp.WithNumber("context_window",
		mcp.Description("Lines of context before and after each match (default: 2)"),
	),
)

var getToolDef = mcp.NewTool("schema_get",
	mcp.WithDescription(
		"Get the full SDL text of the schema. Served from the local cache when "+
			"fresh; fetched from the endpoint otherwise. Set force_refresh to "+
			"bypass the cache entirely.",
	),
	mcp.WithBoolean("force_refresh",
		mcp.Description("Fetch from the endpoint even if the cached copy is fresh"),
	),
)

var refreshToolDef = mcp.NewTool("schema_refresh",
	mcp.WithDescription(
		"Force-fetch the schema from the endpoint and overwrite the local "+
			"cache. Fails rather than silently serving a stale copy.",
	),
)

var statusToolDef = mcp.NewTool("schema_status",
	mcp.WithDescription(
		"Report the schema cache state (age, freshness) and a construct "+
			"summary of the cached document. Never touches the network.",
	),
)

var templateListToolDef = mcp.NewTool("template_list",
	mcp.WithDescription(
		"List the built-in GraphQL operation templates (queries and mutations "+
			"with placeholder markers).",
	),
)

var templateGetToolDef = mcp.NewTool("template_get",
	mcp.WithDescription(
		"Get one operation template by name, including its operation text, "+
			"variable documentation, and usage notes.",
	),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Template name as returned by template_list"),
	),
)

var keywordListToolDef = mcp.NewTool("keyword_list",
	mcp.WithDescription(
		"List keyword suggestions for schema exploration. Without a category, "+
			"returns the available categories; with one, returns its keywords. "+
			"Useful as schema_search input when field names are unknown.",
	),
	mcp.WithString("category",
		mcp.Description("Keyword category (e.g. queries, mutations, pagination)"),
	),
)
