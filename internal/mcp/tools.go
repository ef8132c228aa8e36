package mcp

import "github.com/mark3labs/mcp-go/mcp"

// analyzeTextTool defines the analyze_text MCP tool.
var analyzeTextTool = mcp.NewTool("analyze_text",
	mcp.WithDescription("Analyze text for bias patterns and logical structure, and return a compressed rendering with its quality scores."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The text to analyze"),
	),
)

// proposeSolutionTool defines the propose_solution MCP tool.
var proposeSolutionTool = mcp.NewTool("propose_solution",
	mcp.WithDescription("Classify a problem description and synthesize a solution proposal from the pattern library. The proposal is not recorded."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The problem description"),
	),
)

// recordPatternTool defines the record_pattern MCP tool.
var recordPatternTool = mcp.NewTool("record_pattern",
	mcp.WithDescription("Add a problem/solution pattern to the library. Category is inferred from the problem summary when omitted."),
	mcp.WithString("problem",
		mcp.Required(),
		mcp.Description("Summary of the problem the pattern addresses"),
	),
	mcp.WithString("solution",
		mcp.Required(),
		mcp.Description("Summary of the solution"),
	),
	mcp.WithString("category",
		mcp.Description("Problem category"),
		mcp.Enum("inefficiency", "inconsistency", "complexity", "fragility", "isolation", "scaling"),
	),
	mcp.WithString("steps",
		mcp.Description("Implementation steps, one per line"),
	),
)

// libraryStatusTool defines the library_status MCP tool.
var libraryStatusTool = mcp.NewTool("library_status",
	mcp.WithDescription("Report the pattern library size and the state of the most recent autonomous cycle."),
)
