package mcp

import "github.com/mark3labs/mcp-go/mcp"

func withLocale() mcp.ToolOption {
	return mcp.WithString("locale",
		mcp.Description("Language code such as en, de or jp (default: the configured locale)"),
	)
}

// listCivsTool defines the list_civs MCP tool.
var listCivsTool = mcp.NewTool("list_civs",
	mcp.WithDescription("List the civilizations in the tech tree with their localized names."),
	withLocale(),
)

// findNodeTool defines the find_node MCP tool.
var findNodeTool = mcp.NewTool("find_node",
	mcp.WithDescription("Find tech tree nodes whose localized name contains the query. Returns node ids for the other tools."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Part of a unit, building or technology name"),
	),
	withLocale(),
)

// getHelpTextTool defines the get_help_text MCP tool.
var getHelpTextTool = mcp.NewTool("get_help_text",
	mcp.WithDescription("Get the rendered help text of a node: description, cost, stats and which civilizations have it."),
	mcp.WithString("node",
		mcp.Required(),
		mcp.Description("Node id, e.g. unit_93 or building_12"),
	),
	mcp.WithString("civ",
		mcp.Description("Civilization whose unique units and technologies fill the unique slots"),
	),
	withLocale(),
)

// civAvailabilityTool defines the civ_availability MCP tool.
var civAvailabilityTool = mcp.NewTool("civ_availability",
	mcp.WithDescription("List which nodes a civilization can use, cannot use, or shows as its unique units and technologies."),
	mcp.WithString("civ",
		mcp.Required(),
		mcp.Description("Civilization id or name"),
	),
	mcp.WithString("state",
		mcp.Description("Only list nodes in this state"),
		mcp.Enum("ENABLED", "DISABLED", "UNIQUE_RESKIN"),
	),
	withLocale(),
)

// ancestorPathTool defines the ancestor_path MCP tool.
var ancestorPathTool = mcp.NewTool("ancestor_path",
	mcp.WithDescription("Get the chain of prerequisites from a node up to its root building."),
	mcp.WithString("node",
		mcp.Required(),
		mcp.Description("Node id"),
	),
	withLocale(),
)
