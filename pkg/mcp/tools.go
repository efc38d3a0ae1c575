package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool names.
const (
	ToolConvertIcon      = "convert_icon"
	ToolListIcons        = "list_icons"
	ToolConvertDirectory = "convert_directory"
)

// ToolNames lists the registered tools.
var ToolNames = []string{ToolConvertIcon, ToolListIcons, ToolConvertDirectory}

func convertIconTool() mcp.Tool {
	return mcp.NewTool(ToolConvertIcon,
		mcp.WithDescription("Convert one React/Motion icon component to a SolidJS component. "+
			"Returns the generated source and any fallback warnings."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Source file name, e.g. bell.tsx. The extension selects the grammar and the stem names the component.")),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Full text of the React component.")),
	)
}

func listIconsTool() mcp.Tool {
	return mcp.NewTool(ToolListIcons,
		mcp.WithDescription("List the icon sources the converter would pick up, with their component names."),
		mcp.WithString("dir",
			mcp.Description("Directory to list. Defaults to the configured input directory.")),
	)
}

func convertDirectoryTool() mcp.Tool {
	return mcp.NewTool(ToolConvertDirectory,
		mcp.WithDescription("Convert every icon in the configured input directory and write the results "+
			"to the output directory. Returns the run summary."),
	)
}
