package main

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"hwpx-mcp-go/internal/handlers"
)

func newMCPServer(h *handlers.Handlers) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"hwpx-mcp-go",
		version,
		server.WithToolCapabilities(true),
	)

	pathArg := mcp.WithString("path",
		mcp.Description("Document path"),
		mcp.Required(),
	)
	dryRunArg := mcp.WithBoolean("dry_run",
		mcp.Description("Report the effect without saving"),
	)

	// Document lifecycle tools
	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_CREATE,
		mcp.WithDescription("Create a new blank HWPX document"),
		pathArg,
	), h.HandleCreate)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_OPEN_INFO,
		mcp.WithDescription("Open an HWPX document and report its structure"),
		pathArg,
	), h.HandleOpenInfo)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_SAVE_AS,
		mcp.WithDescription("Copy an HWPX document to a new path"),
		pathArg,
		mcp.WithString("target_path",
			mcp.Description("Destination path"),
			mcp.Required(),
		),
	), h.HandleSaveAs)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_READ_TEXT,
		mcp.WithDescription("Read paragraph text with paging"),
		pathArg,
		mcp.WithNumber("offset",
			mcp.Description("First paragraph index to return"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum paragraphs to return (0 means all)"),
		),
	), h.HandleReadText)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_GET_PARAGRAPHS,
		mcp.WithDescription("List every paragraph with its index, run count and table flag"),
		pathArg,
	), h.HandleGetParagraphs)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_PACKAGE_GET_XML,
		mcp.WithDescription("Return the raw XML of one package part"),
		pathArg,
		mcp.WithString("part_name",
			mcp.Description("Package part name, e.g. Contents/section0.xml"),
			mcp.Required(),
		),
	), h.HandlePackageGetXML)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_PACKAGE_SET_XML,
		mcp.WithDescription("Replace the XML of one package part"),
		pathArg,
		mcp.WithString("part_name",
			mcp.Description("Package part name"),
			mcp.Required(),
		),
		mcp.WithString("xml",
			mcp.Description("New XML content"),
			mcp.Required(),
		),
		dryRunArg,
	), h.HandlePackageSetXML)

	// Search and replace tools
	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_FIND,
		mcp.WithDescription("Find text across paragraphs with context windows"),
		pathArg,
		mcp.WithString("text",
			mcp.Description("Text to find"),
			mcp.Required(),
		),
		mcp.WithBoolean("match_case",
			mcp.Description("Case sensitive matching"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum matches to return"),
		),
	), h.HandleFind)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_REPLACE_TEXT,
		mcp.WithDescription("Replace text paragraph by paragraph"),
		pathArg,
		mcp.WithString("find",
			mcp.Description("Text to find"),
			mcp.Required(),
		),
		mcp.WithString("replace",
			mcp.Description("Replacement text"),
		),
		dryRunArg,
	), h.HandleReplaceText)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_REPLACE_TEXT_IN_RUNS,
		mcp.WithDescription("Replace text even when it spans multiple runs, preserving run structure"),
		pathArg,
		mcp.WithString("find",
			mcp.Description("Text to find"),
			mcp.Required(),
		),
		mcp.WithString("replace",
			mcp.Description("Replacement text"),
		),
		dryRunArg,
	), h.HandleReplaceTextInRuns)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_BATCH_REPLACE,
		mcp.WithDescription("Apply an ordered list of find/replace pairs atomically"),
		pathArg,
		mcp.WithString("replacements",
			mcp.Description("JSON array of {find, replace} objects"),
			mcp.Required(),
		),
		dryRunArg,
	), h.HandleBatchReplace)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_FORMAT_TEXT_RANGE,
		mcp.WithDescription("Apply character formatting to a rune range of one paragraph"),
		pathArg,
		mcp.WithNumber("paragraph_index",
			mcp.Description("Paragraph index"),
			mcp.Required(),
		),
		mcp.WithNumber("start_pos",
			mcp.Description("Range start, rune offset"),
			mcp.Required(),
		),
		mcp.WithNumber("end_pos",
			mcp.Description("Range end, rune offset, exclusive"),
			mcp.Required(),
		),
		mcp.WithBoolean("bold",
			mcp.Description("Set or clear bold"),
		),
		mcp.WithBoolean("italic",
			mcp.Description("Set or clear italic"),
		),
		mcp.WithBoolean("underline",
			mcp.Description("Set or clear underline"),
		),
		dryRunArg,
	), h.HandleFormatTextRange)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_CREATE_STYLE,
		mcp.WithDescription("Create a named paragraph style"),
		pathArg,
		mcp.WithString("style_name",
			mcp.Description("Style name"),
			mcp.Required(),
		),
		dryRunArg,
	), h.HandleCreateStyle)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_LIST_STYLES,
		mcp.WithDescription("List the styles defined in the document header"),
		pathArg,
	), h.HandleListStyles)

	// Paragraph and annotation tools
	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_ADD_HEADING,
		mcp.WithDescription("Append a heading paragraph"),
		pathArg,
		mcp.WithString("text",
			mcp.Description("Heading text"),
			mcp.Required(),
		),
		mcp.WithNumber("level",
			mcp.Description("Heading level 1-6"),
		),
		dryRunArg,
	), h.HandleAddHeading)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_ADD_PARAGRAPH,
		mcp.WithDescription("Append a paragraph"),
		pathArg,
		mcp.WithString("text",
			mcp.Description("Paragraph text"),
		),
		mcp.WithString("style",
			mcp.Description("Style name to apply"),
		),
		dryRunArg,
	), h.HandleAddParagraph)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_INSERT_PARAGRAPH,
		mcp.WithDescription("Insert a paragraph before the given index"),
		pathArg,
		mcp.WithNumber("index",
			mcp.Description("Insertion index"),
			mcp.Required(),
		),
		mcp.WithString("text",
			mcp.Description("Paragraph text"),
		),
		mcp.WithString("style",
			mcp.Description("Style name to apply"),
		),
		dryRunArg,
	), h.HandleInsertParagraph)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_DELETE_PARAGRAPH,
		mcp.WithDescription("Delete the paragraph at the given index"),
		pathArg,
		mcp.WithNumber("index",
			mcp.Description("Paragraph index"),
			mcp.Required(),
		),
		dryRunArg,
	), h.HandleDeleteParagraph)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_ADD_PAGE_BREAK,
		mcp.WithDescription("Append an empty paragraph that starts a new page"),
		pathArg,
		dryRunArg,
	), h.HandleAddPageBreak)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_ADD_MEMO,
		mcp.WithDescription("Attach a memo annotation to a paragraph"),
		pathArg,
		mcp.WithNumber("paragraph_index",
			mcp.Description("Paragraph index"),
			mcp.Required(),
		),
		mcp.WithString("text",
			mcp.Description("Memo text"),
			mcp.Required(),
		),
		dryRunArg,
	), h.HandleAddMemo)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_REMOVE_MEMO,
		mcp.WithDescription("Remove the memo annotations anchored at a paragraph"),
		pathArg,
		mcp.WithNumber("paragraph_index",
			mcp.Description("Paragraph index"),
			mcp.Required(),
		),
		dryRunArg,
	), h.HandleRemoveMemo)

	// Table tools
	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_ADD_TABLE,
		mcp.WithDescription("Append a table, optionally pre-filled"),
		pathArg,
		mcp.WithNumber("rows",
			mcp.Description("Row count"),
			mcp.Required(),
		),
		mcp.WithNumber("cols",
			mcp.Description("Column count"),
			mcp.Required(),
		),
		mcp.WithString("data",
			mcp.Description("JSON array of string rows to fill the table"),
		),
		dryRunArg,
	), h.HandleAddTable)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_GET_TABLE,
		mcp.WithDescription("Return a table's cell grid"),
		pathArg,
		mcp.WithNumber("table_index",
			mcp.Description("Table index in document order"),
			mcp.Required(),
		),
	), h.HandleGetTable)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_SET_TABLE_CELL,
		mcp.WithDescription("Set the text of one table cell"),
		pathArg,
		mcp.WithNumber("table_index",
			mcp.Description("Table index"),
			mcp.Required(),
		),
		mcp.WithNumber("row",
			mcp.Description("Row index"),
			mcp.Required(),
		),
		mcp.WithNumber("col",
			mcp.Description("Column index"),
			mcp.Required(),
		),
		mcp.WithString("text",
			mcp.Description("Cell text"),
		),
		mcp.WithBoolean("logical",
			mcp.Description("Treat row/col as a logical coordinate, resolving merged regions to their anchor"),
		),
		mcp.WithBoolean("split_merged",
			mcp.Description("Split a merged region before writing the addressed cell"),
		),
		dryRunArg,
	), h.HandleSetTableCell)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_REPLACE_TABLE_REGION,
		mcp.WithDescription("Overwrite a rectangular block of cells"),
		pathArg,
		mcp.WithNumber("table_index",
			mcp.Description("Table index"),
			mcp.Required(),
		),
		mcp.WithNumber("start_row",
			mcp.Description("Top row of the block"),
			mcp.Required(),
		),
		mcp.WithNumber("start_col",
			mcp.Description("Left column of the block"),
			mcp.Required(),
		),
		mcp.WithString("values",
			mcp.Description("JSON array of string rows"),
			mcp.Required(),
		),
		mcp.WithBoolean("logical",
			mcp.Description("Treat coordinates as logical, resolving merged regions to their anchor"),
		),
		mcp.WithBoolean("split_merged",
			mcp.Description("Split merged regions before writing"),
		),
		dryRunArg,
	), h.HandleReplaceTableRegion)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_MERGE_TABLE_CELLS,
		mcp.WithDescription("Merge a rectangular cell region into its top-left anchor"),
		pathArg,
		mcp.WithNumber("table_index",
			mcp.Description("Table index"),
			mcp.Required(),
		),
		mcp.WithNumber("start_row",
			mcp.Description("Top row of the region"),
			mcp.Required(),
		),
		mcp.WithNumber("start_col",
			mcp.Description("Left column of the region"),
			mcp.Required(),
		),
		mcp.WithNumber("end_row",
			mcp.Description("Bottom row of the region, inclusive"),
			mcp.Required(),
		),
		mcp.WithNumber("end_col",
			mcp.Description("Right column of the region, inclusive"),
			mcp.Required(),
		),
		dryRunArg,
	), h.HandleMergeTableCells)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_SPLIT_TABLE_CELL,
		mcp.WithDescription("Split a merged cell back into individual cells"),
		pathArg,
		mcp.WithNumber("table_index",
			mcp.Description("Table index"),
			mcp.Required(),
		),
		mcp.WithNumber("row",
			mcp.Description("Anchor row"),
			mcp.Required(),
		),
		mcp.WithNumber("col",
			mcp.Description("Anchor column"),
			mcp.Required(),
		),
		dryRunArg,
	), h.HandleSplitTableCell)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_FORMAT_TABLE_HEADER,
		mcp.WithDescription("Toggle bold formatting on a table's first row"),
		pathArg,
		mcp.WithNumber("table_index",
			mcp.Description("Table index"),
			mcp.Required(),
		),
		mcp.WithBoolean("has_header_row",
			mcp.Description("True to bold the first row, false to revert it"),
		),
		dryRunArg,
	), h.HandleFormatTableHeader)

	// Read-model export tools
	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_GET_OUTLINE,
		mcp.WithDescription("Return the heading outline as a table of contents"),
		pathArg,
	), h.HandleGetOutline)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_EXPORT_MARKDOWN,
		mcp.WithDescription("Export the document as markdown"),
		pathArg,
	), h.HandleExportMarkdown)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_EXPORT_HTML,
		mcp.WithDescription("Export the document as HTML"),
		pathArg,
	), h.HandleExportHTML)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_EXPORT_JSON,
		mcp.WithDescription("Export the full read model as JSON"),
		pathArg,
	), h.HandleExportJSON)

	mcpServer.AddTool(mcp.NewTool(handlers.HWPX_CHUNK_TEXT,
		mcp.WithDescription("Split the document text into retrieval-sized chunks"),
		pathArg,
		mcp.WithString("mode",
			mcp.Description("Chunking mode: section or budget"),
		),
		mcp.WithNumber("budget",
			mcp.Description("Rune budget per chunk in budget mode"),
		),
	), h.HandleChunkText)

	return mcpServer
}
