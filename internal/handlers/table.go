package handlers

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"hwpx-mcp-go/internal/edit"
	"hwpx-mcp-go/internal/hwpx"
)

// Tool names for table operations
const (
	HWPX_ADD_TABLE            = "hwpx_add_table"
	HWPX_GET_TABLE            = "hwpx_get_table"
	HWPX_SET_TABLE_CELL       = "hwpx_set_table_cell"
	HWPX_REPLACE_TABLE_REGION = "hwpx_replace_table_region"
	HWPX_MERGE_TABLE_CELLS    = "hwpx_merge_table_cells"
	HWPX_SPLIT_TABLE_CELL     = "hwpx_split_table_cell"
	HWPX_FORMAT_TABLE_HEADER  = "hwpx_format_table_header"
)

// parseCellData decodes a JSON array of string rows, the same shape the
// client sends for table fills and region replacements.
func parseCellData(raw string) ([][]string, error) {
	if raw == "" {
		return nil, nil
	}
	var data [][]string
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, hwpx.ParseError("parse table data JSON", err)
	}
	return data, nil
}

func (h *Handlers) HandleAddTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	rows := request.GetInt("rows", 0)
	cols := request.GetInt("cols", 0)
	dataStr := request.GetString("data", "")
	dryRun := request.GetBool("dry_run", false)

	data, err := parseCellData(dataStr)
	if err != nil {
		return h.errorResult(HWPX_ADD_TABLE, err), nil
	}
	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_ADD_TABLE, err), nil
	}
	tableIndex, err := edit.AddTable(doc, rows, cols, data)
	if err != nil {
		return h.errorResult(HWPX_ADD_TABLE, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_ADD_TABLE, err), nil
	}
	return h.jsonResult(HWPX_ADD_TABLE, map[string]any{
		"tableIndex": tableIndex,
		"rows":       rows,
		"cols":       cols,
		"dryRun":     dryRun,
	}), nil
}

func (h *Handlers) HandleGetTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	tableIndex := request.GetInt("table_index", 0)

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_GET_TABLE, err), nil
	}
	grid, err := edit.TableData(doc, tableIndex)
	if err != nil {
		return h.errorResult(HWPX_GET_TABLE, err), nil
	}
	return h.jsonResult(HWPX_GET_TABLE, grid), nil
}

func (h *Handlers) HandleSetTableCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	tableIndex := request.GetInt("table_index", 0)
	row := request.GetInt("row", 0)
	col := request.GetInt("col", 0)
	text := request.GetString("text", "")
	logical := request.GetBool("logical", false)
	splitMerged := request.GetBool("split_merged", false)
	dryRun := request.GetBool("dry_run", false)

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_SET_TABLE_CELL, err), nil
	}
	if err := edit.SetCellText(doc, tableIndex, row, col, text, logical, splitMerged); err != nil {
		return h.errorResult(HWPX_SET_TABLE_CELL, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_SET_TABLE_CELL, err), nil
	}
	return h.jsonResult(HWPX_SET_TABLE_CELL, map[string]any{
		"tableIndex": tableIndex,
		"row":        row,
		"col":        col,
		"updated":    true,
		"dryRun":     dryRun,
	}), nil
}

func (h *Handlers) HandleReplaceTableRegion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	tableIndex := request.GetInt("table_index", 0)
	startRow := request.GetInt("start_row", 0)
	startCol := request.GetInt("start_col", 0)
	valuesStr := request.GetString("values", "")
	logical := request.GetBool("logical", false)
	splitMerged := request.GetBool("split_merged", false)
	dryRun := request.GetBool("dry_run", false)
	if valuesStr == "" {
		return CreateTextResult("Error: Values are required"), nil
	}

	values, err := parseCellData(valuesStr)
	if err != nil {
		return h.errorResult(HWPX_REPLACE_TABLE_REGION, err), nil
	}
	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_REPLACE_TABLE_REGION, err), nil
	}
	updated, err := edit.ReplaceTableRegion(doc, tableIndex, startRow, startCol, values, logical, splitMerged)
	if err != nil {
		return h.errorResult(HWPX_REPLACE_TABLE_REGION, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_REPLACE_TABLE_REGION, err), nil
	}
	return h.jsonResult(HWPX_REPLACE_TABLE_REGION, map[string]any{
		"updatedCells": updated,
		"dryRun":       dryRun,
	}), nil
}

func (h *Handlers) HandleMergeTableCells(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	tableIndex := request.GetInt("table_index", 0)
	startRow := request.GetInt("start_row", 0)
	startCol := request.GetInt("start_col", 0)
	endRow := request.GetInt("end_row", 0)
	endCol := request.GetInt("end_col", 0)
	dryRun := request.GetBool("dry_run", false)

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_MERGE_TABLE_CELLS, err), nil
	}
	if err := edit.MergeCells(doc, tableIndex, startRow, startCol, endRow, endCol); err != nil {
		return h.errorResult(HWPX_MERGE_TABLE_CELLS, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_MERGE_TABLE_CELLS, err), nil
	}
	return h.jsonResult(HWPX_MERGE_TABLE_CELLS, map[string]any{
		"tableIndex": tableIndex,
		"merged":     true,
		"dryRun":     dryRun,
	}), nil
}

func (h *Handlers) HandleSplitTableCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	tableIndex := request.GetInt("table_index", 0)
	row := request.GetInt("row", 0)
	col := request.GetInt("col", 0)
	dryRun := request.GetBool("dry_run", false)

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_SPLIT_TABLE_CELL, err), nil
	}
	span, err := edit.SplitCell(doc, tableIndex, row, col)
	if err != nil {
		return h.errorResult(HWPX_SPLIT_TABLE_CELL, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_SPLIT_TABLE_CELL, err), nil
	}
	return h.jsonResult(HWPX_SPLIT_TABLE_CELL, map[string]any{
		"removedSpan": span,
		"dryRun":      dryRun,
	}), nil
}

func (h *Handlers) HandleFormatTableHeader(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	tableIndex := request.GetInt("table_index", 0)
	dryRun := request.GetBool("dry_run", false)

	var hasHeaderRow *bool
	if args := request.GetArguments(); args != nil {
		if v, ok := args["has_header_row"].(bool); ok {
			hasHeaderRow = &v
		}
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_FORMAT_TABLE_HEADER, err), nil
	}
	if err := edit.FormatTableHeader(doc, tableIndex, hasHeaderRow); err != nil {
		return h.errorResult(HWPX_FORMAT_TABLE_HEADER, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_FORMAT_TABLE_HEADER, err), nil
	}
	return h.jsonResult(HWPX_FORMAT_TABLE_HEADER, map[string]any{
		"tableIndex": tableIndex,
		"applied":    hasHeaderRow != nil,
		"dryRun":     dryRun,
	}), nil
}
