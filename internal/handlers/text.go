package handlers

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"hwpx-mcp-go/internal/edit"
	"hwpx-mcp-go/internal/hwpx"
)

// Tool names for text operations
const (
	HWPX_FIND                 = "hwpx_find"
	HWPX_REPLACE_TEXT         = "hwpx_replace_text"
	HWPX_REPLACE_TEXT_IN_RUNS = "hwpx_replace_text_in_runs"
	HWPX_BATCH_REPLACE        = "hwpx_batch_replace"
	HWPX_FORMAT_TEXT_RANGE    = "hwpx_format_text_range"
	HWPX_CREATE_STYLE         = "hwpx_create_style"
	HWPX_LIST_STYLES          = "hwpx_list_styles"
)

func (h *Handlers) HandleFind(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	textToFind := request.GetString("text", "")
	matchCase := request.GetBool("match_case", false)
	maxResults := request.GetInt("max_results", edit.DefaultMaxResults)
	if textToFind == "" {
		return CreateTextResult("Error: Text to find is required"), nil
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_FIND, err), nil
	}
	result, err := edit.Find(doc, textToFind, matchCase, maxResults)
	if err != nil {
		return h.errorResult(HWPX_FIND, err), nil
	}
	return h.jsonResult(HWPX_FIND, result), nil
}

func (h *Handlers) HandleReplaceText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	find := request.GetString("find", "")
	replace := request.GetString("replace", "")
	dryRun := request.GetBool("dry_run", false)
	if find == "" {
		return CreateTextResult("Error: Find text is required"), nil
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_REPLACE_TEXT, err), nil
	}
	count, err := edit.ReplaceAll(doc, find, replace)
	if err != nil {
		return h.errorResult(HWPX_REPLACE_TEXT, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_REPLACE_TEXT, err), nil
	}
	return h.jsonResult(HWPX_REPLACE_TEXT, map[string]any{
		"replacedCount": count,
		"dryRun":        dryRun,
	}), nil
}

func (h *Handlers) HandleReplaceTextInRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	find := request.GetString("find", "")
	replace := request.GetString("replace", "")
	dryRun := request.GetBool("dry_run", false)
	if find == "" {
		return CreateTextResult("Error: Find text is required"), nil
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_REPLACE_TEXT_IN_RUNS, err), nil
	}
	count, err := edit.ReplaceInDocumentRuns(doc, find, replace)
	if err != nil {
		return h.errorResult(HWPX_REPLACE_TEXT_IN_RUNS, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_REPLACE_TEXT_IN_RUNS, err), nil
	}
	return h.jsonResult(HWPX_REPLACE_TEXT_IN_RUNS, map[string]any{
		"replacedCount": count,
		"dryRun":        dryRun,
	}), nil
}

func (h *Handlers) HandleBatchReplace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	replacementsStr := request.GetString("replacements", "")
	dryRun := request.GetBool("dry_run", false)
	if replacementsStr == "" {
		return CreateTextResult("Error: Replacements list is required"), nil
	}

	var replacements []edit.Replacement
	if err := json.Unmarshal([]byte(replacementsStr), &replacements); err != nil {
		return h.errorResult(HWPX_BATCH_REPLACE, hwpx.ParseError("parse replacements JSON", err)), nil
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_BATCH_REPLACE, err), nil
	}
	results, total, err := edit.BatchReplace(doc, replacements)
	if err != nil {
		return h.errorResult(HWPX_BATCH_REPLACE, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_BATCH_REPLACE, err), nil
	}
	return h.jsonResult(HWPX_BATCH_REPLACE, map[string]any{
		"results":       results,
		"totalReplaced": total,
		"dryRun":        dryRun,
	}), nil
}

func (h *Handlers) HandleFormatTextRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	paragraphIndex := request.GetInt("paragraph_index", 0)
	startPos := request.GetInt("start_pos", 0)
	endPos := request.GetInt("end_pos", 0)
	dryRun := request.GetBool("dry_run", false)

	format := edit.RangeFormat{}
	if args := request.GetArguments(); args != nil {
		if v, ok := args["bold"].(bool); ok {
			format.Bold = &v
		}
		if v, ok := args["italic"].(bool); ok {
			format.Italic = &v
		}
		if v, ok := args["underline"].(bool); ok {
			format.Underline = &v
		}
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_FORMAT_TEXT_RANGE, err), nil
	}
	if err := edit.FormatTextRange(doc, paragraphIndex, startPos, endPos, format); err != nil {
		return h.errorResult(HWPX_FORMAT_TEXT_RANGE, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_FORMAT_TEXT_RANGE, err), nil
	}
	return h.jsonResult(HWPX_FORMAT_TEXT_RANGE, map[string]any{
		"paragraphIndex": paragraphIndex,
		"startPos":       startPos,
		"endPos":         endPos,
		"formatted":      true,
		"dryRun":         dryRun,
	}), nil
}

func (h *Handlers) HandleCreateStyle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	styleName := request.GetString("style_name", "")
	dryRun := request.GetBool("dry_run", false)
	if styleName == "" {
		return CreateTextResult("Error: Style name is required"), nil
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_CREATE_STYLE, err), nil
	}
	if err := edit.CreateStyle(doc, styleName); err != nil {
		return h.errorResult(HWPX_CREATE_STYLE, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_CREATE_STYLE, err), nil
	}
	return h.jsonResult(HWPX_CREATE_STYLE, map[string]any{
		"styleName": styleName,
		"created":   true,
		"dryRun":    dryRun,
	}), nil
}

func (h *Handlers) HandleListStyles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_LIST_STYLES, err), nil
	}
	styles := edit.ListStyles(doc)
	return h.jsonResult(HWPX_LIST_STYLES, map[string]any{
		"styles": styles,
		"total":  len(styles),
	}), nil
}
