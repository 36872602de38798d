package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"hwpx-mcp-go/internal/edit"
)

// Tool names for paragraph and annotation operations
const (
	HWPX_ADD_HEADING      = "hwpx_add_heading"
	HWPX_ADD_PARAGRAPH    = "hwpx_add_paragraph"
	HWPX_INSERT_PARAGRAPH = "hwpx_insert_paragraph"
	HWPX_DELETE_PARAGRAPH = "hwpx_delete_paragraph"
	HWPX_ADD_PAGE_BREAK   = "hwpx_add_page_break"
	HWPX_ADD_MEMO         = "hwpx_add_memo"
	HWPX_REMOVE_MEMO      = "hwpx_remove_memo"
)

func (h *Handlers) HandleAddHeading(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	text := request.GetString("text", "")
	level := request.GetInt("level", 1)
	dryRun := request.GetBool("dry_run", false)
	if text == "" {
		return CreateTextResult("Error: Heading text is required"), nil
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_ADD_HEADING, err), nil
	}
	index := edit.AddHeading(doc, text, level)
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_ADD_HEADING, err), nil
	}
	return h.jsonResult(HWPX_ADD_HEADING, map[string]any{
		"paragraphIndex": index,
		"dryRun":         dryRun,
	}), nil
}

func (h *Handlers) HandleAddParagraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	text := request.GetString("text", "")
	style := request.GetString("style", "")
	dryRun := request.GetBool("dry_run", false)

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_ADD_PARAGRAPH, err), nil
	}
	index := edit.AddParagraph(doc, text, style)
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_ADD_PARAGRAPH, err), nil
	}
	return h.jsonResult(HWPX_ADD_PARAGRAPH, map[string]any{
		"paragraphIndex": index,
		"dryRun":         dryRun,
	}), nil
}

func (h *Handlers) HandleInsertParagraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	index := request.GetInt("index", 0)
	text := request.GetString("text", "")
	style := request.GetString("style", "")
	dryRun := request.GetBool("dry_run", false)

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_INSERT_PARAGRAPH, err), nil
	}
	insertedAt, err := edit.InsertParagraph(doc, index, text, style)
	if err != nil {
		return h.errorResult(HWPX_INSERT_PARAGRAPH, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_INSERT_PARAGRAPH, err), nil
	}
	return h.jsonResult(HWPX_INSERT_PARAGRAPH, map[string]any{
		"paragraphIndex": insertedAt,
		"dryRun":         dryRun,
	}), nil
}

func (h *Handlers) HandleDeleteParagraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	index := request.GetInt("index", 0)
	dryRun := request.GetBool("dry_run", false)

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_DELETE_PARAGRAPH, err), nil
	}
	remaining, err := edit.DeleteParagraph(doc, index)
	if err != nil {
		return h.errorResult(HWPX_DELETE_PARAGRAPH, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_DELETE_PARAGRAPH, err), nil
	}
	return h.jsonResult(HWPX_DELETE_PARAGRAPH, map[string]any{
		"remainingParagraphs": remaining,
		"dryRun":              dryRun,
	}), nil
}

func (h *Handlers) HandleAddPageBreak(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	dryRun := request.GetBool("dry_run", false)

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_ADD_PAGE_BREAK, err), nil
	}
	index := edit.AddPageBreak(doc)
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_ADD_PAGE_BREAK, err), nil
	}
	return h.jsonResult(HWPX_ADD_PAGE_BREAK, map[string]any{
		"paragraphIndex": index,
		"dryRun":         dryRun,
	}), nil
}

func (h *Handlers) HandleAddMemo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	paragraphIndex := request.GetInt("paragraph_index", 0)
	text := request.GetString("text", "")
	dryRun := request.GetBool("dry_run", false)
	if text == "" {
		return CreateTextResult("Error: Memo text is required"), nil
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_ADD_MEMO, err), nil
	}
	memoID, err := edit.AddMemo(doc, paragraphIndex, text)
	if err != nil {
		return h.errorResult(HWPX_ADD_MEMO, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_ADD_MEMO, err), nil
	}
	return h.jsonResult(HWPX_ADD_MEMO, map[string]any{
		"memoId": memoID,
		"dryRun": dryRun,
	}), nil
}

func (h *Handlers) HandleRemoveMemo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	paragraphIndex := request.GetInt("paragraph_index", 0)
	dryRun := request.GetBool("dry_run", false)

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_REMOVE_MEMO, err), nil
	}
	removed, err := edit.RemoveMemo(doc, paragraphIndex)
	if err != nil {
		return h.errorResult(HWPX_REMOVE_MEMO, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_REMOVE_MEMO, err), nil
	}
	return h.jsonResult(HWPX_REMOVE_MEMO, map[string]any{
		"removedCount": removed,
		"dryRun":       dryRun,
	}), nil
}
