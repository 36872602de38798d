package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"hwpx-mcp-go/internal/hwpx"
	"hwpx-mcp-go/internal/readmodel"
)

// Tool names for read-model exports
const (
	HWPX_GET_OUTLINE     = "hwpx_get_outline"
	HWPX_EXPORT_MARKDOWN = "hwpx_export_markdown"
	HWPX_EXPORT_HTML     = "hwpx_export_html"
	HWPX_EXPORT_JSON     = "hwpx_export_json"
	HWPX_CHUNK_TEXT      = "hwpx_chunk_text"
)

func (h *Handlers) buildModel(ctx context.Context, path string) (*readmodel.Model, error) {
	doc, err := h.load(ctx, path)
	if err != nil {
		return nil, err
	}
	return readmodel.Build(doc), nil
}

func (h *Handlers) HandleGetOutline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")

	model, err := h.buildModel(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_GET_OUTLINE, err), nil
	}
	return h.jsonResult(HWPX_GET_OUTLINE, map[string]any{
		"toc":   model.TOC,
		"total": len(model.TOC),
	}), nil
}

func (h *Handlers) HandleExportMarkdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")

	model, err := h.buildModel(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_EXPORT_MARKDOWN, err), nil
	}
	return CreateTextResult(model.Markdown()), nil
}

func (h *Handlers) HandleExportHTML(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")

	model, err := h.buildModel(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_EXPORT_HTML, err), nil
	}
	return CreateTextResult(model.HTML()), nil
}

func (h *Handlers) HandleExportJSON(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")

	model, err := h.buildModel(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_EXPORT_JSON, err), nil
	}
	out, err := model.JSON()
	if err != nil {
		return h.errorResult(HWPX_EXPORT_JSON, hwpx.ParseError("encode read model", err)), nil
	}
	return CreateTextResult(out), nil
}

func (h *Handlers) HandleChunkText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	mode := request.GetString("mode", "section")
	budget := request.GetInt("budget", 1000)

	model, err := h.buildModel(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_CHUNK_TEXT, err), nil
	}
	var chunks []readmodel.Chunk
	switch mode {
	case "section":
		chunks = model.ChunkBySection()
	case "budget":
		chunks = model.ChunkByBudget(budget)
	default:
		err := hwpx.InvalidArgumentError("unknown chunk mode %q, expected \"section\" or \"budget\"", mode)
		return h.errorResult(HWPX_CHUNK_TEXT, err), nil
	}
	return h.jsonResult(HWPX_CHUNK_TEXT, map[string]any{
		"mode":   mode,
		"chunks": chunks,
		"total":  len(chunks),
	}), nil
}
