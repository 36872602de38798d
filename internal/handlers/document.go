package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"hwpx-mcp-go/internal/hwpx"
)

// Tool names for document lifecycle operations
const (
	HWPX_CREATE          = "hwpx_create"
	HWPX_OPEN_INFO       = "hwpx_open_info"
	HWPX_SAVE_AS         = "hwpx_save_as"
	HWPX_READ_TEXT       = "hwpx_read_text"
	HWPX_GET_PARAGRAPHS  = "hwpx_get_paragraphs"
	HWPX_PACKAGE_GET_XML = "hwpx_package_get_xml"
	HWPX_PACKAGE_SET_XML = "hwpx_package_set_xml"
)

func (h *Handlers) HandleCreate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return CreateTextResult("Error: Path is required"), nil
	}

	doc, err := hwpx.NewBlank()
	if err != nil {
		return h.errorResult(HWPX_CREATE, err), nil
	}
	if err := h.storage.Save(ctx, doc, path); err != nil {
		return h.errorResult(HWPX_CREATE, err), nil
	}
	return h.jsonResult(HWPX_CREATE, map[string]any{
		"path":    path,
		"created": true,
	}), nil
}

func (h *Handlers) HandleOpenInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_OPEN_INFO, err), nil
	}

	paragraphs := doc.Paragraphs()
	charCount := 0
	for _, p := range paragraphs {
		charCount += len([]rune(p.Text()))
	}
	return h.jsonResult(HWPX_OPEN_INFO, map[string]any{
		"path":           path,
		"sectionCount":   len(doc.Sections()),
		"paragraphCount": len(paragraphs),
		"tableCount":     len(doc.Tables()),
		"charCount":      charCount,
		"partNames":      doc.Package().PartNames(),
	}), nil
}

func (h *Handlers) HandleSaveAs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	targetPath := request.GetString("target_path", "")
	if targetPath == "" {
		return CreateTextResult("Error: Target path is required"), nil
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_SAVE_AS, err), nil
	}
	if err := h.storage.Save(ctx, doc, targetPath); err != nil {
		return h.errorResult(HWPX_SAVE_AS, err), nil
	}
	return h.jsonResult(HWPX_SAVE_AS, map[string]any{
		"path":       path,
		"targetPath": targetPath,
		"saved":      true,
	}), nil
}

func (h *Handlers) HandleReadText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	offset := request.GetInt("offset", 0)
	limit := request.GetInt("limit", 0)

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_READ_TEXT, err), nil
	}

	paragraphs := doc.Paragraphs()
	total := len(paragraphs)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	var texts []string
	chars := 0
	truncated := false
	returned := 0
	for _, p := range paragraphs[offset:end] {
		text := p.Text()
		runeLen := len([]rune(text))
		if chars+runeLen > h.maxChars {
			truncated = true
			break
		}
		texts = append(texts, text)
		chars += runeLen
		returned++
	}
	return h.jsonResult(HWPX_READ_TEXT, map[string]any{
		"paragraphs":      texts,
		"offset":          offset,
		"returned":        returned,
		"totalParagraphs": total,
		"truncated":       truncated,
	}), nil
}

func (h *Handlers) HandleGetParagraphs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_GET_PARAGRAPHS, err), nil
	}

	type paraInfo struct {
		Index     int    `json:"index"`
		Text      string `json:"text"`
		RunCount  int    `json:"runCount"`
		HasTables bool   `json:"hasTables"`
	}
	paragraphs := doc.Paragraphs()
	infos := make([]paraInfo, 0, len(paragraphs))
	for i, p := range paragraphs {
		infos = append(infos, paraInfo{
			Index:     i,
			Text:      p.Text(),
			RunCount:  len(p.Runs()),
			HasTables: len(p.Tables()) > 0,
		})
	}
	return h.jsonResult(HWPX_GET_PARAGRAPHS, map[string]any{
		"paragraphs": infos,
		"total":      len(infos),
	}), nil
}

func (h *Handlers) HandlePackageGetXML(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	partName := request.GetString("part_name", "")
	if partName == "" {
		return CreateTextResult("Error: Part name is required"), nil
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_PACKAGE_GET_XML, err), nil
	}
	data, ok := doc.Package().Part(partName)
	if !ok {
		err := hwpx.NotFoundError(hwpx.CodeElementNotFound, "package part not found: %s", partName)
		return h.errorResult(HWPX_PACKAGE_GET_XML, err), nil
	}
	return CreateTextResult(string(data)), nil
}

func (h *Handlers) HandlePackageSetXML(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	partName := request.GetString("part_name", "")
	xmlContent := request.GetString("xml", "")
	dryRun := request.GetBool("dry_run", false)
	if partName == "" {
		return CreateTextResult("Error: Part name is required"), nil
	}
	if xmlContent == "" {
		return CreateTextResult("Error: XML content is required"), nil
	}

	doc, err := h.load(ctx, path)
	if err != nil {
		return h.errorResult(HWPX_PACKAGE_SET_XML, err), nil
	}
	if err := doc.SetPartXML(partName, xmlContent); err != nil {
		return h.errorResult(HWPX_PACKAGE_SET_XML, err), nil
	}
	if err := h.saveUnlessDryRun(ctx, doc, path, dryRun); err != nil {
		return h.errorResult(HWPX_PACKAGE_SET_XML, err), nil
	}
	return h.jsonResult(HWPX_PACKAGE_SET_XML, map[string]any{
		"partName": partName,
		"updated":  true,
		"dryRun":   dryRun,
	}), nil
}
