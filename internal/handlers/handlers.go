// Package handlers implements the MCP tool surface. Every handler is
// stateless: it loads the document from storage, applies the operation,
// and saves the result unless the call is a dry run.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"hwpx-mcp-go/internal/hwpx"
	"hwpx-mcp-go/internal/storage"
)

// DefaultMaxChars caps hwpx_read_text output per call.
const DefaultMaxChars = 50000

// Handlers carries the shared dependencies of every tool handler.
type Handlers struct {
	storage  storage.DocumentStorage
	log      *slog.Logger
	maxChars int
}

// New builds the handler set. A nil logger falls back to the default
// logger; maxChars zero or negative falls back to DefaultMaxChars.
func New(store storage.DocumentStorage, log *slog.Logger, maxChars int) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Handlers{storage: store, log: log, maxChars: maxChars}
}

// CreateTextResult wraps plain text in a tool result.
func CreateTextResult(text string) *mcp.CallToolResult {
	return mcp.NewToolResultText(text)
}

func (h *Handlers) errorResult(tool string, err error) *mcp.CallToolResult {
	h.log.Error("tool failed", "tool", tool, "code", hwpx.ErrorCode(err), "error", err)
	return CreateTextResult(fmt.Sprintf("Error [%s]: %v", hwpx.ErrorCode(err), err))
}

func (h *Handlers) jsonResult(tool string, payload any) *mcp.CallToolResult {
	data, err := json.Marshal(payload)
	if err != nil {
		return h.errorResult(tool, hwpx.ParseError("encode result", err))
	}
	return CreateTextResult(string(data))
}

func (h *Handlers) load(ctx context.Context, path string) (*hwpx.Document, error) {
	if path == "" {
		return nil, hwpx.InvalidArgumentError("path is required")
	}
	return h.storage.Load(ctx, path)
}

// saveUnlessDryRun persists the mutated document back to its path. Dry
// runs report the would-be effect and leave the stored document alone.
func (h *Handlers) saveUnlessDryRun(ctx context.Context, doc *hwpx.Document, path string, dryRun bool) error {
	if dryRun {
		return nil
	}
	return h.storage.Save(ctx, doc, path)
}
