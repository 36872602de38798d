package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"hwpx-mcp-go/internal/handlers"
	"hwpx-mcp-go/internal/storage"
)

const version = "1.0.0"

type options struct {
	transport     string
	host          string
	port          int
	storageKind   string
	baseDir       string
	confine       bool
	autoBackup    bool
	httpBaseURL   string
	httpTimeout   time.Duration
	httpAuthToken string
	httpHeaders   []string
	logLevel      string
	maxChars      int
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "hwpx-mcp-go",
		Short:   "MCP server for editing HWPX documents",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.transport, "transport", envOr("HWPX_MCP_TRANSPORT", "stdio"), "transport: stdio or streamable-http")
	flags.StringVar(&opts.host, "host", envOr("HWPX_MCP_HOST", "127.0.0.1"), "bind host for the streamable-http transport")
	flags.IntVar(&opts.port, "port", envOrInt("HWPX_MCP_PORT", 8723), "bind port for the streamable-http transport")
	flags.StringVar(&opts.storageKind, "storage", envOr("HWPX_MCP_STORAGE", "local"), "storage backend: local or http")
	flags.StringVar(&opts.baseDir, "base-dir", envOr("HWPX_MCP_BASE_DIR", ""), "base directory for relative document paths")
	flags.BoolVar(&opts.confine, "confine", envOrBool("HWPX_MCP_CONFINE", false), "reject paths outside the base directory")
	flags.BoolVar(&opts.autoBackup, "auto-backup", envOrBool("HWPX_MCP_AUTO_BACKUP", false), "write a .bak copy before each save")
	flags.StringVar(&opts.httpBaseURL, "http-base-url", envOr("HWPX_MCP_HTTP_BASE_URL", ""), "base URL of the http storage service")
	flags.DurationVar(&opts.httpTimeout, "http-timeout", envOrDuration("HWPX_MCP_HTTP_TIMEOUT", 30*time.Second), "request timeout for the http storage service")
	flags.StringVar(&opts.httpAuthToken, "http-auth-token", envOr("HWPX_MCP_HTTP_AUTH_TOKEN", ""), "bearer token for the http storage service")
	flags.StringArrayVar(&opts.httpHeaders, "http-header", nil, "extra header for the http storage service, as Name=Value (repeatable)")
	flags.StringVar(&opts.logLevel, "log-level", envOr("LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	flags.IntVar(&opts.maxChars, "max-chars", envOrInt("HWPX_MCP_MAX_CHARS", handlers.DefaultMaxChars), "character cap per hwpx_read_text call")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	log := newLogger(opts.logLevel)
	slog.SetDefault(log)

	store, err := newStorage(opts, log)
	if err != nil {
		return err
	}
	h := handlers.New(store, log, opts.maxChars)
	mcpServer := newMCPServer(h)

	switch opts.transport {
	case "stdio":
		log.Info("serving", "transport", "stdio", "storage", opts.storageKind)
		return server.ServeStdio(mcpServer)
	case "streamable-http":
		addr := fmt.Sprintf("%s:%d", opts.host, opts.port)
		log.Info("serving", "transport", "streamable-http", "addr", addr, "storage", opts.storageKind)
		httpServer := server.NewStreamableHTTPServer(mcpServer)
		return httpServer.Start(addr)
	default:
		return fmt.Errorf("unknown transport %q, expected stdio or streamable-http", opts.transport)
	}
}

// newLogger emits structured JSON on stderr so stdout stays reserved for
// the stdio transport.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newStorage(opts *options, log *slog.Logger) (storage.DocumentStorage, error) {
	switch opts.storageKind {
	case "local":
		return storage.NewLocal(storage.LocalConfig{
			BaseDir:    opts.baseDir,
			Confine:    opts.confine,
			AutoBackup: opts.autoBackup,
		}, log), nil
	case "http":
		headers := make(map[string]string, len(opts.httpHeaders))
		for _, entry := range opts.httpHeaders {
			name, value, ok := strings.Cut(entry, "=")
			if !ok {
				return nil, fmt.Errorf("invalid --http-header %q, expected Name=Value", entry)
			}
			headers[strings.TrimSpace(name)] = value
		}
		return storage.NewHTTP(storage.HTTPConfig{
			BaseURL:   opts.httpBaseURL,
			Timeout:   opts.httpTimeout,
			AuthToken: opts.httpAuthToken,
			Headers:   headers,
		}, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q, expected local or http", opts.storageKind)
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envOrInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envOrBool(name string, fallback bool) bool {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envOrDuration(name string, fallback time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
