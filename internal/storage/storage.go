// Package storage abstracts where documents live. The local backend reads
// and writes files under a base directory; the HTTP backend round-trips
// document bytes through a remote service.
package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"hwpx-mcp-go/internal/hwpx"
)

// DocumentStorage loads and saves whole documents by path.
type DocumentStorage interface {
	Load(ctx context.Context, path string) (*hwpx.Document, error)
	Save(ctx context.Context, doc *hwpx.Document, path string) error
}

// LocalConfig configures the filesystem backend.
type LocalConfig struct {
	// BaseDir anchors relative paths. Empty means the process working
	// directory.
	BaseDir string
	// Confine rejects paths that resolve outside BaseDir.
	Confine bool
	// AutoBackup copies an existing target to <path>.bak before each save.
	AutoBackup bool
}

// Local is the filesystem backend.
type Local struct {
	cfg LocalConfig
	log *slog.Logger
}

// NewLocal builds a filesystem backend. A nil logger is replaced by the
// default logger.
func NewLocal(cfg LocalConfig, log *slog.Logger) *Local {
	if log == nil {
		log = slog.Default()
	}
	return &Local{cfg: cfg, log: log}
}

// Resolve turns a request path into an absolute filesystem path, applying
// the base directory and the confinement policy.
func (l *Local) Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", hwpx.InvalidArgumentError("path must not be empty")
	}
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(l.cfg.BaseDir, resolved)
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", hwpx.InvalidArgumentError("invalid path %q: %v", path, err)
	}
	if l.cfg.Confine && l.cfg.BaseDir != "" {
		base, err := filepath.Abs(l.cfg.BaseDir)
		if err != nil {
			return "", hwpx.InvalidArgumentError("invalid base directory %q: %v", l.cfg.BaseDir, err)
		}
		rel, err := filepath.Rel(base, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", hwpx.PermissionError("path %q escapes the base directory", path)
		}
	}
	return abs, nil
}

func (l *Local) Load(ctx context.Context, path string) (*hwpx.Document, error) {
	abs, err := l.Resolve(path)
	if err != nil {
		return nil, err
	}
	doc, err := hwpx.Open(abs)
	if err != nil {
		return nil, err
	}
	l.log.Debug("document loaded", "path", abs)
	return doc, nil
}

func (l *Local) Save(ctx context.Context, doc *hwpx.Document, path string) error {
	abs, err := l.Resolve(path)
	if err != nil {
		return err
	}
	if l.cfg.AutoBackup {
		if err := l.backup(abs); err != nil {
			return err
		}
	}
	if err := doc.Save(abs); err != nil {
		return err
	}
	l.log.Debug("document saved", "path", abs)
	return nil
}

// backup copies the current target to <path>.bak. Missing targets are not
// an error; the first save of a new file has nothing to back up.
func (l *Local) backup(abs string) error {
	data, err := os.ReadFile(abs)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return hwpx.PermissionError("cannot read %q for backup: %v", abs, err)
	}
	backupPath := abs + ".bak"
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return hwpx.PermissionError("cannot write backup %q: %v", backupPath, err)
	}
	l.log.Debug("backup written", "path", backupPath)
	return nil
}
