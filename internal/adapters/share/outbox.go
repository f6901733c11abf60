package share

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/ports"
)

// Outbox is the share target of a headless host: shared files are copied
// into a directory that another tool picks up.
type Outbox struct {
	dir      string
	platform string
	logger   *slog.Logger
}

var _ ports.ShareSheet = (*Outbox)(nil)

// NewOutbox creates an outbox in dir for the given platform.
func NewOutbox(dir, platform string, logger *slog.Logger) (*Outbox, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create outbox: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Outbox{
		dir:      dir,
		platform: strings.ToLower(platform),
		logger:   logger.With(slog.String("component", "share.Outbox")),
	}, nil
}

// Share implements ports.ShareSheet.
func (o *Outbox) Share(ctx context.Context, path string) error {
	if o.platform == "web" {
		return domain.NewUnsupportedError("share", o.platform)
	}

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open shared file: %w", err)
	}
	defer src.Close()

	target := filepath.Join(o.dir, filepath.Base(path))

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create outbox file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy to outbox: %w", err)
	}

	if err := dst.Close(); err != nil {
		return fmt.Errorf("close outbox file: %w", err)
	}

	o.logger.InfoContext(ctx, "file shared", slog.String("path", target))

	return nil
}
