package quotecard

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-quotecard/internal/assets"
	"github.com/alnah/go-quotecard/internal/fileutil"
)

// Downloader hands a finished artifact to the user under a fixed name.
type Downloader interface {
	Deliver(ctx context.Context, name string, data []byte) error
}

// DownloaderFunc adapts a function to Downloader.
type DownloaderFunc func(ctx context.Context, name string, data []byte) error

// Deliver calls f.
func (f DownloaderFunc) Deliver(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}

// DirDownloader writes artifacts into a directory, replacing any previous
// file of the same name atomically.
type DirDownloader struct {
	Dir string // Empty = current directory
}

// Deliver writes data to {Dir}/{name}. Errors wrap ErrDeliver.
func (d DirDownloader) Deliver(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliver, err)
	}
	if err := assets.ValidateFileName(name); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliver, err)
	}

	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliver, err)
	}
	return nil
}

// Path returns where name would be written.
func (d DirDownloader) Path(name string) string {
	if d.Dir == "" {
		return name
	}
	return filepath.Join(d.Dir, name)
}

// discardDownloader drops artifacts. Used when no downloader is configured
// so exports still run and report.
type discardDownloader struct{}

func (discardDownloader) Deliver(context.Context, string, []byte) error { return nil }

// Compile-time interface checks.
var (
	_ Downloader = DirDownloader{}
	_ Downloader = DownloaderFunc(nil)
	_ Downloader = discardDownloader{}
)
