package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/use-agent/reviewui/models"
)

// Downloader saves a blob under a suggested file name.
type Downloader interface {
	Download(ctx context.Context, filename string, blob *models.Blob) error
}

// DownloadFunc adapts a function to the Downloader interface.
type DownloadFunc func(ctx context.Context, filename string, blob *models.Blob) error

// Download calls f.
func (f DownloadFunc) Download(ctx context.Context, filename string, blob *models.Blob) error {
	return f(ctx, filename, blob)
}

// DirDownloader writes downloads into a directory. Each file is written to a
// temporary name first and renamed into place once complete.
type DirDownloader struct {
	Dir string
}

// Download writes blob to Dir/filename.
func (d DirDownloader) Download(ctx context.Context, filename string, blob *models.Blob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("download: invalid file name %q", filename)
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("download: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(d.Dir, "."+name+".*.part")
	if err != nil {
		return fmt.Errorf("download: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob.Data); err != nil {
		tmp.Close()
		return fmt.Errorf("download: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("download: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(d.Dir, name)); err != nil {
		return fmt.Errorf("download: rename: %w", err)
	}
	return nil
}

// Path returns where Download stores filename.
func (d DirDownloader) Path(filename string) string {
	return filepath.Join(d.Dir, filepath.Base(filename))
}

// Anchor is a hidden download link created for one export.
type Anchor struct {
	Href     string // object URL from a BlobStore
	Download string // suggested file name
}

// Click resolves the anchor's object URL and hands the blob to dl.
func (a Anchor) Click(ctx context.Context, store *BlobStore, dl Downloader) error {
	blob, ok := store.Resolve(a.Href)
	if !ok {
		return fmt.Errorf("download: object URL %s was revoked", a.Href)
	}
	if dl == nil {
		return fmt.Errorf("download: no downloader configured")
	}
	return dl.Download(ctx, a.Download, blob)
}
