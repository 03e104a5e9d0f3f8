package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/my-ijet/odysee-uploader/internal/models"
)

// Archiver moves a published item's artifacts out of the inbox. Vanishing
// from the inbox is what marks an item as done, so a commit is the item's
// destruction signal.
type Archiver struct {
	dir    string
	logger *zap.Logger
}

func NewArchiver(dir string, logger *zap.Logger) *Archiver {
	return &Archiver{dir: dir, logger: logger}
}

// Commit moves the item's video, thumbnail, and description into the archive
// directory. The three moves are not transactional: a crash in between can
// leave an item split across inbox and archive.
func (a *Archiver) Commit(item models.WorkItem) error {
	for _, src := range []string{item.VideoPath, item.ThumbnailPath, item.DescriptionPath} {
		dst := filepath.Join(a.dir, filepath.Base(src))
		if err := move(src, dst); err != nil {
			return fmt.Errorf("failed to archive %s: %w", src, err)
		}
	}
	a.logger.Info("item archived", zap.String("item", item.Base()), zap.String("dir", a.dir))
	return nil
}

// move renames src to dst, falling back to copy-and-delete when the archive
// lives on a different filesystem.
func move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if isCrossDevice(err) {
		return copyAndRemove(src, dst)
	}
	return err
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return false
	}
	return linkErr.Err == syscall.EXDEV
}

func copyAndRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}
