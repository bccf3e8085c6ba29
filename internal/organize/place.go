package organize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/statement-sorter/internal/common"
	"github.com/Veraticus/statement-sorter/internal/model"
)

// Mode selects between previewing and performing moves.
type Mode struct {
	DryRun bool
	Force  bool
}

// Placer moves classified statements into place according to the
// collision policy.
type Placer struct {
	mode Mode
}

// NewPlacer creates a placer with the given mode.
func NewPlacer(mode Mode) *Placer {
	return &Placer{mode: mode}
}

// Place moves src to its destination. In dry-run mode nothing touches
// the filesystem and the outcome is a preview. Otherwise missing
// destination directories are created, an occupied destination is
// skipped unless force is set, and a failed move always leaves the
// source file where it was.
func (p *Placer) Place(src string, dest model.Destination) model.Outcome {
	target := dest.Path()
	out := model.Outcome{File: src, Destination: target}

	if p.mode.DryRun {
		out.Status = model.StatusRenamed
		out.Reason = "dry run"
		return out
	}

	if err := os.MkdirAll(dest.Dir, 0o755); err != nil {
		out.Status = model.StatusFailed
		out.Reason = fmt.Sprintf("failed to create directory %s: %v", dest.Dir, err)
		return out
	}

	if _, err := os.Lstat(target); err == nil {
		if !p.mode.Force {
			out.Status = model.StatusSkipped
			out.Reason = common.ErrCollision.Error()
			return out
		}
		if err := os.Remove(target); err != nil {
			out.Status = model.StatusFailed
			out.Reason = fmt.Sprintf("failed to remove existing file: %v", err)
			return out
		}
	}

	if err := moveFile(src, target); err != nil {
		out.Status = model.StatusFailed
		out.Reason = err.Error()
		return out
	}

	out.Status = model.StatusRenamed
	return out
}

// moveFile renames src to dst, falling back to a copy through a
// temporary file when the rename fails across filesystems. The source
// is removed only after the destination has been fully written, so a
// failure at any point leaves src intact.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return fmt.Errorf("failed to move file: %w", err)
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("copied to %s but failed to remove source: %w", dst, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".stmt-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to copy file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to flush copy: %w", err)
	}
	if err := os.Chmod(tmp.Name(), info.Mode()); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
