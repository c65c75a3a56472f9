package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"
)

// WriteZip packs the artifact files into a zip archive on w.
func WriteZip(ctx context.Context, w io.Writer, artifact Artifact) error {
	zw := zip.NewWriter(w)
	for _, file := range artifact.Files {
		if err := ctx.Err(); err != nil {
			return Wrap(artifact.Mode, err)
		}
		method := zip.Deflate
		if file.Stored {
			method = zip.Store
		}
		entry, err := zw.CreateHeader(&zip.FileHeader{Name: file.Name, Method: method})
		if err != nil {
			return Wrap(artifact.Mode, fmt.Errorf("create %s: %w", file.Name, err))
		}
		if err := file.Write(ctx, entry); err != nil {
			return Wrap(artifact.Mode, fmt.Errorf("write %s: %w", file.Name, err))
		}
	}
	if err := zw.Close(); err != nil {
		return Wrap(artifact.Mode, fmt.Errorf("close archive: %w", err))
	}
	return nil
}

// WriteDir writes the artifact files into dir. The bundle is staged next to
// dir and swapped in whole, so dir holds either the previous bundle or the
// new one, never a mix.
func WriteDir(ctx context.Context, dir string, artifact Artifact) error {
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return Wrap(artifact.Mode, err)
	}
	stage, err := os.MkdirTemp(parent, ".vidquiz-stage-*")
	if err != nil {
		return Wrap(artifact.Mode, fmt.Errorf("create staging dir: %w", err))
	}
	defer os.RemoveAll(stage)
	if err := os.Chmod(stage, 0o755); err != nil {
		return Wrap(artifact.Mode, err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, file := range artifact.Files {
		group.Go(func() error {
			return writeStaged(groupCtx, filepath.Join(stage, file.Name), file)
		})
	}
	if err := group.Wait(); err != nil {
		return Wrap(artifact.Mode, err)
	}
	if err := swapDir(stage, dir); err != nil {
		return Wrap(artifact.Mode, err)
	}
	return nil
}

// swapDir replaces dir with stage. An existing dir is moved aside first and
// restored when the swap fails.
func swapDir(stage, dir string) error {
	if _, err := os.Lstat(dir); errors.Is(err, os.ErrNotExist) {
		if err := os.Rename(stage, dir); err != nil {
			return fmt.Errorf("move bundle into place: %w", err)
		}
		return nil
	}
	previous := stage + ".previous"
	if err := os.Rename(dir, previous); err != nil {
		return fmt.Errorf("move previous bundle aside: %w", err)
	}
	if err := renameDir(stage, dir); err != nil {
		if restoreErr := os.Rename(previous, dir); restoreErr != nil {
			return errors.Join(fmt.Errorf("move bundle into place: %w", err), fmt.Errorf("restore previous bundle: %w", restoreErr))
		}
		return fmt.Errorf("move bundle into place: %w", err)
	}
	return os.RemoveAll(previous)
}

// Save writes the artifact to path: the HTML file, the zip archive, or the
// bundle directory. Nothing is left at path when writing fails.
func Save(ctx context.Context, path string, artifact Artifact) error {
	switch artifact.Mode {
	case ModeDir:
		return WriteDir(ctx, path, artifact)
	case ModeZip:
		return writeAtomic(path, artifact.Mode, func(w io.Writer) error {
			return WriteZip(ctx, w, artifact)
		})
	case ModeHTML:
		if len(artifact.Files) != 1 {
			return Wrap(artifact.Mode, fmt.Errorf("html artifact must hold one file, got %d", len(artifact.Files)))
		}
		return writeAtomic(path, artifact.Mode, func(w io.Writer) error {
			return artifact.Files[0].Write(ctx, w)
		})
	default:
		return Wrap(artifact.Mode, fmt.Errorf("unknown mode %q", artifact.Mode))
	}
}

// DefaultName is the file or directory name used when the output is a
// directory.
func DefaultName(mode Mode) string {
	switch mode {
	case ModeZip:
		return ArchiveName
	case ModeDir:
		return BundleDirName
	default:
		return InlineFileName
	}
}

// renameDir is os.Rename; tests replace it to fail the final swap.
var renameDir = os.Rename

func writeStaged(ctx context.Context, path string, file File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", file.Name, err)
	}
	if err := file.Write(ctx, out); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", file.Name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", file.Name, err)
	}
	return nil
}

func writeAtomic(path string, mode Mode, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Wrap(mode, err)
	}
	tmp, err := os.CreateTemp(dir, ".vidquiz-*.partial")
	if err != nil {
		return Wrap(mode, fmt.Errorf("create temp file: %w", err))
	}
	tmpName := tmp.Name()
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return Wrap(mode, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return Wrap(mode, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return Wrap(mode, fmt.Errorf("move artifact into place: %w", err))
	}
	return nil
}
