package library

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrCopyFailed wraps every CopyFile failure.
var ErrCopyFailed = errors.New("copy failed")

// CopyFile copies src to dst, replacing dst if it exists, and carries over
// the source modification time. Creates the destination directory.
func CopyFile(src, dst string) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("%w: stat source: %v", ErrCopyFailed, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, fmt.Errorf("%w: create directory: %v", ErrCopyFailed, err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("%w: open source: %v", ErrCopyFailed, err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("%w: create destination: %v", ErrCopyFailed, err)
	}

	size, err := io.Copy(dstFile, srcFile)
	if err == nil {
		err = dstFile.Sync()
	}
	if cerr := dstFile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("%w: copy content: %v", ErrCopyFailed, err)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return size, fmt.Errorf("%w: preserve times: %v", ErrCopyFailed, err)
	}

	return size, nil
}

// exists reports whether path exists. Stat errors other than not-exist
// count as existing so callers never overwrite what they cannot inspect.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
