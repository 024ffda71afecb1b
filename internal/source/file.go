package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrOutsideBaseDir = errors.New("source path escapes base directory")

// FileFetcher reads question documents from disk. When baseDir is set every
// locator must be a relative path that stays inside it.
type FileFetcher struct {
	baseDir string
}

func NewFileFetcher(baseDir string) *FileFetcher {
	return &FileFetcher{baseDir: baseDir}
}

func (f *FileFetcher) Fetch(_ context.Context, locator string) ([]any, error) {
	path, err := f.resolve(strings.TrimPrefix(locator, "file://"))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return DecodeRecords(data, FormatFor(path, ""))
}

func (f *FileFetcher) resolve(path string) (string, error) {
	if f.baseDir == "" {
		return path, nil
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %s is absolute", ErrOutsideBaseDir, path)
	}

	joined := filepath.Join(f.baseDir, path)
	rel, err := filepath.Rel(f.baseDir, joined)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutsideBaseDir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideBaseDir, path)
	}
	return joined, nil
}
