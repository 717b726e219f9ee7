package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/yigit/unidesk/internal/pkg/logger"
)

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// LocalStore saves one JSON file per key inside a base directory.
type LocalStore struct {
	basePath string
}

// NewLocalStore creates the base directory if needed
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStore{basePath: basePath}, nil
}

func (ls *LocalStore) pathFor(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(ls.basePath, key+".json"), nil
}

// Get reads the document stored under key
func (ls *LocalStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := ls.pathFor(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Put writes the document to a temporary file and renames it over the old one so a
// crash never leaves a half-written blob behind.
func (ls *LocalStore) Put(_ context.Context, key string, data []byte) error {
	path, err := ls.pathFor(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(ls.basePath, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Delete removes the file; a missing file counts as deleted
func (ls *LocalStore) Delete(_ context.Context, key string) error {
	path, err := ls.pathFor(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error().Err(err).Str("path", path).Msg("Failed to delete blob file")
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// Close implements BlobStore
func (ls *LocalStore) Close() error { return nil }
