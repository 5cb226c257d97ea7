// Package storage loads world definitions from the filesystem.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mrazzaque/mystic-manor/pkg/worldspec"
)

// WorldStore reads world definition files from dataDir/worlds.
type WorldStore struct {
	dataDir string
	logger  *slog.Logger
}

// NewWorldStore creates a world store rooted at dataDir.
func NewWorldStore(dataDir string, logger *slog.Logger) *WorldStore {
	if dataDir == "" {
		dataDir = "./data"
	}
	return &WorldStore{
		dataDir: dataDir,
		logger:  logger,
	}
}

// ListWorlds maps world names to their filenames. Unreadable or
// malformed files are logged and skipped so one bad file does not hide
// the rest.
func (s *WorldStore) ListWorlds(ctx context.Context) (map[string]string, error) {
	worldsDir := filepath.Join(s.dataDir, "worlds")
	worlds := make(map[string]string)

	err := filepath.WalkDir(worldsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("Failed to read world file", "path", path, "error", err)
			return nil
		}

		var spec worldspec.Spec
		if err := json.Unmarshal(file, &spec); err != nil {
			s.logger.Warn("Failed to unmarshal world file", "path", path, "error", err)
			return nil
		}

		worlds[spec.Name] = filepath.Base(path)
		return nil
	})

	if err != nil {
		s.logger.Error("Failed to walk worlds directory", "error", err)
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}

	return worlds, nil
}

// GetWorld loads and validates one world definition by filename.
func (s *WorldStore) GetWorld(ctx context.Context, filename string) (*worldspec.Spec, error) {
	path := filepath.Join(s.dataDir, "worlds", filename)
	s.logger.Debug("Loading world", "filename", filename, "full_path", path)

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("world not found: %s", filename)
		}
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}

	var spec worldspec.Spec
	if err := json.Unmarshal(file, &spec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world: %w", err)
	}
	spec.FileName = filename

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world %s: %w", filename, err)
	}

	return &spec, nil
}
