// Package file stores the latest timeline of every counter as a JSON file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/reel/pkg/domain"
)

// DefaultDir is used when no directory is configured.
var DefaultDir = filepath.Join(".reel", "timelines")

// Sink implements ports.TimelineSink on the local filesystem.
// Each counter gets one <id>.json file holding its latest timeline.
type Sink struct {
	BasePath string
}

// New creates a sink writing under basePath, or DefaultDir when it is empty.
func New(basePath string) *Sink {
	if basePath == "" {
		basePath = DefaultDir
	}
	return &Sink{BasePath: basePath}
}

func (s *Sink) path(counterID string) (string, error) {
	if counterID == "" {
		return "", errors.New("counter ID cannot be empty")
	}
	if strings.ContainsAny(counterID, `/\`) || counterID == "." || counterID == ".." {
		return "", fmt.Errorf("invalid counter ID %q", counterID)
	}
	return filepath.Join(s.BasePath, counterID+".json"), nil
}

// Publish writes the timeline atomically: temp file, fsync, rename.
func (s *Sink) Publish(ctx context.Context, timeline *domain.Timeline) error {
	destPath, err := s.path(timeline.CounterID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure timeline directory: %w", err)
	}

	data, err := json.MarshalIndent(timeline, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+timeline.CounterID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to replace timeline file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Latest reads the counter's timeline file.
func (s *Sink) Latest(ctx context.Context, counterID string) (*domain.Timeline, error) {
	path, err := s.path(counterID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTimelineNotFound, counterID)
		}
		return nil, fmt.Errorf("failed to read timeline file: %w", err)
	}

	var tl domain.Timeline
	if err := json.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timeline: %w", err)
	}
	return &tl, nil
}

// Delete removes the counter's timeline file. Missing files are not an error.
func (s *Sink) Delete(ctx context.Context, counterID string) error {
	path, err := s.path(counterID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete timeline file: %w", err)
	}
	return nil
}

// List returns the IDs of every stored timeline, sorted.
func (s *Sink) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list timelines: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
