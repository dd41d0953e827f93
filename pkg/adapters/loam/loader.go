package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/reel/internal/config"
	"github.com/aretw0/reel/pkg/domain"
)

// Loader adapts a Loam repository of preset documents to ports.PresetSource.
type Loader struct {
	Repo *loam.TypedRepository[PresetMetadata]
}

// New creates a new Loam preset loader.
func New(repo *loam.TypedRepository[PresetMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it in a Loader.
// Strict mode keeps numbers as json.Number across JSON and YAML documents.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath, loam.WithStrict(true), loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("open presets at %s: %w", dir, err)
	}
	return New(loam.NewTypedRepository[PresetMetadata](repo)), nil
}

// GetPreset loads the preset whose normalized ID is id.
// Documents are looked up by file name first, then by the id declared in their frontmatter.
func (l *Loader) GetPreset(ctx context.Context, id string) (*domain.Preset, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err == nil {
		return build(doc.ID, doc.Data, doc.Content)
	}

	docs, listErr := l.Repo.List(ctx)
	if listErr != nil {
		return nil, fmt.Errorf("loam list failed: %w", listErr)
	}
	for _, d := range docs {
		if presetID(d.ID, d.Data) == id {
			return build(d.ID, d.Data, d.Content)
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, id)
}

// ListPresets lists the normalized IDs of every preset, sorted.
// Two documents resolving to the same ID are reported as a collision.
func (l *Loader) ListPresets(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := presetID(doc.ID, doc.Data)
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func build(docID string, meta PresetMetadata, content string) (*domain.Preset, error) {
	id := presetID(docID, meta)

	opts, err := config.DecodeOptions(meta.Options)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", id, err)
	}

	notes := strings.TrimSpace(content)
	description := meta.Description
	if description == "" {
		description = notes
	}

	return &domain.Preset{
		ID:          id,
		Title:       meta.Title,
		Description: description,
		Tags:        append([]string(nil), meta.Tags...),
		Options:     opts,
		Notes:       notes,
	}, nil
}

func presetID(docID string, meta PresetMetadata) string {
	if meta.ID != "" {
		return trimExtension(meta.ID)
	}
	return trimExtension(docID)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
