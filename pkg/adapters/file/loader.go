package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/aretw0/parley/pkg/codec"
	"github.com/aretw0/parley/pkg/domain"
)

// Loader implements ports.TreeLoader over a directory of .json/.yaml/.yml trees.
// Files are decoded lazily and cached by modification time.
type Loader struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	tree    *domain.Tree
	modTime int64
}

// NewLoader creates a loader over dir. Invalid files are logged and skipped.
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		dir:    dir,
		logger: logger,
		cache:  make(map[string]cached),
	}
}

// Dir returns the directory being served.
func (l *Loader) Dir() string { return l.dir }

// scan decodes every tree file in the directory, keyed by tree id.
func (l *Loader) scan() (map[string]*domain.Tree, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read trees directory: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	trees := make(map[string]*domain.Tree)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(l.dir, entry.Name())
		if _, err := codec.FormatOf(path); err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		c, ok := l.cache[path]
		if !ok || c.modTime != info.ModTime().UnixNano() {
			tree, err := codec.LoadFile(path)
			if err != nil {
				l.logger.Warn("skipping invalid tree file", "path", path, "err", err)
				continue
			}
			c = cached{tree: tree, modTime: info.ModTime().UnixNano()}
			l.cache[path] = c
		}

		if prev, dup := trees[c.tree.ID]; dup && prev != c.tree {
			l.logger.Warn("duplicate tree id", "tree", c.tree.ID, "path", path)
			continue
		}
		trees[c.tree.ID] = c.tree
	}
	return trees, nil
}

// GetTree returns the tree whose id matches treeID.
func (l *Loader) GetTree(ctx context.Context, treeID string) (*domain.Tree, error) {
	trees, err := l.scan()
	if err != nil {
		return nil, err
	}
	tree, ok := trees[treeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTreeNotFound, treeID)
	}
	return tree, nil
}

// ListTrees returns the ids of all valid tree files, sorted.
func (l *Loader) ListTrees(ctx context.Context) ([]string, error) {
	trees, err := l.scan()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(trees))
	for id := range trees {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
