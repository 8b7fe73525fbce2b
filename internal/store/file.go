package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/config"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
)

// FileStore keeps layout sets in the config file itself. Writes go through
// the config editor for the file's format, so unrelated settings survive.
type FileStore struct {
	mu     sync.RWMutex
	editor config.Editor
	sets   map[string]grid.Layouts
	order  []string
}

// NewFileStore serves the layouts already loaded in cfg and writes changes
// back to path.
func NewFileStore(cfg *config.Config, path string) *FileStore {
	s := &FileStore{
		editor: config.NewEditor(path),
		sets:   make(map[string]grid.Layouts, len(cfg.Layouts)),
	}
	for _, name := range cfg.GetLayoutSetOrder() {
		s.sets[name] = cfg.Layouts[name].Clone()
		s.order = append(s.order, name)
	}
	return s
}

func (s *FileStore) Sets(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...), nil
}

func (s *FileStore) Load(ctx context.Context, set string) (grid.Layouts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ls, ok := s.sets[set]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, set)
	}
	return ls.Clone(), nil
}

func (s *FileStore) Save(ctx context.Context, set string, layouts grid.Layouts) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editor.SetLayouts(set, layouts); err != nil {
		return fmt.Errorf("saving layout set '%s': %w", set, err)
	}
	if _, ok := s.sets[set]; !ok {
		s.order = append(s.order, set)
	}
	s.sets[set] = layouts.Clone()
	return nil
}

func (s *FileStore) Delete(ctx context.Context, set string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sets[set]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, set)
	}
	if err := s.editor.DeleteLayoutSet(set); err != nil {
		return fmt.Errorf("deleting layout set '%s': %w", set, err)
	}
	delete(s.sets, set)
	for i, name := range s.order {
		if name == set {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
