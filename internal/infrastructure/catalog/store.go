package catalog

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/usecase"
)

// Store owns the current catalog bundle. Refresh rebuilds the snapshot
// and all three text indexes from the source and publishes them with a
// single atomic pointer swap, so a ranking call never observes a catalog
// row without its matching vectors. In-flight calls keep the bundle they
// started with.
type Store struct {
	source domain.ProductSource
	bundle atomic.Pointer[usecase.CatalogBundle]
}

// NewStore creates a store over the given product source. Call Refresh
// before serving; Current returns nil until the first refresh succeeds.
func NewStore(source domain.ProductSource) *Store {
	return &Store{source: source}
}

// Current returns the bundle published by the latest successful refresh.
func (s *Store) Current() *usecase.CatalogBundle {
	return s.bundle.Load()
}

// Refresh loads the catalog wholesale, preprocesses tags, rebuilds the
// bundle, and swaps it in. On failure the previous bundle stays
// published.
func (s *Store) Refresh(ctx context.Context) error {
	products, err := s.source.LoadProducts(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	bundle := usecase.BuildCatalogBundle(preprocess(products))
	s.bundle.Store(bundle)
	log.Printf("catalog refreshed: %d products", bundle.Snapshot.Len())
	return nil
}

// Watch refreshes the store whenever the catalog file changes. It blocks
// until the context is cancelled; run it in its own goroutine. Refresh
// failures are logged and the watch continues.
func (s *Store) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and atomic writers replace the file,
	// which drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch catalog dir: %w", err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Refresh(ctx); err != nil {
				log.Printf("catalog watch refresh failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("catalog watcher error: %v", err)
		}
	}
}
