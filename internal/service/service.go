// Package service wires resolution, the builder registry and persistence
// together and exposes the operations the CLI, TUI and HTTP API consume.
package service

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/seoku/promptforge/internal/builder"
	"github.com/seoku/promptforge/internal/fetch"
	"github.com/seoku/promptforge/internal/guideline"
	"github.com/seoku/promptforge/internal/models"
	"github.com/seoku/promptforge/internal/storage"
	"github.com/sahilm/fuzzy"
)

// Service owns the published guideline document and the builder registry.
// Both are replaced wholesale under one mutex, never patched in place, so a
// reader always observes a document and a registry built from it together.
type Service struct {
	store     *storage.Store
	resolver  *guideline.Resolver
	scheduler *guideline.Scheduler
	registry  *builder.Registry

	mu       sync.RWMutex
	doc      *models.GuidelineDocument
	onUpdate func(*models.GuidelineDocument)
}

// New creates a service using the default storage location. Override the
// directory with PROMPTFORGE_DIR.
func New() (*Service, error) {
	store, err := storage.NewStore(os.Getenv("PROMPTFORGE_DIR"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return NewWithStore(store, fetch.NewClient(0)), nil
}

// NewWithStore creates a service over an explicit store and fetcher.
func NewWithStore(store *storage.Store, fetcher guideline.Fetcher) *Service {
	resolver := guideline.NewResolver(store, fetcher)
	return &Service{
		store:     store,
		resolver:  resolver,
		scheduler: guideline.NewScheduler(resolver),
		registry:  builder.NewRegistry(),
	}
}

// Refresh resolves a fresh guideline document and publishes it. On failure
// the previously published document, if any, stays in effect.
func (s *Service) Refresh(ctx context.Context) (*models.GuidelineDocument, error) {
	doc, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	s.publish(doc)
	return doc, nil
}

// publish swaps in the new document and rebuilds the registry atomically
// with respect to readers, then notifies the update listener.
func (s *Service) publish(doc *models.GuidelineDocument) {
	s.mu.Lock()
	s.doc = doc
	s.registry.Install(doc)
	notify := s.onUpdate
	s.mu.Unlock()

	if notify != nil {
		notify(doc)
	}
}

// OnUpdate registers a callback invoked after every successful publish,
// manual or scheduled.
func (s *Service) OnUpdate(fn func(*models.GuidelineDocument)) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

// Document returns the currently published guideline document, or an error
// when nothing has been resolved yet.
func (s *Service) Document() (*models.GuidelineDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, models.ErrNoGuideline
	}
	return s.doc, nil
}

// Models lists the models of the published document, in document order.
func (s *Service) Models() []models.ModelRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil
	}
	return s.doc.Models
}

// Build compiles input text into a prompt for the given model. An unknown
// model id yields models.ErrModelUnavailable, never a panic.
func (s *Service) Build(modelID, engine, input string, opts models.BuildOptions) (models.BuildResult, error) {
	b, ok := s.registry.Get(modelID)
	if !ok {
		return models.BuildResult{}, fmt.Errorf("model %q: %w", modelID, models.ErrModelUnavailable)
	}
	return b.Build(input, engine, opts), nil
}

// SearchModels fuzzy-matches the query against model ids and display names.
// An empty query returns every model.
func (s *Service) SearchModels(query string) []models.ModelRecord {
	all := s.Models()
	if query == "" {
		return all
	}

	targets := make([]string, len(all))
	for i, m := range all {
		targets[i] = m.ID + " " + m.Name
	}

	matches := fuzzy.Find(query, targets)
	results := make([]models.ModelRecord, 0, len(matches))
	for _, match := range matches {
		results = append(results, all[match.Index])
	}
	return results
}

// SetSourceURL persists the guideline source URL. An empty URL reverts to
// the bundled document on the next refresh.
func (s *Service) SetSourceURL(url string) error {
	settings, err := s.store.Settings()
	if err != nil {
		return err
	}
	settings.SourceURL = url
	return s.store.SaveSettings(settings)
}

// SetRefreshMinutes persists the refresh interval.
func (s *Service) SetRefreshMinutes(minutes int) error {
	settings, err := s.store.Settings()
	if err != nil {
		return err
	}
	settings.RefreshMinutes = minutes
	return s.store.SaveSettings(settings)
}

// Settings exposes the persisted settings for display.
func (s *Service) Settings() (storage.Settings, error) {
	return s.store.Settings()
}

// StartAutoRefresh schedules periodic re-resolution at the configured
// interval. Each successful tick republishes the document, which also fires
// the OnUpdate callback.
func (s *Service) StartAutoRefresh() {
	s.scheduler.Schedule(s.store.RefreshMinutes(), s.publish)
}

// StopAutoRefresh cancels the periodic refresh timer.
func (s *Service) StopAutoRefresh() {
	s.scheduler.Stop()
}
