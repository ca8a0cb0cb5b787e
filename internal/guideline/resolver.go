// Package guideline resolves the active guideline document and keeps it
// fresh. Resolution tries an ordered list of strategies — remote URL, bundled
// default, cached copy — and fails only when every path is exhausted.
package guideline

import (
	"context"
	"fmt"
	"os"

	"github.com/seoku/promptforge/internal/fetch"
	"github.com/seoku/promptforge/internal/models"
	"github.com/seoku/promptforge/internal/storage"
)

// Fetcher retrieves a guideline document from a URL.
type Fetcher interface {
	Guideline(ctx context.Context, url string) (*models.GuidelineDocument, []byte, error)
}

// Resolver obtains guideline documents with graceful degradation.
type Resolver struct {
	store   *storage.Store
	fetcher Fetcher
}

// NewResolver creates a resolver backed by the given store and fetcher.
func NewResolver(store *storage.Store, fetcher Fetcher) *Resolver {
	return &Resolver{store: store, fetcher: fetcher}
}

// strategy is one resolution path. attempt returns the parsed document plus
// the raw text to persist; persist is false for the cache path, which must
// never write back what it just read.
type strategy struct {
	source  models.Source
	persist bool
	attempt func(ctx context.Context) (*models.GuidelineDocument, []byte, error)
}

// strategies returns the resolution paths in strict priority order. A
// configured source URL selects the remote path, otherwise the bundled
// document is used; the cache is only ever a fallback.
func (r *Resolver) strategies() []strategy {
	var list []strategy

	if url := r.store.SourceURL(); url != "" {
		list = append(list, strategy{
			source:  models.SourceRemote,
			persist: true,
			attempt: func(ctx context.Context) (*models.GuidelineDocument, []byte, error) {
				return r.fetcher.Guideline(ctx, url)
			},
		})
	} else {
		list = append(list, strategy{
			source:  models.SourceLocal,
			persist: true,
			attempt: func(ctx context.Context) (*models.GuidelineDocument, []byte, error) {
				doc, err := fetch.Parse([]byte(bundledGuideline))
				return doc, []byte(bundledGuideline), err
			},
		})
	}

	list = append(list, strategy{
		source: models.SourceCache,
		attempt: func(ctx context.Context) (*models.GuidelineDocument, []byte, error) {
			raw, ok := r.store.CachedGuideline()
			if !ok {
				return nil, nil, fmt.Errorf("no cached guideline document")
			}
			doc, err := fetch.Parse(raw)
			return doc, raw, err
		},
	})

	return list
}

// Resolve tries each strategy in order and returns the first document
// produced, stamped with its source tag. Remote and local successes persist
// the raw document text before returning so a later failure has a fallback;
// a failed attempt never writes storage. When every path fails the first
// failure is propagated — the only fatal outcome.
func (r *Resolver) Resolve(ctx context.Context) (*models.GuidelineDocument, error) {
	var firstErr error

	for _, s := range r.strategies() {
		doc, raw, err := s.attempt(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		doc.Source = s.source
		if s.persist {
			if err := r.store.SaveGuideline(raw); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}
		return doc, nil
	}

	return nil, fmt.Errorf("failed to resolve guideline document: %w", firstErr)
}
