package builder

import (
	"sync"

	"github.com/seoku/promptforge/internal/models"
)

// Registry maps model ids to compiled builders. Install replaces the whole
// set at once; there is no partial-update path. The mutex serializes installs
// against lookups so readers never observe a half-built registry.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]*Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]*Builder)}
}

// Install discards every previously registered builder and compiles exactly
// one builder per model in the document, all closing over the document's
// global lexicon.
func (r *Registry) Install(doc *models.GuidelineDocument) {
	builders := make(map[string]*Builder, len(doc.Models))
	for _, m := range doc.Models {
		builders[m.ID] = New(m, doc.Lexicon)
	}

	r.mu.Lock()
	r.builders = builders
	r.mu.Unlock()
}

// Get returns the builder for a model id, or false when none is registered.
func (r *Registry) Get(id string) (*Builder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[id]
	return b, ok
}

// Len reports how many builders are installed.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.builders)
}
