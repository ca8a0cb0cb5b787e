package models

import "errors"

// Source identifies which resolution path produced a guideline document.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
	SourceCache  Source = "cache"
)

// Sentinel errors shared across interfaces (CLI, HTTP, TUI).
var (
	// ErrModelUnavailable is returned when a build is requested for a model
	// id that has no registered builder.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrNoGuideline is returned when every resolution path has failed and
	// no cached document exists.
	ErrNoGuideline = errors.New("no guideline document available")
)

// GuidelineDocument is the versioned configuration that drives prompt
// compilation: models, templates, parameter keys, and the translation lexicon.
type GuidelineDocument struct {
	Version   string            `json:"version"`
	UpdatedAt string            `json:"updatedAt"`
	Models    []ModelRecord     `json:"models"`
	Lexicon   map[string]string `json:"lexicon,omitempty"`

	// Source is stamped by the resolver, never authored in the document.
	Source Source `json:"-"`
}

// ModelRecord describes one image/video generation model: its display
// metadata, valid engines, parameter key tokens, prompt template, and a
// model-specific lexicon layered over the global one.
type ModelRecord struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Latest    string            `json:"latest"`
	Engines   []string          `json:"engines"`
	Params    ParamKeys         `json:"params"`
	Template  string            `json:"template"`
	Lexicon   map[string]string `json:"lexicon,omitempty"`
	Guideline []string          `json:"guideline,omitempty"`
}

// ParamKeys maps logical parameter roles to the literal tokens a model
// expects in its parameter line (e.g. StylizeKey "--s").
type ParamKeys struct {
	AspectKey   string `json:"aspectKey,omitempty"`
	StylizeKey  string `json:"stylizeKey,omitempty"`
	SeedKey     string `json:"seedKey,omitempty"`
	NegativeKey string `json:"negativeKey,omitempty"`
}

// FindModel returns the record with the given id, if present.
func (d *GuidelineDocument) FindModel(id string) (*ModelRecord, bool) {
	for i := range d.Models {
		if d.Models[i].ID == id {
			return &d.Models[i], true
		}
	}
	return nil, false
}
