// Package builder compiles free-form input text into a model-specific prompt
// using the template, parameter keys and lexicon of one guideline model.
package builder

import (
	"strconv"
	"strings"

	"github.com/seoku/promptforge/internal/lexicon"
	"github.com/seoku/promptforge/internal/models"
	"github.com/seoku/promptforge/internal/slots"
)

// paramsMarker precedes the canonical parameter substring in rendered output.
const paramsMarker = "Parameters:"

// Builder is a pure prompt compiler for a single model. It closes over the
// model record and the merged lexicon at construction and keeps no state
// across Build calls.
type Builder struct {
	model models.ModelRecord
	lex   map[string]string
}

// New creates a builder for one model. The model's own lexicon overrides the
// global one on identical keys.
func New(model models.ModelRecord, global map[string]string) *Builder {
	return &Builder{
		model: model,
		lex:   lexicon.Merge(global, model.Lexicon),
	}
}

// Model returns the record this builder compiles for.
func (b *Builder) Model() models.ModelRecord {
	return b.model
}

// Build extracts slots from input, translates them through the merged
// lexicon, renders the model template and extracts the parameter line.
// Deterministic for identical inputs; the model record is never mutated.
func (b *Builder) Build(input, engine string, opts models.BuildOptions) models.BuildResult {
	s := slots.Extract(input)

	stylize := opts.Stylize
	if stylize <= 0 {
		stylize = models.DefaultStylize
	}

	values := map[string]string{
		"subject":     lexicon.Translate(s.Subject, b.lex),
		"environment": lexicon.Translate(s.Environment, b.lex),
		"lighting":    lexicon.Translate(s.Lighting, b.lex),
		"materials":   lexicon.Translate(s.Materials, b.lex),
		"mood":        lexicon.Translate(s.Mood, b.lex),
		"composition": lexicon.Translate(s.Composition, b.lex),
		"details":     lexicon.Translate(s.Details, b.lex),
		"duration":    strconv.Itoa(s.Duration),
		"engine":      engine,
		"aspect":      optionalToken(b.model.Params.AspectKey, opts.Aspect),
		"stylize":     token(b.model.Params.StylizeKey, strconv.Itoa(stylize)),
		"seed":        optionalToken(b.model.Params.SeedKey, opts.Seed),
		"negative":    optionalToken(b.model.Params.NegativeKey, lexicon.Translate(opts.Negative, b.lex)),
	}

	full := strings.TrimSpace(render(b.model.Template, values))

	return models.BuildResult{
		Full:   full,
		Params: extractParams(full),
	}
}

// optionalToken renders "<key> <value>", or "" when the value is empty so the
// parameter disappears from the output entirely.
func optionalToken(key, value string) string {
	if value == "" {
		return ""
	}
	return token(key, value)
}

func token(key, value string) string {
	return key + " " + value
}

// extractParams returns the text after the "Parameters:" marker, cut at the
// end of that line and trimmed. Missing marker yields "".
func extractParams(full string) string {
	i := strings.Index(full, paramsMarker)
	if i < 0 {
		return ""
	}
	rest := full[i+len(paramsMarker):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest)
}
