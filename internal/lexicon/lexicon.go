// Package lexicon implements the deterministic find-and-replace translator
// that maps source-language terms to model-friendly English phrases.
package lexicon

import (
	"sort"
	"strings"
)

// Merge layers a model-specific lexicon over the global one. The result is a
// new map; neither input is mutated. Override entries win on key collision.
func Merge(global, override map[string]string) map[string]string {
	merged := make(map[string]string, len(global)+len(override))
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// Translate performs a global literal substitution of every lexicon key in
// text, longest key first so a short key cannot fragment a longer phrase
// before it gets a chance to match whole. Keys are matched as literal text,
// never as patterns. Entries with an empty key or translation are skipped.
//
// Translation is not idempotent-safe: a later (shorter) key can re-match text
// introduced by an earlier replacement when a translation value contains that
// key as a substring. This is a known property of the substitution order, not
// something Translate guards against.
func Translate(text string, lex map[string]string) string {
	if text == "" || len(lex) == 0 {
		return text
	}

	keys := make([]string, 0, len(lex))
	for k, v := range lex {
		if k == "" || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		text = strings.ReplaceAll(text, k, lex[k])
	}
	return text
}
