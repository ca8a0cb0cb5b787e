// Package slots segments free-form description text into the named semantic
// fields the prompt templates consume.
//
// Segmentation is deliberately shallow: the text is split on sentence-ish
// delimiters and segments are classified by keyword sets. A segment claimed
// by one slot stays eligible for later slots — the overlap is an accepted
// heuristic, kept as-is rather than "fixed".
package slots

import (
	"strings"

	"github.com/seoku/promptforge/internal/models"
)

// Fallback phrases used when the text yields nothing for a slot.
const (
	defaultSubject     = "a product"
	defaultEnvironment = "studio background"
	defaultLighting    = "soft natural lighting"
	defaultMaterials   = "clean glossy materials"
	defaultMood        = "calm premium mood"
	defaultComposition = "balanced centered composition"
	defaultDetails     = "high detail, sharp focus"
)

// Keyword sets carry the source-language terms users actually type plus
// their common English equivalents.
var (
	lightingWords    = []string{"빛", "조명", "햇살", "햇빛", "역광", "노을", "light", "glow", "sunlight", "backlit"}
	materialWords    = []string{"유리", "금속", "플라스틱", "실크", "거울", "가죽", "glass", "metal", "plastic", "silk", "mirror", "leather"}
	moodWords        = []string{"분위기", "차분", "고급", "산뜻", "따뜻", "포근", "mood", "calm", "luxurious", "fresh", "warm", "cozy"}
	compositionWords = []string{"구도", "상단", "하단", "삼분할", "클로즈업", "원근", "정면", "framing", "top", "bottom", "rule of thirds", "close-up", "perspective"}
)

// Extract segments text and assigns segments to slots in a fixed order.
// Every string field of the result is non-empty; Duration is always the
// fixed default, never derived from text.
func Extract(text string) models.Slots {
	segments := split(text)

	s := models.Slots{
		Subject:     pick(segments, 0, defaultSubject),
		Environment: pick(segments, 1, defaultEnvironment),
		Lighting:    firstMatching(segments, lightingWords, defaultLighting),
		Materials:   firstMatching(segments, materialWords, defaultMaterials),
		Mood:        firstMatching(segments, moodWords, defaultMood),
		Composition: firstMatching(segments, compositionWords, defaultComposition),
		Details:     defaultDetails,
		Duration:    models.DefaultDuration,
	}

	if len(segments) > 2 {
		s.Details = strings.Join(segments[2:], ", ")
	}

	return s
}

// split breaks text on periods, commas and newlines, trimming each piece and
// dropping empties.
func split(text string) []string {
	parts := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return r == '.' || r == ',' || r == '\n'
	})

	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

func pick(segments []string, i int, fallback string) string {
	if i < len(segments) {
		return segments[i]
	}
	return fallback
}

// firstMatching scans the full segment list — including segments already
// claimed by subject/environment — and returns the first one containing any
// keyword, or the fallback.
func firstMatching(segments, keywords []string, fallback string) string {
	for _, seg := range segments {
		for _, kw := range keywords {
			if strings.Contains(seg, kw) {
				return seg
			}
		}
	}
	return fallback
}
