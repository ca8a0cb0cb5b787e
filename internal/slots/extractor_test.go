package slots

import (
	"strings"
	"testing"

	"github.com/seoku/promptforge/internal/models"
)

func TestExtractPositionalAssignment(t *testing.T) {
	s := Extract("a red shoe, on a wooden table")

	if s.Subject != "a red shoe" {
		t.Errorf("Subject = %q, want %q", s.Subject, "a red shoe")
	}
	if s.Environment != "on a wooden table" {
		t.Errorf("Environment = %q, want %q", s.Environment, "on a wooden table")
	}
	if s.Lighting != defaultLighting {
		t.Errorf("Lighting = %q, want default %q", s.Lighting, defaultLighting)
	}
	if s.Duration != models.DefaultDuration {
		t.Errorf("Duration = %d, want %d", s.Duration, models.DefaultDuration)
	}
}

func TestExtractKeywordSlots(t *testing.T) {
	s := Extract("향수병, 대리석 위, 따뜻한 조명, 유리 질감, 차분한 분위기, 클로즈업 구도")

	if s.Lighting != "따뜻한 조명" {
		t.Errorf("Lighting = %q", s.Lighting)
	}
	if s.Materials != "유리 질감" {
		t.Errorf("Materials = %q", s.Materials)
	}
	if s.Mood != "따뜻한 조명" {
		// "따뜻" is also a mood keyword and the lighting segment comes first
		// in the list; segments are never excluded once claimed.
		t.Errorf("Mood = %q, overlap policy changed?", s.Mood)
	}
	if s.Composition != "클로즈업 구도" {
		t.Errorf("Composition = %q", s.Composition)
	}
	if s.Details != "따뜻한 조명, 유리 질감, 차분한 분위기, 클로즈업 구도" {
		t.Errorf("Details = %q", s.Details)
	}
}

func TestExtractEmptyInputFallsBackEverywhere(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n", ",,,"} {
		s := Extract(input)

		for name, v := range map[string]string{
			"Subject":     s.Subject,
			"Environment": s.Environment,
			"Lighting":    s.Lighting,
			"Materials":   s.Materials,
			"Mood":        s.Mood,
			"Composition": s.Composition,
			"Details":     s.Details,
		} {
			if strings.TrimSpace(v) == "" {
				t.Errorf("input %q: slot %s is empty", input, name)
			}
		}
		if s.Duration != models.DefaultDuration {
			t.Errorf("input %q: Duration = %d", input, s.Duration)
		}
	}
}

func TestExtractSingleSegment(t *testing.T) {
	s := Extract("향수병")

	if s.Subject != "향수병" {
		t.Errorf("Subject = %q", s.Subject)
	}
	if s.Environment != defaultEnvironment {
		t.Errorf("Environment = %q, want default", s.Environment)
	}
	if s.Details != defaultDetails {
		t.Errorf("Details = %q, want default", s.Details)
	}
}

func TestExtractSegmentReuseAcrossSlots(t *testing.T) {
	// A single segment carrying lighting, material and mood words is picked
	// for all three slots.
	s := Extract("제품, 배경, 따뜻한 빛이 도는 유리")

	if s.Lighting != "따뜻한 빛이 도는 유리" {
		t.Errorf("Lighting = %q", s.Lighting)
	}
	if s.Materials != "따뜻한 빛이 도는 유리" {
		t.Errorf("Materials = %q", s.Materials)
	}
	if s.Mood != "따뜻한 빛이 도는 유리" {
		t.Errorf("Mood = %q", s.Mood)
	}
}
