package builder

import (
	"strings"
	"testing"

	"github.com/seoku/promptforge/internal/models"
)

func testModel() models.ModelRecord {
	return models.ModelRecord{
		ID:      "midjourney",
		Name:    "Midjourney",
		Latest:  "v6",
		Engines: []string{"v6", "niji"},
		Params: models.ParamKeys{
			AspectKey:   "--ar",
			StylizeKey:  "--s",
			SeedKey:     "--seed",
			NegativeKey: "--no",
		},
		Template: "{subject} in {environment}, {lighting}. Parameters: {aspect} {stylize}",
	}
}

func TestBuildEndToEnd(t *testing.T) {
	b := New(testModel(), nil)

	res := b.Build("a red shoe, on a wooden table", "v6", models.BuildOptions{
		Aspect:  "16:9",
		Stylize: 80,
	})

	if !strings.HasPrefix(res.Full, "a red shoe in on a wooden table") {
		t.Errorf("Full = %q", res.Full)
	}
	if !strings.HasSuffix(res.Full, "Parameters: --ar 16:9 --s 80") {
		t.Errorf("Full does not end with parameter line: %q", res.Full)
	}
	if res.Params != "--ar 16:9 --s 80" {
		t.Errorf("Params = %q, want %q", res.Params, "--ar 16:9 --s 80")
	}
}

func TestBuildEmptyOptionsOmitOptionalTokens(t *testing.T) {
	m := testModel()
	m.Template = "{subject}. Parameters: {aspect} {seed} {negative} {stylize}"
	b := New(m, nil)

	res := b.Build("a vase", "v6", models.BuildOptions{})

	if strings.Contains(res.Full, "--ar") || strings.Contains(res.Full, "--seed") || strings.Contains(res.Full, "--no") {
		t.Errorf("optional tokens leaked into output: %q", res.Full)
	}
	if res.Params != "--s 50" {
		t.Errorf("Params = %q, want default stylize token only", res.Params)
	}
}

func TestBuildTranslatesSlotsAndNegative(t *testing.T) {
	m := testModel()
	m.Template = "{subject}, {materials}. Parameters: {negative}"
	m.Lexicon = map[string]string{"유리": "glass"}
	b := New(m, map[string]string{"향수병": "perfume bottle"})

	res := b.Build("향수병, 배경, 유리 질감", "v6", models.BuildOptions{Negative: "유리"})

	if !strings.HasPrefix(res.Full, "perfume bottle, glass 질감") {
		t.Errorf("slot translation missing: %q", res.Full)
	}
	if res.Params != "--no glass" {
		t.Errorf("negative option not translated: Params = %q", res.Params)
	}
}

func TestBuildModelLexiconOverridesGlobal(t *testing.T) {
	m := testModel()
	m.Template = "{subject}"
	m.Lexicon = map[string]string{"금속": "chrome"}
	b := New(m, map[string]string{"금속": "metal"})

	res := b.Build("금속", "v6", models.BuildOptions{})
	if res.Full != "chrome" {
		t.Errorf("Full = %q, want model override", res.Full)
	}
}

func TestBuildUnknownPlaceholderLeftVerbatim(t *testing.T) {
	m := testModel()
	m.Template = "{subject} {style_reference} {duration}s"
	b := New(m, nil)

	res := b.Build("a lamp", "v6", models.BuildOptions{})
	if res.Full != "a lamp {style_reference} 4s" {
		t.Errorf("Full = %q", res.Full)
	}
	if res.Params != "" {
		t.Errorf("Params = %q, want empty without marker", res.Params)
	}
}

func TestBuildSubstitutedValuesNotRescanned(t *testing.T) {
	// A translated slot containing placeholder syntax must survive
	// untouched: rendering is a single pass over the template only.
	m := testModel()
	m.Template = "{subject} and {environment}"
	b := New(m, nil)

	res := b.Build("{environment} braces, plain", "v6", models.BuildOptions{})
	if res.Full != "{environment} braces and plain" {
		t.Errorf("Full = %q", res.Full)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := New(testModel(), map[string]string{"빛": "light"})
	opts := models.BuildOptions{Aspect: "1:1", Seed: "7"}

	first := b.Build("제품, 배경, 부드러운 빛", "niji", opts)
	for i := 0; i < 5; i++ {
		if got := b.Build("제품, 배경, 부드러운 빛", "niji", opts); got != first {
			t.Fatalf("build %d differed: %+v vs %+v", i, got, first)
		}
	}
}

func TestRegistryInstallReplacesEverything(t *testing.T) {
	reg := NewRegistry()

	reg.Install(&models.GuidelineDocument{Models: []models.ModelRecord{
		{ID: "old-model"},
	}})
	if _, ok := reg.Get("old-model"); !ok {
		t.Fatal("expected builder for old-model after first install")
	}

	reg.Install(&models.GuidelineDocument{Models: []models.ModelRecord{
		{ID: "midjourney"},
		{ID: "veo"},
	}})

	if _, ok := reg.Get("old-model"); ok {
		t.Error("stale builder survived reinstall")
	}
	for _, id := range []string{"midjourney", "veo"} {
		if _, ok := reg.Get(id); !ok {
			t.Errorf("missing builder for %s", id)
		}
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
}

func TestRegistryGetUnknownModel(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Get("nope"); ok {
		t.Error("expected not-found for empty registry")
	}
}
