package guideline

// bundledGuideline is the default document shipped with the binary. It is
// used when no source URL has been configured and keeps the app usable on
// first run with no network access.
const bundledGuideline = `{
  "version": "1.4.0",
  "updatedAt": "2026-08-01T00:00:00Z",
  "models": [
    {
      "id": "midjourney",
      "name": "Midjourney",
      "latest": "v6.1",
      "engines": ["v6.1", "v6", "niji6"],
      "params": {
        "aspectKey": "--ar",
        "stylizeKey": "--s",
        "seedKey": "--seed",
        "negativeKey": "--no"
      },
      "template": "{subject} placed in {environment}, {lighting}, {materials}, {mood}, {composition}, {details} --v {engine}\nParameters: {aspect} {stylize} {seed} {negative}",
      "lexicon": {
        "니지": "anime style"
      },
      "guideline": [
        "Lead with the subject, qualifiers after.",
        "Keep parameter tokens at the end of the prompt.",
        "Use --no for elements to exclude instead of negations in prose."
      ]
    },
    {
      "id": "sdxl",
      "name": "Stable Diffusion XL",
      "latest": "1.0",
      "engines": ["base", "refiner"],
      "params": {
        "aspectKey": "--aspect",
        "stylizeKey": "--style-strength",
        "seedKey": "--seed",
        "negativeKey": "--negative"
      },
      "template": "{subject}, {environment}, {lighting}, {materials}, {mood}, {composition}, {details}, engine {engine}\nParameters: {aspect} {stylize} {seed} {negative}",
      "guideline": [
        "Comma-separated tags work better than full sentences.",
        "Put quality tags in the details slot."
      ]
    },
    {
      "id": "veo",
      "name": "Veo",
      "latest": "2",
      "engines": ["standard", "fast"],
      "params": {
        "aspectKey": "--ar",
        "stylizeKey": "--style",
        "seedKey": "--seed",
        "negativeKey": "--exclude"
      },
      "template": "A {duration} second shot of {subject} in {environment}. {lighting}. {mood}. Camera: {composition}. Rendered on {engine}.\nParameters: {aspect} {stylize} {seed} {negative}",
      "guideline": [
        "Describe one continuous camera move per clip.",
        "Keep clips short; the duration slot is fixed."
      ]
    }
  ],
  "lexicon": {
    "향수병": "perfume bottle",
    "유리": "glass",
    "금속": "metal",
    "플라스틱": "plastic",
    "실크": "silk",
    "거울": "mirror",
    "대리석": "marble",
    "조명": "lighting",
    "햇살": "sunlight",
    "역광": "backlight",
    "노을": "sunset glow",
    "차분한": "calm",
    "고급스러운": "luxurious",
    "산뜻한": "fresh",
    "따뜻한": "warm",
    "분위기": "atmosphere",
    "클로즈업": "close-up",
    "삼분할": "rule of thirds",
    "정면": "front view",
    "구도": "composition"
  }
}`
