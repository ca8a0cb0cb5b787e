package models

// DefaultStylize is used when BuildOptions.Stylize is absent or invalid.
const DefaultStylize = 50

// DefaultDuration is the fixed clip duration slot for video models. It is
// never derived from the input text.
const DefaultDuration = 4

// Slots holds the semantic fields extracted from free-form input text.
// Every string field is guaranteed non-empty: extraction falls back to a
// fixed default phrase when the text yields nothing for a slot.
type Slots struct {
	Subject     string
	Environment string
	Lighting    string
	Materials   string
	Mood        string
	Composition string
	Details     string
	Duration    int
}

// BuildOptions are the per-invocation knobs supplied alongside input text.
// Empty strings mean "omit this parameter"; Stylize <= 0 means "use default".
type BuildOptions struct {
	Aspect   string
	Stylize  int
	Seed     string
	Negative string
}

// BuildResult is the output of one prompt compilation.
type BuildResult struct {
	// Full is the complete rendered prompt.
	Full string
	// Params is the text following the literal "Parameters:" marker in the
	// rendered prompt, or "" when the template carries no marker.
	Params string
}
