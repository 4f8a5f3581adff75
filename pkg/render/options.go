package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the field model.
type RenderOptions struct {
	// Compact disables indentation for JSON producing renderers.
	Compact bool
	// Values pre-populates answers keyed by question key. Interactive
	// renderers skip prompts that already have a value.
	Values map[string]any
}
