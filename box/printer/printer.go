// Package printer renders parsed box trees as human-readable text or JSON.
package printer

// Options controls tree rendering.
type Options struct {
	// MaxDepth limits how deep the tree is rendered. Zero means no limit.
	MaxDepth int
	// ShowDecoded includes decoded payload summaries where present.
	ShowDecoded bool
	// Indent is the JSON indent string. Empty means compact output; Text
	// ignores it.
	Indent string
}
