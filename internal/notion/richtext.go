// Package notion models the block records produced by the renderer.
//
// The JSON encoding mirrors the block API of the target content service:
// every block carries a "type" tag plus a payload under the same key, and
// rich-text fields are arrays of text runs with annotations.
package notion

import "strings"

// Annotations are the style flags of a text run. Renderers only ever set
// flags; nothing clears them.
type Annotations struct {
	Bold          bool `json:"bold,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Code          bool `json:"code,omitempty"`
}

// Merge sets every flag that is set in other.
func (a *Annotations) Merge(other Annotations) {
	a.Bold = a.Bold || other.Bold
	a.Italic = a.Italic || other.Italic
	a.Strikethrough = a.Strikethrough || other.Strikethrough
	a.Underline = a.Underline || other.Underline
	a.Code = a.Code || other.Code
}

// Link is the target of a linked run.
type Link struct {
	URL string `json:"url"`
}

// TextRun is the atomic inline unit.
type TextRun struct {
	Content     string
	Annotations Annotations
	Link        *Link
}

// Text returns an unannotated run.
func Text(content string) *TextRun {
	return &TextRun{Content: content}
}

// PlainText concatenates the content of runs, dropping annotations and links.
func PlainText(runs []*TextRun) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Content)
	}
	return sb.String()
}

// Clone returns a copy of r that shares nothing with it.
func (r *TextRun) Clone() *TextRun {
	c := *r
	if r.Link != nil {
		l := *r.Link
		c.Link = &l
	}
	return &c
}
