// Package htmlextract pulls <img> elements out of raw HTML fragments.
//
// The scanner is permissive: it never fails on malformed markup and never
// re-parses the remaining text as Markdown.
package htmlextract

import (
	"strings"

	"golang.org/x/net/html"
)

// Image is one extracted <img> element.
type Image struct {
	URL     string
	Caption string // alt text, empty when absent
}

// Result holds the outcome of scanning one fragment.
type Result struct {
	// Text is the fragment with all tags stripped and entities decoded.
	Text string
	// Images are the extracted elements in encounter order.
	Images []Image
}

// Extract scans fragment once, front to back.
func Extract(fragment string) Result {
	var (
		res  Result
		text strings.Builder
	)

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or a read error on an in-memory reader; either way the
			// fragment is exhausted.
			break
		}

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) == "img" {
				res.Images = append(res.Images, imageFromAttrs(z, hasAttr))
			}
		case html.TextToken:
			text.Write(z.Text())
		}
		// Comments, doctypes and other tags are markup, not content.
	}

	res.Text = text.String()
	return res
}

func imageFromAttrs(z *html.Tokenizer, more bool) Image {
	var img Image
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		switch string(key) {
		case "src":
			if img.URL == "" {
				img.URL = string(val)
			}
		case "alt":
			if img.Caption == "" {
				img.Caption = string(val)
			}
		}
	}
	return img
}
