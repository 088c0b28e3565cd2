package goquery

import (
	"strings"

	"github.com/fwojciec/templify"
	"golang.org/x/net/html"
)

// Ensure Renderer implements templify.Renderer at compile time.
var _ templify.Renderer = (*Renderer)(nil)

// Renderer renders templates produced by an Extractor.
//
// Values are escaped for the place their placeholder occupies: inside a tag
// they are escaped as attribute values, in text as character data, and in the
// body of script, style and other raw-text elements they are inserted as is.
// Re-parsing the output therefore yields exactly the merged values.
type Renderer struct {
	config *templify.Config
	prefix string
}

// NewRenderer creates a Renderer. A nil config uses templify.DefaultConfig.
// prefix is prepended to the values of relocatable categories.
func NewRenderer(config *templify.Config, prefix string) *Renderer {
	if config == nil {
		config = templify.DefaultConfig()
	}
	return &Renderer{config: config, prefix: prefix}
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Render implements templify.Renderer.
func (r *Renderer) Render(template string, groups []*templify.Group) (string, error) {
	values := templify.MergeValues(r.config, r.prefix, groups)
	if err := templify.UnresolvedError(templify.Unresolved(template, values)); err != nil {
		return "", err
	}

	var b strings.Builder
	expand := func(s string, escape func(string) string) {
		b.WriteString(templify.Expand(s, func(name string) string {
			return escape(values[name])
		}))
	}

	z := html.NewTokenizer(strings.NewReader(template))
	offset := 0
	raw := false
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		// Copy before TagName, which lowercases the buffer in place.
		tok := string(z.Raw())
		offset += len(tok)

		switch tt {
		case html.TextToken:
			if raw {
				expand(tok, verbatim)
			} else {
				expand(tok, textEscaper.Replace)
			}
			continue
		case html.StartTagToken:
			name, _ := z.TagName()
			raw = rawTextElements[string(name)]
		case html.EndTagToken:
			raw = false
		}
		expand(tok, html.EscapeString)
	}
	// Whatever the tokenizer could not finish is treated as text.
	expand(template[offset:], textEscaper.Replace)

	return b.String(), nil
}

func verbatim(s string) string { return s }
