package goquery

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Serialize writes the tree rooted at n as indented markup.
//
// Elements whose children are all elements get one child per line, indented
// by one space per level. Elements with any text child, and raw-text or
// preformatted elements, keep their children inline so text and whitespace
// are written byte for byte. Braces are never escaped, so placeholders inside
// text and attribute values pass through unchanged.
func Serialize(w io.Writer, n *html.Node) error {
	return serialize(w, n, nil)
}

// serialize is Serialize with brace escaping for attribute values. When
// placeholder is set, every attribute value it does not report as a
// placeholder has "{" written as "&#123;", so literal braces in the source can
// never be mistaken for a placeholder by a renderer.
func serialize(w io.Writer, n *html.Node, placeholder func(n *html.Node, key string) bool) error {
	bw := bufio.NewWriter(w)
	p := &printer{w: bw, placeholder: placeholder}
	if n.Type == html.DocumentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.node(c, 0, false)
			p.str("\n")
		}
	} else {
		p.node(n, 0, false)
	}
	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

// SerializeString is like Serialize but returns the markup as a string.
func SerializeString(n *html.Node) (string, error) {
	var b strings.Builder
	if err := Serialize(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// voidElements never have an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// rawTextElements have their text written without escaping.
var rawTextElements = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "noscript": true,
	"plaintext": true, "script": true, "style": true, "xmp": true,
}

// inlineElements always keep their children on the start tag's line.
var inlineElements = map[string]bool{
	"pre": true, "listing": true, "textarea": true, "title": true,
}

type printer struct {
	w           *bufio.Writer
	err         error
	placeholder func(n *html.Node, key string) bool
}

func (p *printer) str(s string) {
	if p.err != nil {
		return
	}
	_, p.err = p.w.WriteString(s)
}

func (p *printer) indent(depth int) {
	p.str("\n")
	p.str(strings.Repeat(" ", depth))
}

// node writes n at the given depth. raw reports whether text children are
// written unescaped.
func (p *printer) node(n *html.Node, depth int, raw bool) {
	switch n.Type {
	case html.TextNode:
		if raw {
			p.str(n.Data)
		} else {
			p.str(html.EscapeString(n.Data))
		}
	case html.CommentNode:
		p.str("<!--")
		p.str(n.Data)
		p.str("-->")
	case html.DoctypeNode:
		p.str("<!DOCTYPE ")
		p.str(n.Data)
		p.str(">")
	case html.RawNode:
		p.str(n.Data)
	case html.ElementNode:
		p.element(n, depth)
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.node(c, depth, raw)
		}
	}
}

func (p *printer) element(n *html.Node, depth int) {
	p.str("<")
	p.str(n.Data)
	for _, a := range n.Attr {
		p.str(" ")
		if a.Namespace != "" {
			p.str(a.Namespace)
			p.str(":")
		}
		p.str(a.Key)
		p.str(`="`)
		val := html.EscapeString(a.Val)
		if p.placeholder != nil && !p.placeholder(n, a.Key) {
			val = strings.ReplaceAll(val, "{", "&#123;")
		}
		p.str(val)
		p.str(`"`)
	}
	p.str(">")

	if voidElements[n.Data] && n.Namespace == "" {
		return
	}

	raw := rawTextElements[n.Data] && n.Namespace == ""
	switch {
	case n.FirstChild == nil:
	case raw || inlineElements[n.Data] || !onlyElements(n):
		// The parser drops a newline directly after <pre>, <listing> and
		// <textarea>, so a leading newline in the text must be doubled.
		if inlineElements[n.Data] && n.Data != "title" {
			if c := n.FirstChild; c.Type == html.TextNode && strings.HasPrefix(c.Data, "\n") {
				p.str("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.node(c, depth+1, raw)
		}
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			p.indent(depth + 1)
			p.node(c, depth+1, false)
		}
		p.indent(depth)
	}

	p.str("</")
	p.str(n.Data)
	p.str(">")
}

// onlyElements reports whether every child of n is an element.
func onlyElements(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			return false
		}
	}
	return true
}
