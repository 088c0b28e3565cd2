package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// Class is the extraction classification of a node.
type Class int

const (
	// ClassElement marks element and document nodes; their children are visited.
	ClassElement Class = iota

	// ClassSkip marks comments and doctypes, which are removed from the tree.
	ClassSkip

	// ClassCandidate marks text with non-whitespace content.
	ClassCandidate

	// ClassIgnored marks whitespace-only text, which is kept verbatim.
	ClassIgnored
)

// String returns the name of the class.
func (c Class) String() string {
	switch c {
	case ClassElement:
		return "element"
	case ClassSkip:
		return "skip"
	case ClassCandidate:
		return "candidate-text"
	case ClassIgnored:
		return "ignored-text"
	default:
		return "unknown"
	}
}

// Classify decides how the extractor treats n. It has no side effects;
// detaching skipped nodes is left to the caller.
func Classify(n *html.Node) Class {
	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return ClassSkip
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return ClassIgnored
		}
		return ClassCandidate
	default:
		// ElementNode, DocumentNode and parser-internal ErrorNode/RawNode
		// carry no text of their own.
		return ClassElement
	}
}
