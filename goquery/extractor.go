// Package goquery implements template extraction on top of goquery and the
// golang.org/x/net/html node tree.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/templify"
	"golang.org/x/net/html"
)

// Ensure Extractor implements templify.Extractor at compile time.
var _ templify.Extractor = (*Extractor)(nil)

// Extractor replaces visible text and configured attributes of an HTML
// document with placeholders. It holds no per-run state, so one Extractor
// can be reused for any number of documents.
type Extractor struct {
	config *templify.Config
}

// NewExtractor creates a new Extractor. A nil config uses templify.DefaultConfig.
func NewExtractor(config *templify.Config) *Extractor {
	if config == nil {
		config = templify.DefaultConfig()
	}
	return &Extractor{config: config}
}

// Extract parses html and returns the template with its variable groups.
// Text is extracted first, then every rule in table order; each pass visits
// nodes in document order, which makes generated names deterministic.
func (e *Extractor) Extract(html string) (*templify.Result, error) {
	if err := e.config.Validate(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, templify.Errorf(templify.EINVALID, "failed to parse HTML: %v", err)
	}

	run := newExtraction(e.config)
	for _, root := range doc.Nodes {
		run.extractText(root)
	}
	for _, rule := range e.config.Rules {
		run.extractAttr(doc, rule)
	}

	var b strings.Builder
	for _, root := range doc.Nodes {
		if err := serialize(&b, root, run.isPlaceholder); err != nil {
			return nil, err
		}
	}

	return &templify.Result{
		Template: b.String(),
		Groups:   run.groups,
	}, nil
}

// extraction holds the naming state of a single Extract call.
type extraction struct {
	config   *templify.Config
	counters map[string]int
	groups   []*templify.Group
	byID     map[string]*templify.Group

	// placed records the attributes overwritten with a placeholder.
	placed map[*html.Node]map[string]bool
}

func newExtraction(config *templify.Config) *extraction {
	x := &extraction{
		config:   config,
		counters: make(map[string]int),
		byID:     make(map[string]*templify.Group),
		placed:   make(map[*html.Node]map[string]bool),
	}
	for _, c := range config.Categories {
		g := &templify.Group{Name: c.Group, Category: c.ID}
		x.groups = append(x.groups, g)
		x.byID[c.ID] = g
	}
	return x
}

// record stores value under the next name of the category and returns the placeholder.
func (x *extraction) record(categoryID, value string) string {
	x.counters[categoryID]++
	name := templify.VariableName(x.config.Category(categoryID).Prefix, x.counters[categoryID])
	x.byID[categoryID].Add(name, value)
	return templify.Placeholder(name)
}

// extractText walks the children of n in document order, dropping comments
// and doctypes and replacing candidate text with placeholders.
func (x *extraction) extractText(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch Classify(c) {
		case ClassSkip:
			n.RemoveChild(c)
		case ClassCandidate:
			value := templify.EscapeQuotes(strings.TrimSpace(c.Data))
			c.Data = x.record(templify.CategoryText, value)
		case ClassElement:
			x.extractText(c)
		}
		c = next
	}
}

// extractAttr replaces the rule's attribute on every matching element that
// carries a non-blank value.
func (x *extraction) extractAttr(doc *goquery.Document, rule templify.Rule) {
	doc.Find(rule.Tag + "[" + rule.Attr + "]").Each(func(_ int, sel *goquery.Selection) {
		val, exists := sel.Attr(rule.Attr)
		if !exists {
			return
		}
		val = strings.TrimSpace(val)
		if val == "" {
			return
		}
		sel.SetAttr(rule.Attr, x.record(rule.Category, val))

		n := sel.Get(0)
		if x.placed[n] == nil {
			x.placed[n] = make(map[string]bool)
		}
		x.placed[n][rule.Attr] = true
	})
}

func (x *extraction) isPlaceholder(n *html.Node, key string) bool {
	return x.placed[n][key]
}
