package templify

import "regexp"

// Category IDs used by the default configuration.
const (
	CategoryText         = "text"
	CategoryHrefLink     = "href-link"
	CategoryHrefResource = "href-resource"
	CategorySrcImage     = "src-image"
	CategorySrcScript    = "src-script"
)

// Category describes one kind of extracted value. Every category owns an
// independent naming sequence and is persisted as its own variable group.
type Category struct {
	// ID identifies the category in rules (e.g. "href-link").
	ID string `yaml:"id"`

	// Group is the name of the variable group in the store (e.g. "link_variables").
	Group string `yaml:"group"`

	// Prefix is prepended to the sequence number to build variable names (e.g. "link").
	Prefix string `yaml:"prefix"`

	// Relocatable categories hold asset paths that get the render prefix applied.
	Relocatable bool `yaml:"relocatable"`
}

// Rule selects an attribute on an element for extraction.
type Rule struct {
	Tag      string `yaml:"tag"`
	Attr     string `yaml:"attr"`
	Category string `yaml:"category"`
}

// Config holds the category and rule tables that drive extraction and rendering.
type Config struct {
	Categories []Category `yaml:"categories"`
	Rules      []Rule     `yaml:"rules"`
}

// DefaultConfig returns the built-in category and rule tables.
func DefaultConfig() *Config {
	return &Config{
		Categories: DefaultCategories(),
		Rules:      DefaultRules(),
	}
}

// DefaultCategories returns the built-in categories in group output order.
func DefaultCategories() []Category {
	return []Category{
		{ID: CategoryText, Group: "text_variables", Prefix: "text"},
		{ID: CategoryHrefLink, Group: "link_variables", Prefix: "link"},
		{ID: CategorySrcImage, Group: "image_variables", Prefix: "img", Relocatable: true},
		{ID: CategoryHrefResource, Group: "links_variables", Prefix: "res", Relocatable: true},
		{ID: CategorySrcScript, Group: "script_variables", Prefix: "script", Relocatable: true},
	}
}

// DefaultRules returns the built-in attribute rules.
func DefaultRules() []Rule {
	return []Rule{
		{Tag: "a", Attr: "href", Category: CategoryHrefLink},
		{Tag: "link", Attr: "href", Category: CategoryHrefResource},
		{Tag: "img", Attr: "src", Category: CategorySrcImage},
		{Tag: "script", Attr: "src", Category: CategorySrcScript},
	}
}

var (
	prefixRe = regexp.MustCompile(`^[a-z]+$`)
	nameRe   = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// Validate returns an error if the configuration cannot drive an extraction.
func (c *Config) Validate() error {
	if c.Category(CategoryText) == nil {
		return Errorf(EINVALID, "config must define the %q category", CategoryText)
	}

	ids := make(map[string]bool)
	groups := make(map[string]bool)
	prefixes := make(map[string]bool)
	for _, cat := range c.Categories {
		if cat.ID == "" {
			return Errorf(EINVALID, "category id required")
		}
		if cat.Group == "" {
			return Errorf(EINVALID, "category %q group required", cat.ID)
		}
		if !prefixRe.MatchString(cat.Prefix) {
			return Errorf(EINVALID, "category %q prefix %q must be lowercase letters", cat.ID, cat.Prefix)
		}
		if ids[cat.ID] {
			return Errorf(EINVALID, "duplicate category id %q", cat.ID)
		}
		if groups[cat.Group] {
			return Errorf(EINVALID, "duplicate category group %q", cat.Group)
		}
		if prefixes[cat.Prefix] {
			return Errorf(EINVALID, "duplicate category prefix %q", cat.Prefix)
		}
		ids[cat.ID] = true
		groups[cat.Group] = true
		prefixes[cat.Prefix] = true
	}

	for _, r := range c.Rules {
		if !nameRe.MatchString(r.Tag) {
			return Errorf(EINVALID, "rule tag %q is not a valid element name", r.Tag)
		}
		if !nameRe.MatchString(r.Attr) {
			return Errorf(EINVALID, "rule attribute %q is not a valid attribute name", r.Attr)
		}
		if r.Category == CategoryText {
			return Errorf(EINVALID, "rule %s[%s] cannot target the %q category", r.Tag, r.Attr, CategoryText)
		}
		if !ids[r.Category] {
			return Errorf(EINVALID, "rule %s[%s] references unknown category %q", r.Tag, r.Attr, r.Category)
		}
	}
	return nil
}

// Category returns the category with the given ID, or nil.
func (c *Config) Category(id string) *Category {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}

// CategoryByGroup returns the category persisted under the given group name, or nil.
func (c *Config) CategoryByGroup(group string) *Category {
	for i := range c.Categories {
		if c.Categories[i].Group == group {
			return &c.Categories[i]
		}
	}
	return nil
}
