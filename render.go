package templify

import (
	"regexp"
	"sort"
	"strings"
)

// Renderer expands placeholders in a template from variable groups.
type Renderer interface {
	// Render replaces every placeholder in template with its value.
	// Returns EUNRESOLVED if a placeholder has no value in groups.
	Render(template string, groups []*Group) (string, error)
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-z]+_[0-9]+)\s*\}\}`)

// MergeValues merges groups into a single name to value mapping.
// Groups are merged in order, so a later group overrides names of an earlier one.
// Values of relocatable categories get prefix prepended; text values have their
// quote escaping reversed. The category of a group is found by its name in
// config; a nil config uses DefaultConfig.
func MergeValues(config *Config, prefix string, groups []*Group) map[string]string {
	if config == nil {
		config = DefaultConfig()
	}
	values := make(map[string]string)
	for _, g := range groups {
		cat := config.CategoryByGroup(g.Name)
		for _, e := range g.Entries {
			v := e.Value
			if cat != nil {
				if cat.ID == CategoryText {
					v = UnescapeQuotes(v)
				}
				if cat.Relocatable {
					v = prefix + v
				}
			}
			values[e.Name] = v
		}
	}
	return values
}

// Expand replaces every placeholder in s with the result of fn for its name.
func Expand(s string, fn func(name string) string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		return fn(placeholderRe.FindStringSubmatch(m)[1])
	})
}

// Placeholders returns the variable names referenced by template in order of appearance.
// A name is reported once per occurrence.
func Placeholders(template string) []string {
	matches := placeholderRe.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Unresolved returns the sorted, deduplicated names referenced by template
// that have no entry in values.
func Unresolved(template string, values map[string]string) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, name := range Placeholders(template) {
		if _, ok := values[name]; ok || seen[name] {
			continue
		}
		seen[name] = true
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}

// UnresolvedError returns the EUNRESOLVED error naming missing, or nil.
func UnresolvedError(missing []string) error {
	switch len(missing) {
	case 0:
		return nil
	case 1:
		return Errorf(EUNRESOLVED, "unresolved reference: %s", missing[0])
	default:
		return Errorf(EUNRESOLVED, "unresolved references: %s", strings.Join(missing, ", "))
	}
}
