package templify_test

import (
	"testing"

	"github.com/fwojciec/templify"
	"github.com/stretchr/testify/assert"
)

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{{ text_1 }}", templify.Placeholder(templify.VariableName("text", 1)))
	assert.Equal(t, "{{ img_12 }}", templify.Placeholder(templify.VariableName("img", 12)))
}

func TestEscapeQuotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no quotes", in: "Hello", want: "Hello"},
		{name: "quoted word", in: `say "hi"`, want: `say \"hi\"`},
		{name: "escaped quote in source", in: `a \" b`, want: `a \\" b`},
		{name: "single quotes untouched", in: "it's", want: "it's"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := templify.EscapeQuotes(tt.in)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, templify.UnescapeQuotes(got))
		})
	}
}

func TestGroup_AddAndGet(t *testing.T) {
	t.Parallel()

	g := &templify.Group{Name: "text_variables", Category: templify.CategoryText}
	g.Add("text_1", "Hello")
	g.Add("text_2", "World")

	v, ok := g.Get("text_2")
	assert.True(t, ok)
	assert.Equal(t, "World", v)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, templify.CategoryText, g.Entries[0].Category)

	_, ok = g.Get("text_3")
	assert.False(t, ok)
}

func TestResult_EntryCount(t *testing.T) {
	t.Parallel()

	text := &templify.Group{Name: "text_variables"}
	text.Add("text_1", "a")
	link := &templify.Group{Name: "link_variables"}
	link.Add("link_1", "/a")
	link.Add("link_2", "/b")

	r := &templify.Result{Groups: []*templify.Group{text, link, {Name: "image_variables"}}}

	assert.Equal(t, 3, r.EntryCount())
	assert.Same(t, link, r.Group("link_variables"))
	assert.Nil(t, r.Group("missing"))
}
