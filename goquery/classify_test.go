package goquery_test

import (
	"testing"

	"github.com/fwojciec/templify/goquery"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *html.Node
		want goquery.Class
	}{
		{name: "comment", node: &html.Node{Type: html.CommentNode, Data: " note "}, want: goquery.ClassSkip},
		{name: "doctype", node: &html.Node{Type: html.DoctypeNode, Data: "html"}, want: goquery.ClassSkip},
		{name: "text", node: &html.Node{Type: html.TextNode, Data: " Hello "}, want: goquery.ClassCandidate},
		{name: "spaces tabs newlines", node: &html.Node{Type: html.TextNode, Data: " \t\n "}, want: goquery.ClassIgnored},
		{name: "empty text", node: &html.Node{Type: html.TextNode, Data: ""}, want: goquery.ClassIgnored},
		{name: "element", node: &html.Node{Type: html.ElementNode, Data: "p"}, want: goquery.ClassElement},
		{name: "document", node: &html.Node{Type: html.DocumentNode}, want: goquery.ClassElement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, goquery.Classify(tt.node))
		})
	}
}

func TestClass_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "skip", goquery.ClassSkip.String())
	assert.Equal(t, "candidate-text", goquery.ClassCandidate.String())
	assert.Equal(t, "ignored-text", goquery.ClassIgnored.String())
	assert.Equal(t, "element", goquery.ClassElement.String())
}
