package mock

import "github.com/fwojciec/templify"

var _ templify.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of templify.Renderer.
type Renderer struct {
	RenderFn func(template string, groups []*templify.Group) (string, error)
}

func (r *Renderer) Render(template string, groups []*templify.Group) (string, error) {
	return r.RenderFn(template, groups)
}
