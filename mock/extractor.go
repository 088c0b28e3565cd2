package mock

import "github.com/fwojciec/templify"

var _ templify.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of templify.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*templify.Result, error)
}

func (e *Extractor) Extract(html string) (*templify.Result, error) {
	return e.ExtractFn(html)
}
