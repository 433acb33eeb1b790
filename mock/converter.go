package mock

import "github.com/hexbenjamin/webster"

var _ webster.Converter = (*Converter)(nil)

// Converter is a mock implementation of webster.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
