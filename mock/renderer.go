package mock

import "github.com/wrlin/tshiau"

var _ tshiau.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of tshiau.Renderer.
type Renderer struct {
	RenderFn func(html string) (string, error)
}

func (r *Renderer) Render(html string) (string, error) {
	return r.RenderFn(html)
}
