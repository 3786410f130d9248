package mock

import "github.com/wrlin/tshiau"

var _ tshiau.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of tshiau.Normalizer.
type Normalizer struct {
	NormalizeFn func(text string, dir tshiau.Direction) (string, error)
}

func (n *Normalizer) Normalize(text string, dir tshiau.Direction) (string, error) {
	return n.NormalizeFn(text, dir)
}
