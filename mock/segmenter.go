package mock

import "github.com/wrlin/tshiau"

var _ tshiau.Segmenter = (*Segmenter)(nil)

// Segmenter is a mock implementation of tshiau.Segmenter.
type Segmenter struct {
	SegmentFn func(text string) ([]tshiau.Unit, error)
}

func (s *Segmenter) Segment(text string) ([]tshiau.Unit, error) {
	return s.SegmentFn(text)
}
