// Package opencc implements tshiau.Normalizer using the OpenCC dictionaries.
package opencc

import (
	"github.com/longbridgeapp/opencc"
	"github.com/wrlin/tshiau"
)

// Conversion profiles. tw2s maps Taiwanese Traditional to Simplified for
// segmentation; s2twp maps back with Taiwanese phrase variants.
const (
	toSimplifiedProfile  = "tw2s"
	toTraditionalProfile = "s2twp"
)

// Ensure Normalizer implements tshiau.Normalizer at compile time.
var _ tshiau.Normalizer = (*Normalizer)(nil)

// Normalizer converts text between Traditional and Simplified Chinese.
type Normalizer struct {
	toSimplified  *opencc.OpenCC
	toTraditional *opencc.OpenCC
}

// NewNormalizer creates a Normalizer, loading both conversion dictionaries.
func NewNormalizer() (*Normalizer, error) {
	toSimplified, err := opencc.New(toSimplifiedProfile)
	if err != nil {
		return nil, err
	}
	toTraditional, err := opencc.New(toTraditionalProfile)
	if err != nil {
		return nil, err
	}
	return &Normalizer{
		toSimplified:  toSimplified,
		toTraditional: toTraditional,
	}, nil
}

// Normalize converts text in the given direction.
func (n *Normalizer) Normalize(text string, dir tshiau.Direction) (string, error) {
	switch dir {
	case tshiau.ToSimplified:
		return n.toSimplified.Convert(text)
	case tshiau.ToTraditional:
		return n.toTraditional.Convert(text)
	default:
		return "", tshiau.Errorf(tshiau.EINVALID, "unknown conversion direction %d", dir)
	}
}
