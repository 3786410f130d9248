package htmltomarkdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrlin/tshiau"
	"github.com/wrlin/tshiau/htmltomarkdown"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts an ordered list of senses", func(t *testing.T) {
		t.Parallel()

		html := `<ol><li>相借問、問候。</li><li>平安、安康。</li></ol>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "相借問、問候。")
		assert.Contains(t, md, "平安、安康。")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="https://sutian.moe.edu.tw/">the dictionary</a>.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[the dictionary](https://sutian.moe.edu.tw/)")
	})

	t.Run("collapses blank lines between list items", func(t *testing.T) {
		t.Parallel()

		html := `<ol><li><p>First</p></li><li><p>Second</p></li></ol>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.NotContains(t, md, "\n\n")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, tshiau.EINVALID, tshiau.ErrorCode(err))
	})
}
