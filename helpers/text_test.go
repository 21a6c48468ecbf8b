package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a\n\tb   c "))
	assert.Equal(t, "", CollapseWhitespace(" \n\t "))
}

func TestCleanHTMLStripsTags(t *testing.T) {
	got := CleanHTML("<p>පළමු   ඡේදය</p><p>දෙවන ඡේදය</p>")
	assert.Equal(t, "පළමු ඡේදය දෙවන ඡේදය", got)
}

func TestCleanHTMLDecodesEntities(t *testing.T) {
	got := CleanHTML("<p>A &amp; B&nbsp;&quot;C&quot;</p>")
	assert.Equal(t, `A & B "C"`, got)
}

func TestCleanHTMLDropsScripts(t *testing.T) {
	got := CleanHTML(`<div><script>alert("x")</script><style>p{}</style><p>text</p></div>`)
	assert.Equal(t, "text", got)
}
