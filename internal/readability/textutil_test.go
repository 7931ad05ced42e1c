package readability

import (
	"strings"
	"testing"

	"github.com/go-shiori/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func mustParseFragment(t *testing.T, fragment string) *Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	require.NoError(t, err)
	body := dom.QuerySelector(doc, "body")
	require.NotNil(t, body)
	return firstElementChild(body)
}

func TestLinkDensity(t *testing.T) {
	t.Parallel()

	el := mustParseFragment(t, `<div>some text <a href="/x">a link</a> more text</div>`)
	density := linkDensity(el)
	assert.Greater(t, density, 0.0)
	assert.Less(t, density, 1.0)
}

func TestLinkDensity_HashAnchorWeightedLower(t *testing.T) {
	t.Parallel()

	hashLink := mustParseFragment(t, `<div>padding text here and there <a href="#top">jump to top</a></div>`)
	realLink := mustParseFragment(t, `<div>padding text here and there <a href="/top">jump to top</a></div>`)

	assert.Less(t, linkDensity(hashLink), linkDensity(realLink))
}

func TestTextSimilarity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, textSimilarity("hello world", "hello world"))
	assert.Less(t, textSimilarity("hello world", "goodbye moon"), 0.5)
}

func TestClassWeight(t *testing.T) {
	t.Parallel()

	positive := mustParseFragment(t, `<div class="article-content"><p>x</p></div>`)
	negative := mustParseFragment(t, `<div class="sidebar-widget"><p>x</p></div>`)

	assert.Greater(t, classWeight(positive), 0.0)
	assert.Less(t, classWeight(negative), 0.0)
}

func TestIsElementWithoutContent(t *testing.T) {
	t.Parallel()

	empty := mustParseFragment(t, `<div>   <br><hr>  </div>`)
	nonEmpty := mustParseFragment(t, `<div>text</div>`)

	assert.True(t, isElementWithoutContent(empty))
	assert.False(t, isElementWithoutContent(nonEmpty))
}

func TestWordCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, wordCount("   "))
	assert.Equal(t, 3, wordCount("one two three"))
}
