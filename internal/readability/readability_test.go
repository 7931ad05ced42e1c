package readability_test

import (
	"regexp"
	"strings"
	"testing"

	"extract-html-scraper/internal/readability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, rawHTML string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(rawHTML))
	require.NoError(t, err)
	return doc
}

func TestParse_ExtractsArticleBody(t *testing.T) {
	t.Parallel()

	rawHTML := `<!DOCTYPE html>
<html lang="en">
<head><title>A Long Enough Article Title</title></head>
<body>
<nav><a href="/">Home</a><a href="/about">About</a></nav>
<article>
<h1>A Long Enough Article Title</h1>
<p>This is the first paragraph of a reasonably long article. It talks about
something interesting at length so that the scoring pipeline has enough
text to consider this element a real content candidate, not boilerplate.</p>
<p>This is a second paragraph continuing the discussion with more detail,
again padded out with enough prose that the content scorer assigns this
paragraph and its container a healthy positive content score overall.</p>
</article>
<footer>Copyright 2024</footer>
</body>
</html>`

	opts := readability.DefaultOptions()
	r, err := readability.New(parse(t, rawHTML), opts)
	require.NoError(t, err)

	result, err := r.Parse()
	require.NoError(t, err)

	content, ok := result.Content.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(content, `<div id="readability-page-1" class="page">`))
	assert.Contains(t, content, "first paragraph of a reasonably long article")
	assert.Contains(t, content, "second paragraph continuing the discussion")
	assert.NotContains(t, content, "Copyright 2024")
	assert.Equal(t, "en", result.Lang)
	assert.NotEmpty(t, result.TextContent)
	assert.Greater(t, result.Length, 0)
}

func TestParse_PrefersTitleTag(t *testing.T) {
	t.Parallel()

	rawHTML := `<html><head><title>My Site - Great Article</title></head>
<body><article><p>Short body text that still clears the minimal length bar for a paragraph candidate to score.</p></article></body></html>`

	r, err := readability.New(parse(t, rawHTML), readability.DefaultOptions())
	require.NoError(t, err)

	result, err := r.Parse()
	require.NoError(t, err)
	assert.NotEmpty(t, result.Title)
}

func TestParse_MetadataOnlySkipsExtraction(t *testing.T) {
	t.Parallel()

	rawHTML := `<html><head>
<title>Metadata Only</title>
<meta property="og:site_name" content="Example Site">
</head>
<body><article><p>Some content that would otherwise be scored and returned as the article body text.</p></article></body></html>`

	opts := readability.DefaultOptions()
	opts.Extraction = false

	r, err := readability.New(parse(t, rawHTML), opts)
	require.NoError(t, err)

	result, err := r.Parse()
	require.NoError(t, err)

	assert.Equal(t, "Example Site", result.SiteName)
	assert.Nil(t, result.Content)
	assert.Empty(t, result.TextContent)
}

func TestParse_AbortsWhenOverElementLimit(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 50; i++ {
		b.WriteString("<div><p>padding</p></div>")
	}
	b.WriteString("</body></html>")

	opts := readability.DefaultOptions()
	opts.MaxElemsToParse = 10

	r, err := readability.New(parse(t, b.String()), opts)
	require.NoError(t, err)

	_, err = r.Parse()
	require.Error(t, err)

	var abortErr *readability.AbortError
	require.ErrorAs(t, err, &abortErr)
	assert.Greater(t, abortErr.ElementCount, abortErr.Limit)
}

func TestNew_RejectsNilDocument(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<html><head><title>No Body</title></head></html>")
	// html.Parse always synthesizes a body, so force the failure path by
	// passing nil instead — the condition New actually guards against a
	// missing document handle.
	_, err := readability.New(nil, readability.DefaultOptions())
	require.Error(t, err)
	var invalidErr *readability.InvalidDocumentError
	require.ErrorAs(t, err, &invalidErr)

	// A normally-parsed document, meanwhile, always succeeds.
	_, err = readability.New(doc, readability.DefaultOptions())
	require.NoError(t, err)
}

func TestParse_WrapsArticleInReadabilityPageDiv(t *testing.T) {
	t.Parallel()

	rawHTML := `<html><body>
<p>Lorem ipsum dolor sit amet, consectetur adipiscing elit. Nunc mollis leo lacus, vitae semper nisl ullamcorper ut.</p>
<iframe src="https://mycustomdomain.com/some-embeds"></iframe>
</body></html>`

	opts := readability.DefaultOptions()
	opts.CharThreshold = 20
	opts.AllowedVideoRegex = regexp.MustCompile(`mycustomdomain\.com`)

	r, err := readability.New(parse(t, rawHTML), opts)
	require.NoError(t, err)

	result, err := r.Parse()
	require.NoError(t, err)

	content, ok := result.Content.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(content, `<div id="readability-page-1" class="page">`))
	assert.Contains(t, content, `<iframe src="https://mycustomdomain.com/some-embeds"></iframe>`)
}

func TestParse_SyntheticTopCandidateCarriesPageAttributes(t *testing.T) {
	t.Parallel()

	// Every element in body is an unscorable bare <span>, so no scored
	// candidate exists and selectTopCandidate must synthesize a <div>
	// wrapping all of body's children — per §4.14's special case, the
	// id/class attributes land on that synthetic node directly.
	rawHTML := `<html><body><span>Just some unscored inline text, nothing a paragraph scorer would ever pick up as a candidate on its own merits.</span></body></html>`

	opts := readability.DefaultOptions()
	opts.CharThreshold = 10

	r, err := readability.New(parse(t, rawHTML), opts)
	require.NoError(t, err)

	result, err := r.Parse()
	require.NoError(t, err)

	content, ok := result.Content.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(content, `<div id="readability-page-1" class="page">`))
}

func TestParse_RetryLadderRelaxesFlagsForSparseMarkup(t *testing.T) {
	t.Parallel()

	// The only paragraph sits in a div whose class matches the
	// unlikely-candidates pattern, so the strict first pass drops it,
	// but something should still be extracted once STRIP_UNLIKELYS
	// relaxes.
	rawHTML := `<html><body>
<div class="sidebar-nav-widget">
<p>This paragraph lives inside an element whose class matches the
unlikely-candidates pattern, so the first, strictest attempt should
discard it outright before any relaxed retry gets a chance to keep it
around for scoring purposes.</p>
</div>
</body></html>`

	opts := readability.DefaultOptions()
	opts.CharThreshold = 50

	r, err := readability.New(parse(t, rawHTML), opts)
	require.NoError(t, err)

	result, err := r.Parse()
	require.NoError(t, err)
	assert.NotEmpty(t, result.TextContent)
}
