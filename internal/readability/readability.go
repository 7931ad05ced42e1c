package readability

import (
	"strings"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Result is the §3 Result record: everything a successful Parse
// produces about one document.
type Result struct {
	Title         string
	Byline        string
	Dir           string
	Lang          string
	SiteName      string
	PublishedTime string
	Excerpt       string

	// Content is the serialized article subtree. Its concrete type is
	// whatever Options.Serializer returns; the default serializer
	// yields an HTML string.
	Content any

	TextContent string
	Length      int
}

// Readability holds the per-Parse-call state threaded through the
// pipeline in scorer.go, siblings.go, title.go, metadata.go and
// prepare.go.
type Readability struct {
	doc  *Node
	opts Options

	flags flag
	ann   *annotations

	articleTitle       string
	titleHeaderRemoved bool
}

// New validates doc and opts and returns a Readability ready to Parse.
// It fails when the document handle is absent or lacks a <body>.
func New(doc *Node, opts Options) (*Readability, error) {
	if doc == nil {
		return nil, &InvalidDocumentError{Reason: "document is nil"}
	}
	if dom.QuerySelector(doc, "body") == nil {
		return nil, &InvalidDocumentError{Reason: "document has no body element"}
	}
	return &Readability{doc: doc, opts: opts}, nil
}

func (r *Readability) debugf(format string, args ...any) {
	if !r.opts.Debug || r.opts.Logger == nil {
		return
	}
	r.opts.Logger(format, args...)
}

// Parse runs the full §4.14 pipeline: element-count guard, metadata
// extraction, pre-pass transforms, the three-flag retry ladder over
// candidate scoring, article preparation, post-processing and result
// assembly.
func (r *Readability) Parse() (*Result, error) {
	elementCount := countElements(r.doc)
	if r.opts.MaxElemsToParse > 0 && elementCount > r.opts.MaxElemsToParse {
		return nil, &AbortError{ElementCount: elementCount, Limit: r.opts.MaxElemsToParse}
	}

	md := r.extractMetadata(r.doc)
	r.articleTitle = md.Title

	stripUnwantedNodes(r.doc)
	replaceFontTags(r.doc)
	replaceBrs(r.doc)

	lang := getAttr(dom.QuerySelector(r.doc, "html"), "lang")

	result := &Result{
		Title:         md.Title,
		Byline:        md.Byline,
		SiteName:      md.SiteName,
		PublishedTime: md.PublishedTime,
		Excerpt:       md.Excerpt,
		Lang:          lang,
	}

	if !r.opts.Extraction {
		result.Excerpt = ""
		return result, nil
	}

	body := dom.QuerySelector(r.doc, "body")
	threshold := r.opts.CharThreshold
	if threshold <= 0 {
		threshold = 500
	}

	var byline string
	var best *Node
	bestLength := -1
	var bestByline string
	var bestDir string

	r.flags = defaultFlags

	for attempt := 0; ; attempt++ {
		snapshot := dom.InnerHTML(body)
		byline = ""
		r.titleHeaderRemoved = false

		// prepareCandidates/collectSiblings already stamp the returned
		// subtree with id="readability-page-1" class="page" (on the
		// synthetic top candidate itself when one had to be created,
		// per §4.14's special case); synthetic only needs to reach as
		// far as this debug line.
		article, synthetic := r.prepareCandidates(&byline)
		r.ann = newAnnotations()
		r.prepareArticle(article)

		textContent := innerText(article, true)
		if len(textContent) > bestLength {
			best = article
			bestLength = len(textContent)
			bestByline = byline
			bestDir = articleDirection(article)
			r.debugf("attempt %d: new best candidate, %d chars, synthetic=%v", attempt, bestLength, synthetic)
		}

		if len(textContent) >= threshold {
			break
		}

		next, ok := relaxNextFlag(r.flags)
		if err := restoreBody(body, snapshot); err != nil {
			r.debugf("retry: failed to restore body snapshot: %v", err)
			break
		}
		if !ok {
			break
		}
		r.flags = next
		r.debugf("retry %d: relaxed flags to %b, best so far %d chars", attempt+1, r.flags, bestLength)
	}

	if best == nil || bestLength == 0 {
		return nil, &UnparsableContentError{BestLength: bestLength, Threshold: threshold}
	}

	r.postProcessContent(best)

	result.Byline = md.Byline
	if result.Byline == "" {
		result.Byline = bestByline
	}
	result.Dir = bestDir
	result.TextContent = innerText(best, true)
	result.Length = len(result.TextContent)
	if result.Excerpt == "" {
		result.Excerpt = firstParagraphExcerpt(best)
	}

	serialize := r.opts.Serializer
	if serialize == nil {
		serialize = defaultSerializer
	}
	result.Content = serialize(best)

	return result, nil
}

func defaultSerializer(n *Node) any {
	return dom.OuterHTML(n)
}

// relaxNextFlag implements the 3-flag retry ladder: clear
// STRIP_UNLIKELYS first, then WEIGHT_CLASSES, then
// CLEAN_CONDITIONALLY. Returns ok=false once all three are cleared.
func relaxNextFlag(flags flag) (flag, bool) {
	switch {
	case flags&flagStripUnlikelys != 0:
		return flags &^ flagStripUnlikelys, true
	case flags&flagWeightClasses != 0:
		return flags &^ flagWeightClasses, true
	case flags&flagCleanConditionally != 0:
		return flags &^ flagCleanConditionally, true
	default:
		return flags, false
	}
}

// articleDirection implements the §4.14 direction-detection step: scan
// the top candidate itself, then its ancestors, for a dir attribute.
func articleDirection(article *Node) string {
	if d := getAttr(article, "dir"); d != "" {
		return d
	}
	for _, a := range ancestors(article, -1) {
		if d := getAttr(a, "dir"); d != "" {
			return d
		}
	}
	return ""
}

// firstParagraphExcerpt is the §4.11 excerpt fallback used when neither
// JSON-LD nor a meta description supplied one: the trimmed text of the
// article's first paragraph-shaped node.
func firstParagraphExcerpt(article *Node) string {
	for _, p := range dom.GetElementsByTagName(article, "p") {
		if text := innerText(p, true); text != "" {
			return text
		}
	}
	return innerText(article, true)
}

func countElements(n *Node) int {
	count := 0
	if n.Type == nodeElement {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countElements(c)
	}
	return count
}

// restoreBody replaces body's children with a fresh parse of
// htmlStr, using body itself as the fragment-parsing context so
// table/list/etc. content parses under the right insertion-mode rules.
func restoreBody(body *Node, htmlStr string) error {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(htmlStr), context)
	if err != nil {
		return err
	}
	for c := body.FirstChild; c != nil; {
		next := c.NextSibling
		dom.RemoveNode(c)
		c = next
	}
	for _, n := range nodes {
		dom.AppendChild(body, n)
	}
	return nil
}
