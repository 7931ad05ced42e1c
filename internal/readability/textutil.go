package readability

import (
	"strings"

	"github.com/go-shiori/dom"
)

// innerText returns n's concatenated descendant text, trimmed; when
// normalize is true, runs of two-or-more whitespace characters collapse
// to a single space (§4.2).
func innerText(n *Node, normalize bool) string {
	text := dom.TextContent(n)
	text = strings.TrimSpace(text)
	if normalize {
		text = normalizeWhitespaceRegex.ReplaceAllString(text, " ")
	}
	return text
}

// wordCount splits on runs of whitespace (§4.2).
func wordCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(strings.Fields(s))
}

// linkDensity is §4.2's Σ(length(text(a)) × w) / length(text(el)), where
// hash-only anchors (href starting with "#") count at 0.3× weight.
// LinkDensityModifier is deliberately NOT applied here (see SPEC_FULL.md
// Open Question #2) — it only adjusts the §4.6.1 conditional-clean
// cutoffs.
func linkDensity(el *Node) float64 {
	text := innerText(el, false)
	textLen := len(text)
	if textLen == 0 {
		return 0
	}

	var score float64
	for _, a := range dom.GetElementsByTagName(el, "a") {
		href := getAttr(a, "href")
		w := 1.0
		if strings.HasPrefix(href, "#") {
			w = 0.3
		}
		score += float64(len(innerText(a, false))) * w
	}
	return score / float64(textLen)
}

// isWhitespace is true when el's inner text is empty or el is a <br>.
func isWhitespace(el *Node) bool {
	if isTag(el, "br") {
		return true
	}
	if el.Type == nodeText {
		return whitespaceOnlyRegex.MatchString(el.Data)
	}
	return innerText(el, false) == ""
}

// isElementWithoutContent is true when el's trimmed text is empty AND
// (it has no element children, or every element child is <br>/<hr>).
func isElementWithoutContent(el *Node) bool {
	if innerText(el, false) != "" {
		return false
	}
	children := elementChildren(el)
	if len(children) == 0 {
		return true
	}
	for _, c := range children {
		if !isTag(c, "br", "hr") {
			return false
		}
	}
	return true
}

// textSimilarity tokenizes both strings on \W+ (case-folded) and returns
// 1 - len(join(tokens of b not in a)) / len(join(tokens of b)) (§4.2).
func textSimilarity(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)

	inA := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		inA[t] = true
	}

	var uniqueLen, bLen int
	for _, t := range tokensB {
		bLen += len(t)
		if !inA[t] {
			uniqueLen += len(t)
		}
	}
	if bLen == 0 {
		return 0
	}
	return 1 - float64(uniqueLen)/float64(bLen)
}

func tokenize(s string) []string {
	s = strings.ToLower(s)
	parts := tokenizeRegex.Split(s, -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// isValidByline is true when the trimmed string's length is in (0, 100).
func isValidByline(s string) bool {
	n := len(strings.TrimSpace(s))
	return n > 0 && n < 100
}

// isPhrasingContent implements §4.3: text nodes are phrasing, as are
// elements in the fixed phrasingTags set, as are <a>/<del>/<ins> whose
// every child is itself phrasing.
func isPhrasingContent(n *Node) bool {
	if n.Type == nodeText {
		return true
	}
	if n.Type != nodeElement {
		return false
	}
	tag := tagName(n)
	if phrasingTags[tag] {
		return true
	}
	if conditionalPhrasingTags[tag] {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !isPhrasingContent(c) {
				return false
			}
		}
		return true
	}
	return false
}
