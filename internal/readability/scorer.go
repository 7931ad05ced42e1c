package readability

import (
	"math"

	"github.com/go-shiori/dom"
)

// prepareCandidates runs §4.5 pass 1: pruning/marking, structural
// rewrites, and collection of scorable paragraphs; then runs pass 2 and
// §4.5.2/§4.5.3 to pick a top candidate and its sibling-augmented
// subtree. It returns the finished article container (always a fresh
// <div>) and whether a synthetic top candidate had to be created.
func (r *Readability) prepareCandidates(articleByline *string) (*Node, bool) {
	ann := newAnnotations()
	bylineFound := false

	var elementsToScore []*Node

	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Type != nodeElement {
			return
		}

		matchString := classAndID(n)

		if !isProbablyVisible(n) {
			dom.RemoveNode(n)
			return
		}

		if !bylineFound && checkByline(n, matchString) {
			*articleByline = innerText(n, true)
			bylineFound = true
			dom.RemoveNode(n)
			return
		}

		if r.removedDuplicateTitleHeader(n) {
			dom.RemoveNode(n)
			return
		}

		if r.flags&flagStripUnlikelys != 0 {
			tag := tagName(n)
			if unlikelyCandidatesRegex.MatchString(matchString) &&
				!maybeCandidateRegex.MatchString(matchString) &&
				!hasAncestorTag(n, "table", -1, nil) &&
				!hasAncestorTag(n, "code", -1, nil) &&
				tag != "body" && tag != "a" {
				dom.RemoveNode(n)
				return
			}
			if unlikelyRoles[getAttr(n, "role")] {
				dom.RemoveNode(n)
				return
			}
		}

		tag := tagName(n)
		if emptyStructuralTags[tag] && isElementWithoutContent(n) {
			dom.RemoveNode(n)
			return
		}

		// The div transform below can rename n to <p> or unwrap it down
		// to its single <p> child (dom.ReplaceNode), so scorableTags is
		// checked against whatever node n ends up being, not the
		// pre-transform one — otherwise a bare <div>text</div> with no
		// element children never reaches the scorable check at all.
		if tag == "div" {
			simplifyDivs(n)
			n = normalizeDiv(n)
			tag = tagName(n)
		}

		if scorableTags[tag] {
			elementsToScore = append(elementsToScore, n)
		}

		// Walk n's live children rather than a pre-transform snapshot:
		// capture the next sibling before recursing since walk(c) may
		// remove c or rewrite its subtree out from under us.
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			walk(c)
			c = next
		}
	}

	body := dom.QuerySelector(r.doc, "body")
	if body == nil {
		body = r.doc
	}
	walk(body)

	for _, el := range elementsToScore {
		scoreParagraph(el, ann, r.flags)
	}

	top, synthetic := r.selectTopCandidate(body, ann)
	article := r.collectSiblings(top, ann, synthetic)
	return article, synthetic
}

// normalizeDiv implements the second half of §4.5 pass 1's per-<div>
// handling: if it has exactly one <p> and the rest is non-content text
// with link density < 0.25, unwrap to that <p>; otherwise, if it has no
// block-level descendant, rename the div itself to <p>. Returns the node
// that should continue to be walked (the unwrapped <p>, or n unchanged).
func normalizeDiv(n *Node) *Node {
	ps := dom.GetElementsByTagName(n, "p")
	if len(ps) == 1 {
		p := ps[0]
		pParent := p.Parent
		if pParent == n {
			// "rest is non-content text": every other direct child node
			// is a whitespace-only text node.
			restIsWhitespace := true
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c == p {
					continue
				}
				if c.Type == nodeText && isWhitespaceTextNode(c) {
					continue
				}
				if c.Type == nodeText && innerText(c, true) == "" {
					continue
				}
				restIsWhitespace = false
				break
			}
			if restIsWhitespace && linkDensity(n) < 0.25 {
				dom.ReplaceNode(p, n)
				return p
			}
		}
	}

	hasBlock := false
	for _, c := range allDescendantElements(n) {
		if blockTags[tagName(c)] {
			hasBlock = true
			break
		}
	}
	if !hasBlock {
		renameTag(n, "p")
	}
	return n
}

func checkByline(n *Node, matchString string) bool {
	if rel := getAttr(n, "rel"); rel == "author" {
		return isValidByline(innerText(n, true))
	}
	if itemprop := getAttr(n, "itemprop"); containsWord(itemprop, "author") {
		return isValidByline(innerText(n, true))
	}
	if bylineRegex.MatchString(matchString) {
		return isValidByline(innerText(n, true))
	}
	return false
}

func containsWord(haystack, word string) bool {
	for _, f := range fields(haystack) {
		if f == word {
			return true
		}
	}
	return false
}

func fields(s string) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

// scoreParagraph implements §4.5 pass 2 for a single scorable element.
func scoreParagraph(el *Node, ann *annotations, flags flag) {
	text := innerText(el, true)
	if len(text) < 25 {
		return
	}
	if len(ancestors(el, -1)) == 0 {
		return
	}

	score := 1.0
	score += float64(countCommaLike(text) + 1)
	score += math.Min(math.Floor(float64(len(text))/100), 3)

	parents := ancestors(el, 5)
	for level, parent := range parents {
		if !ann.hasContentScore(parent) {
			ann.setScore(parent, initialScore(parent, flags))
		}
		var divisor float64
		switch level {
		case 0:
			divisor = 1
		case 1:
			divisor = 2
		default:
			divisor = float64(level) * 3
		}
		ann.setScore(parent, ann.score(parent)+score/divisor)
	}
}

// initialScore implements §4.5.1.
func initialScore(n *Node, flags flag) float64 {
	score := elementInitBase[tagName(n)]
	if flags&flagWeightClasses != 0 {
		score += classWeight(n)
	}
	return score
}

func classWeight(n *Node) float64 {
	var weight float64
	if cls := getAttr(n, "class"); cls != "" {
		if positiveClassRegex.MatchString(cls) {
			weight += 25
		}
		if negativeClassRegex.MatchString(cls) {
			weight -= 25
		}
	}
	if id := getAttr(n, "id"); id != "" {
		if positiveClassRegex.MatchString(id) {
			weight += 25
		}
		if negativeClassRegex.MatchString(id) {
			weight -= 25
		}
	}
	return weight
}
