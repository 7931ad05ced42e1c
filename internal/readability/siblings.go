package readability

import (
	"github.com/go-shiori/dom"
)

// candidateScore pairs a scored ancestor with its link-density-adjusted
// score (§4.5.2).
type candidateScore struct {
	node  *Node
	score float64
}

// selectTopCandidate implements §4.5.2. It returns the chosen top
// candidate and whether it was synthesized (no scored candidate existed,
// or the highest-scoring one was <body>).
func (r *Readability) selectTopCandidate(body *Node, ann *annotations) (*Node, bool) {
	var candidates []candidateScore
	for n, scored := range ann.hasScore {
		if !scored {
			continue
		}
		adjusted := ann.score(n) * (1 - linkDensity(n))
		candidates = append(candidates, candidateScore{n, adjusted})
	}

	// Keep the top NbTopCandidates by descending adjusted score.
	n := r.opts.NbTopCandidates
	if n <= 0 {
		n = 5
	}
	sortCandidatesDesc(candidates)
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	if len(candidates) == 0 || isTag(candidates[0].node, "body") {
		div := dom.CreateElement("div")
		for _, c := range elementChildren(body) {
			dom.RemoveNode(c)
			dom.AppendChild(div, c)
		}
		// Any remaining non-element children (stray text) also move over.
		for c := body.FirstChild; c != nil; {
			next := c.NextSibling
			dom.RemoveNode(c)
			dom.AppendChild(div, c)
			c = next
		}
		dom.AppendChild(body, div)
		ann.setScore(div, initialScore(div, r.flags))
		return div, true
	}

	top := candidates[0].node

	// Ancestor-chain promotion: walking top's parent chain (excluding
	// body), promote a parent if at least 3 of the other high-scoring
	// candidates' ancestor chains contain it.
	threshold75 := candidates[0].score * 0.75
	chainCounts := make(map[*Node]int)
	for _, c := range candidates[1:] {
		if c.score < threshold75 {
			continue
		}
		seen := make(map[*Node]bool)
		for p := c.node.Parent; p != nil && !isTag(p, "body"); p = p.Parent {
			if p.Type != nodeElement || seen[p] {
				continue
			}
			seen[p] = true
			chainCounts[p]++
		}
	}
	for p := top.Parent; p != nil && !isTag(p, "body"); p = p.Parent {
		if p.Type != nodeElement {
			continue
		}
		if chainCounts[p] >= 3 {
			top = p
			break
		}
	}

	// Parent-score promotion: walk up while the parent has a
	// contentScore and keeps climbing relative to a decaying threshold.
	if ann.hasContentScore(top.Parent) {
		parent := top.Parent
		lastScore := ann.score(top)
		scoreThreshold := lastScore / 3
		for parent != nil && !isTag(parent, "body") {
			if !ann.hasContentScore(parent) {
				parent = parent.Parent
				continue
			}
			if ann.score(parent) < scoreThreshold {
				break
			}
			if ann.score(parent) > lastScore {
				top = parent
				break
			}
			lastScore = ann.score(parent)
			scoreThreshold = lastScore / 3
			parent = parent.Parent
		}
	}

	// Single-child climb: while top's parent (not body) has exactly one
	// child element, promote the parent.
	for top.Parent != nil && !isTag(top.Parent, "body") {
		if len(elementChildren(top.Parent)) != 1 {
			break
		}
		top = top.Parent
	}

	if !ann.hasContentScore(top) {
		ann.setScore(top, initialScore(top, r.flags))
	}

	return top, false
}

func sortCandidatesDesc(c []candidateScore) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].score > c[j-1].score; j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

// collectSiblings implements §4.5.3: starting from top's parent, append
// adjacent siblings meeting the relatedness thresholds into a fresh
// article <div>. Per §4.14, the returned subtree carries
// id="readability-page-1" class="page"; when top was synthesized by
// selectTopCandidate (it already holds every node moved out of body),
// those attributes go on top itself instead of on a second wrapper.
func (r *Readability) collectSiblings(top *Node, ann *annotations, synthetic bool) *Node {
	if synthetic {
		setAttr(top, "id", "readability-page-1")
		setAttr(top, "class", "page")
		return top
	}

	article := dom.CreateElement("div")
	setAttr(article, "id", "readability-page-1")
	setAttr(article, "class", "page")

	parent := top.Parent
	if parent == nil {
		dom.AppendChild(article, top)
		return article
	}

	topScore := ann.score(top)
	threshold := topScore * 0.2
	if threshold < 10 {
		threshold = 10
	}

	topClass := getAttr(top, "class")

	siblings := elementChildren(parent)
	for _, sibling := range siblings {
		if sibling.Parent != parent {
			// Already moved by a previous append in this loop.
			continue
		}

		append_ := false
		switch {
		case sibling == top:
			append_ = true
		case ann.hasContentScore(sibling):
			bonus := 0.0
			sc := getAttr(sibling, "class")
			if sc != "" && topClass != "" && sc == topClass {
				bonus = 0.2 * topScore
			}
			if ann.score(sibling)+bonus >= threshold {
				append_ = true
			}
		case isTag(sibling, "p"):
			text := innerText(sibling, true)
			ld := linkDensity(sibling)
			if len(text) > 80 && ld < 0.25 {
				append_ = true
			} else if len(text) > 0 && len(text) < 80 && ld == 0 && sentenceEndRegex.MatchString(text) {
				append_ = true
			}
		}

		if !append_ {
			continue
		}

		if !siblingAllowedTags[tagName(sibling)] {
			renameTag(sibling, "div")
		}
		dom.RemoveNode(sibling)
		dom.AppendChild(article, sibling)
	}

	return article
}
