package readability

import (
	"github.com/go-shiori/dom"
)

// stripUnwantedNodes removes all comments, doctype (directive) nodes,
// <script>, <noscript> and <style> nodes from root. net/html has no
// CDATA node kind, so CDATA content that was parsed as text stays. Scripts
// must be removed after JSON-LD extraction since JSON-LD blocks live
// inside <script type="application/ld+json"> (§4.4, §4.14).
func stripUnwantedNodes(root *Node) {
	var toRemove []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n != root && (n.Type == nodeComment || n.Type == nodeDoctype) {
			toRemove = append(toRemove, n)
			return
		}
		if isTag(n, "script", "noscript", "style") {
			toRemove = append(toRemove, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	removeNodes(toRemove, nil)
}

// replaceFontTags turns every <font> into <span>, preserving attributes
// and children (§4.4).
func replaceFontTags(root *Node) {
	for _, f := range dom.GetElementsByTagName(root, "font") {
		renameTag(f, "span")
	}
}

// replaceBrs implements the <br><br> → <p> transform of §4.4: for each
// <br>, skip whitespace; if the next element is also a <br>, remove the
// following <br>s of the run, replace the first <br> with a new <p> and
// migrate following phrasing-content siblings into it until another
// <br><br> run or a non-phrasing element is hit. A lone <br> is left as
// it is. Trailing whitespace children of the new <p> are trimmed. If
// the enclosing parent is itself a <p>, that parent is renamed to <div>.
func replaceBrs(root *Node) {
	for _, br := range dom.GetElementsByTagName(root, "br") {
		next := nextNonWhitespaceNode(br.NextSibling)
		replaced := false
		for next != nil && isTag(next, "br") {
			replaced = true
			after := nextNonWhitespaceNode(next.NextSibling)
			dom.RemoveNode(next)
			next = after
		}
		if !replaced {
			continue
		}

		p := dom.CreateElement("p")
		parent := br.Parent
		if parent == nil {
			continue
		}
		dom.ReplaceNode(p, br)

		next = p.NextSibling
		for next != nil {
			if isTag(next, "br") {
				nn := nextNonWhitespaceNode(next.NextSibling)
				if isTag(nn, "br") {
					break
				}
			}
			if !isPhrasingContent(next) {
				break
			}
			sibling := next.NextSibling
			dom.RemoveNode(next)
			dom.AppendChild(p, next)
			next = sibling
		}

		for p.LastChild != nil && isWhitespaceTextNode(p.LastChild) {
			dom.RemoveNode(p.LastChild)
		}

		if isTag(parent, "p") {
			renameTag(parent, "div")
		}
	}
}

// simplifyDivs wraps contiguous runs of phrasing children of div in a
// synthesized <p> (§4.4 "div-phrasing wrap"). Whitespace-only leading
// nodes never open a new <p>; trailing whitespace children of an open
// <p> are dropped when the run ends.
func simplifyDivs(div *Node) {
	var p *Node
	child := div.FirstChild
	for child != nil {
		next := child.NextSibling
		if isPhrasingContent(child) {
			if isWhitespaceTextNode(child) && p == nil {
				child = next
				continue
			}
			if p == nil {
				p = dom.CreateElement("p")
				dom.ReplaceNode(p, child)
				dom.AppendChild(p, child)
			} else {
				dom.RemoveNode(child)
				dom.AppendChild(p, child)
			}
		} else {
			if p != nil {
				for p.LastChild != nil && isWhitespaceTextNode(p.LastChild) {
					dom.RemoveNode(p.LastChild)
				}
			}
			p = nil
		}
		child = next
	}
	if p != nil {
		for p.LastChild != nil && isWhitespaceTextNode(p.LastChild) {
			dom.RemoveNode(p.LastChild)
		}
	}
}
