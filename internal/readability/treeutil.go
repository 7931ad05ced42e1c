// Package readability implements the heuristic article-extraction engine:
// given a parsed HTML tree it selects the subtree most likely to hold the
// article body, augments it with related siblings, cleans it, and emits
// both an HTML and a plain-text form plus metadata (title, byline,
// excerpt, site name, language, direction, published time).
package readability

import (
	"strings"

	"github.com/go-shiori/dom"
	"golang.org/x/net/html/atom"
)

// tagName lowercases for comparison; element tag names already come out
// lowercase from the x/net/html tokenizer, but comparisons stay explicit
// since callers sometimes hold attribute-derived strings too.
func tagName(n *Node) string {
	if n == nil || n.Type != nodeElement {
		return ""
	}
	return strings.ToLower(dom.TagName(n))
}

func isElement(n *Node) bool { return n != nil && n.Type == nodeElement }
func isText(n *Node) bool    { return n != nil && n.Type == nodeText }

func isTag(n *Node, tags ...string) bool {
	if !isElement(n) {
		return false
	}
	t := tagName(n)
	for _, want := range tags {
		if t == want {
			return true
		}
	}
	return false
}

// nextNode is the depth-first "next node" walk of §4.1: first element
// child, else next sibling, else climb parents to their next sibling.
// ignoreSelfAndKids, when true, skips straight to sibling/ancestor
// traversal without descending into n's children (the "skip subtree"
// variant used after removing or replacing n).
func nextNode(n *Node, ignoreSelfAndKids bool) *Node {
	if n == nil {
		return nil
	}
	if !ignoreSelfAndKids && firstElementChild(n) != nil {
		return firstElementChild(n)
	}
	for {
		if sib := nextElementSiblingRaw(n); sib != nil {
			return sib
		}
		n = n.Parent
		if n == nil {
			return nil
		}
	}
}

func firstElementChild(n *Node) *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nodeElement {
			return c
		}
	}
	return nil
}

func lastElementChild(n *Node) *Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == nodeElement {
			return c
		}
	}
	return nil
}

// nextElementSiblingRaw walks n's own sibling chain, not n's parent's.
func nextElementSiblingRaw(n *Node) *Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == nodeElement {
			return s
		}
	}
	return nil
}

func previousElementSibling(n *Node) *Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == nodeElement {
			return s
		}
	}
	return nil
}

// nextNonWhitespaceNode skips text nodes whose data is entirely
// whitespace, walking plain sibling links (not the full next-node walk).
func nextNonWhitespaceNode(n *Node) *Node {
	for s := n; s != nil; s = s.NextSibling {
		if s.Type == nodeText && whitespaceOnlyRegex.MatchString(s.Data) {
			continue
		}
		return s
	}
	return nil
}

func isWhitespaceTextNode(n *Node) bool {
	return n != nil && n.Type == nodeText && whitespaceOnlyRegex.MatchString(n.Data)
}

// ancestors returns up to maxDepth enclosing elements of n, nearest
// first. A negative maxDepth means unlimited.
func ancestors(n *Node, maxDepth int) []*Node {
	var out []*Node
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != nodeElement {
			continue
		}
		out = append(out, p)
		depth++
		if maxDepth >= 0 && depth >= maxDepth {
			break
		}
	}
	return out
}

// hasAncestorTag climbs up at most maxDepth ancestors (negative =
// unlimited) and reports whether any matches tag and, if filter is
// non-nil, also satisfies filter.
func hasAncestorTag(n *Node, tag string, maxDepth int, filter func(*Node) bool) bool {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if maxDepth >= 0 && depth >= maxDepth {
			return false
		}
		if p.Type == nodeElement && tagName(p) == tag {
			if filter == nil || filter(p) {
				return true
			}
		}
		depth++
	}
	return false
}

// removeNodes deletes every node in nodes that satisfies filter
// (or all of them, if filter is nil), iterating in reverse so removal
// never invalidates the remaining indices (§4.1).
func removeNodes(nodes []*Node, filter func(*Node) bool) {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if filter == nil || filter(n) {
			if n.Parent != nil {
				dom.RemoveNode(n)
			}
		}
	}
}

// renameTag changes n's tag name in place; attributes and children are
// preserved because the node's Data and DataAtom are rewritten directly
// rather than a replacement node being constructed.
func renameTag(n *Node, newTag string) {
	if n == nil || n.Type != nodeElement {
		return
	}
	n.Data = newTag
	n.DataAtom = atom.Lookup([]byte(newTag))
}

// elementChildren returns n's element children, in document order.
func elementChildren(n *Node) []*Node {
	return dom.Children(n)
}

// childNodes returns all of n's direct children (elements, text,
// comments) in document order.
func childNodes(n *Node) []*Node {
	return dom.ChildNodes(n)
}

func getAttr(n *Node, name string) string {
	return dom.GetAttribute(n, name)
}

func hasAttr(n *Node, name string) bool {
	return dom.HasAttribute(n, name)
}

func setAttr(n *Node, name, value string) {
	dom.SetAttribute(n, name, value)
}

func removeAttr(n *Node, name string) {
	dom.RemoveAttribute(n, name)
}

func classAndID(n *Node) string {
	return getAttr(n, "class") + " " + getAttr(n, "id")
}
