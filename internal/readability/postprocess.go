package readability

import (
	"net/url"
	"strings"

	"github.com/go-shiori/dom"
)

// postProcessContent implements §4.13 in full: URL resolution, the
// javascript: link rewrite, srcset rewriting, nested-element
// simplification and class cleaning.
func (r *Readability) postProcessContent(article *Node) {
	if r.opts.BaseURI != nil {
		resolveURLs(article, r.opts.BaseURI)
	}
	simplifyNestedElements(article)
	if !r.opts.KeepClasses {
		cleanClasses(article, r.classesToPreserve())
	}
}

func (r *Readability) classesToPreserve() map[string]bool {
	set := make(map[string]bool)
	for _, c := range r.opts.ClassesToPreserve {
		set[c] = true
	}
	return set
}

// resolveURLs resolves href/src/poster against base and rewrites
// javascript: links and srcset attributes.
func resolveURLs(root *Node, base *url.URL) {
	for _, attrName := range []string{"href", "src", "poster"} {
		for _, el := range elementsWithAttr(root, attrName) {
			v := getAttr(el, attrName)
			if v == "" {
				continue
			}
			if attrName == "href" && strings.HasPrefix(strings.ToLower(strings.TrimSpace(v)), "javascript:") {
				replaceJavascriptLink(el)
				continue
			}
			if abs := resolveAgainst(base, v); abs != "" {
				setAttr(el, attrName, abs)
			}
		}
	}

	for _, el := range elementsWithAttr(root, "srcset") {
		v := getAttr(el, "srcset")
		if v == "" {
			continue
		}
		rewritten := srcsetEntryRegex.ReplaceAllStringFunc(v, func(m string) string {
			sub := srcsetEntryRegex.FindStringSubmatch(m)
			if sub == nil {
				return m
			}
			abs := resolveAgainst(base, sub[1])
			if abs == "" {
				abs = sub[1]
			}
			return abs + sub[2] + sub[3]
		})
		setAttr(el, "srcset", rewritten)
	}
}

func resolveAgainst(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

func elementsWithAttr(root *Node, attr string) []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Type == nodeElement && hasAttr(n, attr) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// replaceJavascriptLink implements §4.13's "for javascript: links,
// replace the anchor with its text if single text child, else with a
// <span> wrapping its children".
func replaceJavascriptLink(a *Node) {
	if a.FirstChild != nil && a.FirstChild == a.LastChild && a.FirstChild.Type == nodeText {
		textNode := dom.CreateTextNode(a.FirstChild.Data)
		dom.ReplaceNode(textNode, a)
		return
	}
	span := dom.CreateElement("span")
	dom.ReplaceNode(span, a)
	for c := a.FirstChild; c != nil; {
		next := c.NextSibling
		dom.RemoveNode(c)
		dom.AppendChild(span, c)
		c = next
	}
}

// simplifyNestedElements implements §4.13's div/section simplification:
// for each such element whose id doesn't start with "readability",
// remove it if empty, else collapse it into its sole div/section child
// when it has no text content of its own.
func simplifyNestedElements(root *Node) {
	node := root
	for node != nil {
		if (isTag(node, "div") || isTag(node, "section")) && !strings.HasPrefix(getAttr(node, "id"), "readability") {
			if isElementWithoutContent(node) {
				next := nextNode(node, true)
				dom.RemoveNode(node)
				node = next
				continue
			}
			children := elementChildren(node)
			if len(children) == 1 && (isTag(children[0], "div") || isTag(children[0], "section")) {
				ownText := directTextContent(node)
				if strings.TrimSpace(ownText) == "" {
					child := children[0]
					for _, attr := range dom.Attributes(node) {
						if !hasAttr(child, attr.Key) {
							setAttr(child, attr.Key, attr.Val)
						}
					}
					dom.ReplaceNode(child, node)
					node = child
					continue
				}
			}
		}
		node = nextNode(node, false)
	}
}

func directTextContent(n *Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nodeText {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// cleanClasses implements §4.13's class cleaning: keep only classes in
// preserve, recursing over the whole subtree.
func cleanClasses(root *Node, preserve map[string]bool) {
	if root.Type == nodeElement {
		cls := getAttr(root, "class")
		if cls != "" {
			var kept []string
			for _, c := range strings.Fields(cls) {
				if preserve[c] {
					kept = append(kept, c)
				}
			}
			if len(kept) > 0 {
				setAttr(root, "class", strings.Join(kept, " "))
			} else {
				removeAttr(root, "class")
			}
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		cleanClasses(c, preserve)
	}
}
