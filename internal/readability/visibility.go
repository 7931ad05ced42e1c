package readability

import "strings"

// isProbablyVisible implements §4.10: a node is NOT visible when
// aria-modal="true", role="dialog", a hidden attribute is present, an
// inline style sets display:none or visibility:hidden, or
// aria-hidden="true" and the class doesn't contain "fallback-image".
func isProbablyVisible(n *Node) bool {
	if getAttr(n, "aria-modal") == "true" || getAttr(n, "role") == "dialog" {
		return false
	}
	if hasAttr(n, "hidden") {
		return false
	}
	style := getAttr(n, "style")
	if styleHidesNode(style) {
		return false
	}
	if getAttr(n, "aria-hidden") == "true" && !strings.Contains(getAttr(n, "class"), "fallback-image") {
		return false
	}
	return true
}

func styleHidesNode(style string) bool {
	if style == "" {
		return false
	}
	lower := strings.ToLower(style)
	for _, decl := range strings.Split(lower, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "display:none" || decl == "display: none" {
			return true
		}
		if decl == "visibility:hidden" || decl == "visibility: hidden" {
			return true
		}
		if strings.Contains(decl, "display") && strings.Contains(decl, "none") {
			return true
		}
		if strings.Contains(decl, "visibility") && strings.Contains(decl, "hidden") {
			return true
		}
	}
	return false
}
