package readability

import (
	"encoding/base64"
	"strings"

	"github.com/go-shiori/dom"
)

// fixLazyImages implements §4.9 for every <img>, <picture> and <figure>
// in root.
func fixLazyImages(root *Node) {
	for _, tag := range []string{"img", "picture", "figure"} {
		for _, el := range dom.GetElementsByTagName(root, tag) {
			fixLazyImage(el)
		}
	}
}

func fixLazyImage(el *Node) {
	src := getAttr(el, "src")
	if src != "" {
		if m := base64DataURLRegex.FindStringSubmatch(src); m != nil && !strings.EqualFold(m[1], "image/svg+xml") {
			if hasSiblingAttrReferencingImage(el) {
				if payloadTooSmall(src) {
					removeAttr(el, "src")
				}
			}
		}
	}

	for _, attr := range dom.Attributes(el) {
		name := strings.ToLower(attr.Key)
		if name == "src" || name == "srcset" || name == "alt" {
			continue
		}
		value := attr.Val

		if srcsetCandidateRegex.MatchString(value) {
			setAttr(el, "srcset", value)
			continue
		}
		if singleImageURLRegex.MatchString(value) {
			setAttr(el, "src", value)
			if tagName(el) == "figure" && !hasImageChild(el) {
				img := dom.CreateElement("img")
				setAttr(img, "src", value)
				dom.AppendChild(el, img)
			}
		}
	}
}

func hasSiblingAttrReferencingImage(el *Node) bool {
	for _, attr := range dom.Attributes(el) {
		name := strings.ToLower(attr.Key)
		if name == "src" {
			continue
		}
		if imageExtRegex.MatchString(attr.Val) {
			return true
		}
	}
	return false
}

// payloadTooSmall reports whether src's base64 payload decodes to fewer
// than 133 bytes.
func payloadTooSmall(src string) bool {
	idx := strings.Index(src, "base64,")
	if idx < 0 {
		return false
	}
	payload := src[idx+len("base64,"):]
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Lenient decode: padding is sometimes missing in the wild.
		decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return false
		}
	}
	return len(decoded) < 133
}

func hasImageChild(el *Node) bool {
	for _, c := range elementChildren(el) {
		if isTag(c, "img") {
			return true
		}
	}
	return false
}
