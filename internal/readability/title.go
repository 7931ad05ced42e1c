package readability

import (
	"strings"

	"github.com/go-shiori/dom"
)

// getArticleTitle implements §4.11's title heuristic against the
// document's <title> text, falling back to a lone <h1> under the
// documented conditions.
func getArticleTitle(doc *Node) string {
	titleNode := dom.QuerySelector(doc, "title")
	original := ""
	if titleNode != nil {
		original = innerText(titleNode, true)
	}
	current := original

	titleHadHierarchicalSeparator := false

	if titleSeparatorRegex.MatchString(current) {
		titleHadHierarchicalSeparator = titleHierarchySepRegex.MatchString(current)
		current = cutAtSeparator(original, true)
		if wordCount(current) < 3 {
			current = cutAtSeparator(original, false)
		}
	} else if strings.Contains(current, ": ") {
		h1h2 := dom.GetElementsByTagName(doc, "h1")
		h1h2 = append(h1h2, dom.GetElementsByTagName(doc, "h2")...)
		matchesHeading := false
		for _, h := range h1h2 {
			if strings.TrimSpace(innerText(h, true)) == strings.TrimSpace(current) {
				matchesHeading = true
				break
			}
		}
		if !matchesHeading {
			idx := strings.LastIndex(current, ":")
			if idx >= 0 {
				trial := strings.TrimSpace(current[idx+1:])
				if wordCount(trial) < 3 {
					idx2 := strings.Index(current, ":")
					trial = strings.TrimSpace(current[idx2+1:])
				}
				if wordCount(strings.TrimSpace(current[:idx])) > 5 {
					// revert
				} else {
					current = trial
				}
			}
		}
	} else if len(current) < 15 || len(current) > 150 {
		h1s := dom.GetElementsByTagName(doc, "h1")
		if len(h1s) == 1 {
			current = innerText(h1s[0], true)
		}
	}

	current = normalizeWhitespaceRegex.ReplaceAllString(strings.TrimSpace(current), " ")

	curWordCount := wordCount(current)
	if curWordCount <= 4 &&
		(!titleHadHierarchicalSeparator ||
			curWordCount != wordCount(strings.TrimSpace(normalizeWhitespaceRegex.ReplaceAllString(original, " ")))-1) {
		current = normalizeWhitespaceRegex.ReplaceAllString(strings.TrimSpace(original), " ")
	}

	return current
}

// cutAtSeparator splits original on the " | - / > » " style separator
// and keeps the leading side (keepLeading=true) or trailing side.
func cutAtSeparator(original string, keepLeading bool) string {
	loc := titleSeparatorRegex.FindStringIndex(original)
	if loc == nil {
		return original
	}
	if keepLeading {
		return strings.TrimSpace(original[:loc[0]])
	}
	return strings.TrimSpace(original[loc[1]:])
}

// removedDuplicateTitleHeader implements the §4.5 pass-1 rule that
// removes the first H1/H2 whose text is near-duplicate (similarity >
// 0.75) of the already-extracted article title. Only the first such
// header across the whole pass is removed; r.titleHeaderRemoved tracks
// that state for the current grabArticle attempt.
func (r *Readability) removedDuplicateTitleHeader(n *Node) bool {
	if r.titleHeaderRemoved {
		return false
	}
	if !isTag(n, "h1", "h2") {
		return false
	}
	if r.articleTitle == "" {
		return false
	}
	if textSimilarity(r.articleTitle, innerText(n, true)) <= 0.75 {
		return false
	}
	r.titleHeaderRemoved = true
	return true
}
