package readability

import (
	"github.com/go-shiori/dom"
)

// prepareArticle runs the §4.6 cleaning pipeline, in order, over the
// collected article subtree.
func (r *Readability) prepareArticle(article *Node) {
	cleanStyles(article)
	markDataTables(article, r.ann)
	fixLazyImages(article)
	r.cleanConditionally(article, "form")
	r.cleanConditionally(article, "fieldset")
	r.removeEmbedsExceptVideo(article)
	r.cleanShareElements(article)
	r.removeInputsEtc(article)
	removeLowWeightHeadings(article)
	r.cleanConditionally(article, "table")
	r.cleanConditionally(article, "ul")
	r.cleanConditionally(article, "div")
	renameH1ToH2(article)
	removeEmptyParagraphs(article)
	removeBrBeforeP(article)
	collapseSingleCellTables(article)
}

// cleanStyles implements §4.6 step 1: strip presentational attributes
// recursively (skipping <svg> subtrees), plus width/height everywhere
// except the dimensionAllowedTags set.
func cleanStyles(root *Node) {
	if isTag(root, "svg") {
		return
	}
	if root.Type == nodeElement {
		for _, a := range presentationalAttrs {
			removeAttr(root, a)
		}
		if !dimensionAllowedTags[tagName(root)] {
			removeAttr(root, "width")
			removeAttr(root, "height")
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		cleanStyles(c)
	}
}

// removeEmbedsExceptVideo implements §4.6 step 5: drop object, embed,
// footer, link, aside, keeping any that reference an allowed video host.
func (r *Readability) removeEmbedsExceptVideo(article *Node) {
	for _, tag := range []string{"object", "embed", "footer", "link", "aside"} {
		var toRemove []*Node
		for _, el := range dom.GetElementsByTagName(article, tag) {
			if r.isAllowedVideoEmbed(el) {
				continue
			}
			toRemove = append(toRemove, el)
		}
		removeNodes(toRemove, nil)
	}
}

func (r *Readability) isAllowedVideoEmbed(el *Node) bool {
	re := r.opts.AllowedVideoRegex
	if re == nil {
		re = defaultAllowedVideoRegex
	}
	for _, attr := range dom.Attributes(el) {
		if re.MatchString(attr.Val) {
			return true
		}
	}
	if tagName(el) == "object" && re.MatchString(dom.InnerHTML(el)) {
		return true
	}
	return false
}

// cleanShareElements implements §4.6 step 6: for each direct child of
// the subtree, delete descendant elements whose class+id matches the
// share-elements regex and whose text is shorter than CharThreshold.
// CharThreshold is reused verbatim here per SPEC_FULL.md Open Question 1.
func (r *Readability) cleanShareElements(article *Node) {
	for _, child := range elementChildren(article) {
		var toRemove []*Node
		candidates := allDescendantElements(child)
		for _, el := range candidates {
			if el.Type != nodeElement {
				continue
			}
			if shareElementsRegex.MatchString(classAndID(el)) && len(innerText(el, true)) < r.opts.CharThreshold {
				toRemove = append(toRemove, el)
			}
		}
		removeNodes(toRemove, nil)
	}
}

// removeInputsEtc implements §4.6 step 7.
func (r *Readability) removeInputsEtc(article *Node) {
	for _, tag := range []string{"input", "textarea", "select", "button"} {
		removeNodes(dom.GetElementsByTagName(article, tag), nil)
	}
	var toRemove []*Node
	for _, iframe := range dom.GetElementsByTagName(article, "iframe") {
		if r.isAllowedVideoEmbed(iframe) {
			continue
		}
		toRemove = append(toRemove, iframe)
	}
	removeNodes(toRemove, nil)
}

// removeLowWeightHeadings implements §4.6 step 8.
func removeLowWeightHeadings(article *Node) {
	var toRemove []*Node
	for _, tag := range []string{"h1", "h2"} {
		for _, h := range dom.GetElementsByTagName(article, tag) {
			if classWeight(h) < 0 {
				toRemove = append(toRemove, h)
			}
		}
	}
	removeNodes(toRemove, nil)
}

// renameH1ToH2 implements §4.6 step 10.
func renameH1ToH2(article *Node) {
	for _, h1 := range dom.GetElementsByTagName(article, "h1") {
		renameTag(h1, "h2")
	}
}

// removeEmptyParagraphs implements §4.6 step 11.
func removeEmptyParagraphs(article *Node) {
	var toRemove []*Node
	for _, p := range dom.GetElementsByTagName(article, "p") {
		if innerText(p, true) != "" {
			continue
		}
		hasMedia := false
		for _, tag := range []string{"img", "embed", "object", "iframe"} {
			if len(dom.GetElementsByTagName(p, tag)) > 0 {
				hasMedia = true
				break
			}
		}
		if !hasMedia {
			toRemove = append(toRemove, p)
		}
	}
	removeNodes(toRemove, nil)
}

// removeBrBeforeP implements §4.6 step 12.
func removeBrBeforeP(article *Node) {
	var toRemove []*Node
	for _, br := range dom.GetElementsByTagName(article, "br") {
		if next := nextNonWhitespaceNode(br.NextSibling); isTag(next, "p") {
			toRemove = append(toRemove, br)
		}
	}
	removeNodes(toRemove, nil)
}

// collapseSingleCellTables implements §4.6 step 13.
func collapseSingleCellTables(article *Node) {
	for {
		tables := dom.GetElementsByTagName(article, "table")
		collapsedAny := false
		for _, table := range tables {
			cell := singleCollapsibleCell(table)
			if cell == nil {
				continue
			}
			allPhrasing := true
			for c := cell.FirstChild; c != nil; c = c.NextSibling {
				if !isPhrasingContent(c) {
					allPhrasing = false
					break
				}
			}
			if allPhrasing {
				renameTag(cell, "p")
			} else {
				renameTag(cell, "div")
			}
			dom.ReplaceNode(cell, table)
			collapsedAny = true
		}
		if !collapsedAny {
			break
		}
	}
}

func singleCollapsibleCell(table *Node) *Node {
	tbodies := dom.GetElementsByTagName(table, "tbody")
	var container *Node
	if len(tbodies) == 1 {
		container = tbodies[0]
	} else {
		trs := directChildrenByTag(table, "tr")
		if len(trs) == 1 {
			container = table
		}
	}
	if container == nil {
		return nil
	}
	trs := directChildrenByTag(container, "tr")
	if len(trs) != 1 {
		return nil
	}
	tds := directChildrenByTag(trs[0], "td")
	if len(tds) != 1 {
		return nil
	}
	return tds[0]
}

func directChildrenByTag(n *Node, tag string) []*Node {
	var out []*Node
	for _, c := range elementChildren(n) {
		if tagName(c) == tag {
			out = append(out, c)
		}
	}
	return out
}

// allDescendantElements returns every element anywhere under n, in
// document order.
func allDescendantElements(n *Node) []*Node {
	var out []*Node
	for _, c := range elementChildren(n) {
		out = append(out, c)
		out = append(out, allDescendantElements(c)...)
	}
	return out
}

// cleanConditionally implements §4.6.1 for every element of tagName
// inside article. A no-op when CLEAN_CONDITIONALLY is cleared.
func (r *Readability) cleanConditionally(article *Node, tagNameStr string) {
	if r.flags&flagCleanConditionally == 0 {
		return
	}

	var toRemove []*Node
	for _, el := range dom.GetElementsByTagName(article, tagNameStr) {
		if r.shouldKeepConditional(el, tagNameStr) {
			continue
		}
		if r.shouldRemoveConditional(el, tagNameStr) {
			toRemove = append(toRemove, el)
		}
	}
	removeNodes(toRemove, nil)
}

func (r *Readability) shouldKeepConditional(el *Node, tagNameStr string) bool {
	if tagNameStr == "table" && (r.ann.isDataTable(el) || hasDataTableDescendant(el, r.ann)) {
		return true
	}
	if hasAncestorTag(el, "table", -1, func(a *Node) bool { return r.ann.isDataTable(a) }) {
		return true
	}
	if hasAncestorTag(el, "code", -1, nil) {
		return true
	}
	return false
}

func hasDataTableDescendant(el *Node, ann *annotations) bool {
	for _, t := range dom.GetElementsByTagName(el, "table") {
		if ann.isDataTable(t) {
			return true
		}
	}
	return false
}

// shouldRemoveConditional implements the weight/density scoring half of
// §4.6.1.
func (r *Readability) shouldRemoveConditional(el *Node, tagNameStr string) bool {
	weight := classWeight(el)
	text := innerText(el, true)
	commaCount := countCommaLike(text)
	if commaCount > 10 {
		return false
	}

	pCount := len(dom.GetElementsByTagName(el, "p"))
	imgCount := len(dom.GetElementsByTagName(el, "img"))
	liCount := len(dom.GetElementsByTagName(el, "li")) - 100
	if liCount < 0 {
		liCount = 0
	}
	inputCount := len(dom.GetElementsByTagName(el, "input"))
	embedCount := 0
	for _, e := range dom.GetElementsByTagName(el, "embed") {
		if r.isAllowedVideoEmbed(e) {
			continue
		}
		embedCount++
	}

	if weight < 0 {
		return true
	}

	isList := tagNameStr == "ul" || tagNameStr == "ol"
	if !isList {
		listTextLen := 0
		for _, tag := range []string{"ul", "ol"} {
			for _, l := range dom.GetElementsByTagName(el, tag) {
				listTextLen += len(innerText(l, false))
			}
		}
		nodeTextLen := len(innerText(el, false))
		if nodeTextLen > 0 && float64(listTextLen)/float64(nodeTextLen) > 0.9 {
			isList = true
		}
	}

	isFigureChild := hasAncestorTag(el, "figure", -1, nil)

	headingTextLen := 0
	for tag := range headingTags {
		for _, h := range dom.GetElementsByTagName(el, tag) {
			headingTextLen += len(innerText(h, false))
		}
	}
	nodeTextLen := len(innerText(el, false))
	headingDensity := 0.0
	if nodeTextLen > 0 {
		headingDensity = float64(headingTextLen) / float64(nodeTextLen)
	}

	densityTextLen := 0
	for tag := range textDensityTags {
		for _, d := range dom.GetElementsByTagName(el, tag) {
			densityTextLen += len(innerText(d, false))
		}
	}
	textDensity := 0.0
	if nodeTextLen > 0 {
		textDensity = float64(densityTextLen) / float64(nodeTextLen)
	}

	ld := linkDensity(el)
	mod := r.opts.LinkDensityModifier

	remove := false
	switch {
	case !isFigureChild && imgCount > 1 && float64(pCount)/float64(imgCount) < 0.5:
		remove = true
	case !isList && liCount > pCount:
		remove = true
	case inputCount > pCount/3:
		remove = true
	case !isList && !isFigureChild && headingDensity < 0.9 && len(text) < 25 && (imgCount == 0 || imgCount > 2) && ld > 0:
		remove = true
	case !isList && weight < 25 && ld > 0.2+mod:
		remove = true
	case weight >= 25 && ld > 0.5+mod:
		remove = true
	case (embedCount == 1 && len(text) < 75) || embedCount > 1:
		remove = true
	case imgCount == 0 && textDensity == 0:
		remove = true
	}

	if remove && isList {
		exceptionApplies := true
		for _, child := range elementChildren(el) {
			if len(elementChildren(child)) > 1 {
				exceptionApplies = false
				break
			}
		}
		if exceptionApplies {
			liTotal := len(dom.GetElementsByTagName(el, "li"))
			if liTotal == imgCount {
				remove = false
			}
		}
	}

	return remove
}
