package readability

import (
	"golang.org/x/net/html"
)

// Node is the tree type this package operates on: a golang.org/x/net/html
// node as navigated and mutated through github.com/go-shiori/dom. It is
// the "parsed HTML tree" §3 describes as the input/working document —
// Element, Text, Comment and Doctype(Directive) all map onto html.NodeType
// values. net/html has no distinct CDATA node kind in HTML (as opposed to
// XML) parsing mode; CDATA sections inside foreign content (e.g. SVG) come
// through as raw/text nodes, which is the adaptation §3's "CDATA" node
// kind collapses to in this implementation.
type Node = html.Node

const (
	nodeText    = html.TextNode
	nodeElement = html.ElementNode
	nodeComment = html.CommentNode
	nodeDoctype = html.DoctypeNode
	nodeDocument = html.DocumentNode
)

// annotations holds the transient, per-attempt side tables the spec
// requires nodes to carry without widening the tree's own node type:
// a numeric contentScore (§3 "Candidate annotation") and the
// _readabilityDataTable boolean table classification (§4.8). Both are
// keyed by node pointer, which is stable identity for as long as the
// node stays attached to (or reachable from) the document being scored;
// a fresh annotations table is used per grabArticle attempt since nodes
// are rebuilt from the snapshot on every retry.
type annotations struct {
	contentScore map[*Node]float64
	hasScore     map[*Node]bool
	dataTable    map[*Node]bool
}

func newAnnotations() *annotations {
	return &annotations{
		contentScore: make(map[*Node]float64),
		hasScore:     make(map[*Node]bool),
		dataTable:    make(map[*Node]bool),
	}
}

func (a *annotations) score(n *Node) float64 {
	return a.contentScore[n]
}

func (a *annotations) setScore(n *Node, v float64) {
	a.contentScore[n] = v
	a.hasScore[n] = true
}

func (a *annotations) hasContentScore(n *Node) bool {
	return a.hasScore[n]
}

func (a *annotations) isDataTable(n *Node) bool {
	return a.dataTable[n]
}

func (a *annotations) setDataTable(n *Node, v bool) {
	a.dataTable[n] = v
}
