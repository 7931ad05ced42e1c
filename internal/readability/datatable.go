package readability

import (
	"strconv"

	"github.com/go-shiori/dom"
)

// markDataTables implements §4.8: classify every <table> in the document
// as a data table (holds tabular data) or a layout table, recording the
// verdict in ann.dataTable.
func markDataTables(root *Node, ann *annotations) {
	for _, table := range dom.GetElementsByTagName(root, "table") {
		ann.setDataTable(table, isDataTable(table))
	}
}

func isDataTable(table *Node) bool {
	if getAttr(table, "role") == "presentation" {
		return false
	}
	if getAttr(table, "datatable") == "0" {
		return false
	}
	if hasAttr(table, "summary") {
		return true
	}
	for _, caption := range dom.GetElementsByTagName(table, "caption") {
		if len(elementChildren(caption)) > 0 {
			return true
		}
	}
	for _, tag := range []string{"col", "colgroup", "tfoot", "thead", "th"} {
		if len(dom.GetElementsByTagName(table, tag)) > 0 {
			return true
		}
	}
	if len(dom.GetElementsByTagName(table, "table")) > 0 {
		return false
	}

	rows, columns := tableShape(table)
	if rows == 1 || columns == 1 {
		return false
	}
	if rows >= 10 || columns > 4 {
		return true
	}
	return rows*columns > 10
}

// tableShape computes the row count (Σ max(rowspan,1)) and the maximum,
// over rows, of Σ max(colspan,1) for <td> cells.
func tableShape(table *Node) (rows, columns int) {
	trs := dom.GetElementsByTagName(table, "tr")
	for _, tr := range trs {
		rowspan := 1
		if v, err := strconv.Atoi(getAttr(tr, "rowspan")); err == nil && v > 1 {
			rowspan = v
		}
		rows += rowspan

		cols := 0
		for _, td := range dom.GetElementsByTagName(tr, "td") {
			colspan := 1
			if v, err := strconv.Atoi(getAttr(td, "colspan")); err == nil && v > 1 {
				colspan = v
			}
			cols += colspan
		}
		if cols > columns {
			columns = cols
		}
	}
	return rows, columns
}
