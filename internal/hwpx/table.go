package hwpx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Table is a grid of rows of cells. Merged regions keep their subordinate
// cells in the grid with a 0/0 span; only the anchor carries the real span.
type Table struct {
	section *Section
	el      *etree.Element
}

// Element returns the raw table node.
func (t *Table) Element() *etree.Element { return t.el }

// Section returns the section owning the table's anchor paragraph.
func (t *Table) Section() *Section { return t.section }

// Rows returns the table's rows in order.
func (t *Table) Rows() []*Row {
	var out []*Row
	for _, child := range t.el.ChildElements() {
		if child.Tag == tagTableRow {
			out = append(out, &Row{table: t, el: child})
		}
	}
	return out
}

// Row is one table row.
type Row struct {
	table *Table
	el    *etree.Element
}

// Cells returns the row's cells in order, subordinate merged cells included.
func (r *Row) Cells() []*Cell {
	var out []*Cell
	for _, child := range r.el.ChildElements() {
		if child.Tag == tagTableCell {
			out = append(out, &Cell{row: r, el: child})
		}
	}
	return out
}

// Cell is one table cell. Its text may be multi-paragraph; its span
// metadata lives in a child cellSpan element.
type Cell struct {
	row *Row
	el  *etree.Element
}

// Element returns the raw cell node, the handle for span attributes.
func (c *Cell) Element() *etree.Element { return c.el }

// Paragraphs returns the cell's paragraphs from its content sub-list.
func (c *Cell) Paragraphs() []*Paragraph {
	subList := c.child(tagSubList)
	if subList == nil {
		return nil
	}
	section := c.row.table.section
	var out []*Paragraph
	for _, child := range subList.ChildElements() {
		if child.Tag == tagParagraph {
			out = append(out, &Paragraph{section: section, el: child})
		}
	}
	return out
}

// Text joins the cell's paragraph texts with newlines.
func (c *Cell) Text() string {
	paras := c.Paragraphs()
	parts := make([]string, 0, len(paras))
	for _, p := range paras {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the cell's text. The first paragraph carries the whole
// string; any further paragraphs are blanked in place.
func (c *Cell) SetText(text string) {
	section := c.row.table.section
	subList := c.child(tagSubList)
	if subList == nil {
		subList = c.el.CreateElement(qualSubList)
	}
	paras := c.Paragraphs()
	if len(paras) == 0 {
		p := subList.CreateElement(qualParagraph)
		p.CreateAttr("id", newNodeID())
		p.CreateAttr("paraPrIDRef", "0")
		p.CreateAttr("styleIDRef", "0")
		paras = []*Paragraph{{section: section, el: p}}
	}
	paras[0].SetText(text)
	for _, p := range paras[1:] {
		p.SetText("")
	}
	section.MarkDirty()
}

// SpanElement returns the cell's span metadata node, or nil when absent.
func (c *Cell) SpanElement() *etree.Element {
	return c.child(tagCellSpan)
}

// Span returns the cell's row/column span, defaulting to 1/1 when the
// metadata is absent.
func (c *Cell) Span() (rowSpan, colSpan int) {
	span := c.SpanElement()
	if span == nil {
		return 1, 1
	}
	return spanAttr(span, "rowSpan"), spanAttr(span, "colSpan")
}

// SetSpan rewrites the cell's span metadata, creating the node if needed.
func (c *Cell) SetSpan(rowSpan, colSpan int) {
	span := c.SpanElement()
	if span == nil {
		span = c.el.CreateElement(qualCellSpan)
	}
	span.CreateAttr("rowSpan", strconv.Itoa(rowSpan))
	span.CreateAttr("colSpan", strconv.Itoa(colSpan))
	c.row.table.section.MarkDirty()
}

func (c *Cell) child(tag string) *etree.Element {
	for _, child := range c.el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

func spanAttr(span *etree.Element, name string) int {
	value, err := strconv.Atoi(span.SelectAttrValue(name, "1"))
	if err != nil {
		return 1
	}
	return value
}
