package hwpx

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/google/uuid"
)

// Section wraps one section XML part: an ordered sequence of paragraphs
// plus an optional memo-group subtree.
type Section struct {
	doc      *Document
	xml      *etree.Document
	el       *etree.Element
	partName string
	dirty    bool
}

// Element returns the raw section root node.
func (s *Section) Element() *etree.Element { return s.el }

// MarkDirty flags the section for re-serialization on the next save.
func (s *Section) MarkDirty() { s.dirty = true }

// Paragraphs returns the section's direct child paragraphs in order.
func (s *Section) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, child := range s.el.ChildElements() {
		if child.Tag == tagParagraph {
			out = append(out, &Paragraph{section: s, el: child})
		}
	}
	return out
}

// ParagraphOption configures a paragraph created by AddParagraph.
type ParagraphOption func(*paragraphConfig)

type paragraphConfig struct {
	styleRef  string
	pageBreak bool
}

// WithStyleRef sets the styleIDRef of the new paragraph.
func WithStyleRef(id string) ParagraphOption {
	return func(c *paragraphConfig) { c.styleRef = id }
}

// WithPageBreak marks the new paragraph as starting a new page.
func WithPageBreak() ParagraphOption {
	return func(c *paragraphConfig) { c.pageBreak = true }
}

// AddParagraph appends a paragraph holding text as a single run. The new
// node always lands at the end of the section; callers that need a specific
// position splice it afterwards.
func (s *Section) AddParagraph(text string, opts ...ParagraphOption) *Paragraph {
	cfg := paragraphConfig{styleRef: "0"}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := s.el.CreateElement(qualParagraph)
	p.CreateAttr("id", newNodeID())
	p.CreateAttr("paraPrIDRef", "0")
	p.CreateAttr("styleIDRef", cfg.styleRef)
	if cfg.pageBreak {
		p.CreateAttr("pageBreak", "1")
	} else {
		p.CreateAttr("pageBreak", "0")
	}
	p.CreateAttr("columnBreak", "0")
	p.CreateAttr("merged", "0")

	run := p.CreateElement(qualRun)
	run.CreateAttr("charPrIDRef", "0")
	t := run.CreateElement(qualText)
	t.SetText(text)

	s.MarkDirty()
	return &Paragraph{section: s, el: p}
}

// addTable appends a paragraph anchoring a rows x cols table grid with
// default 1/1 cell spans and empty cell text.
func (s *Section) addTable(rows, cols int) *Table {
	para := s.AddParagraph("")
	run := para.Runs()[0]

	tbl := run.el.CreateElement(qualTable)
	tbl.CreateAttr("id", newNodeID())
	tbl.CreateAttr("rowCnt", fmt.Sprintf("%d", rows))
	tbl.CreateAttr("colCnt", fmt.Sprintf("%d", cols))
	tbl.CreateAttr("cellSpacing", "0")
	tbl.CreateAttr("borderFillIDRef", "3")
	tbl.CreateAttr("repeatHeader", "0")

	for r := 0; r < rows; r++ {
		tr := tbl.CreateElement(qualTableRow)
		for c := 0; c < cols; c++ {
			tc := tr.CreateElement(qualTableCell)
			tc.CreateAttr("name", "")
			tc.CreateAttr("header", "0")
			tc.CreateAttr("borderFillIDRef", "3")

			subList := tc.CreateElement(qualSubList)
			subList.CreateAttr("id", newNodeID())
			subList.CreateAttr("textDirection", "HORIZONTAL")
			subList.CreateAttr("lineWrap", "BREAK")
			subList.CreateAttr("vertAlign", "CENTER")
			cellPara := subList.CreateElement(qualParagraph)
			cellPara.CreateAttr("id", newNodeID())
			cellPara.CreateAttr("paraPrIDRef", "0")
			cellPara.CreateAttr("styleIDRef", "0")
			cellPara.CreateAttr("pageBreak", "0")
			cellPara.CreateAttr("columnBreak", "0")
			cellPara.CreateAttr("merged", "0")
			cellRun := cellPara.CreateElement(qualRun)
			cellRun.CreateAttr("charPrIDRef", "0")
			cellRun.CreateElement(qualText)

			addr := tc.CreateElement(qualCellAddr)
			addr.CreateAttr("colAddr", fmt.Sprintf("%d", c))
			addr.CreateAttr("rowAddr", fmt.Sprintf("%d", r))
			span := tc.CreateElement(qualCellSpan)
			span.CreateAttr("colSpan", "1")
			span.CreateAttr("rowSpan", "1")
			size := tc.CreateElement(qualCellSize)
			size.CreateAttr("width", "7086")
			size.CreateAttr("height", "1000")
		}
	}

	s.MarkDirty()
	return &Table{section: s, el: tbl}
}

// memos returns the section's memo-group entries.
func (s *Section) memos() []*Memo {
	group := s.memoGroup()
	if group == nil {
		return nil
	}
	var out []*Memo
	for _, child := range group.ChildElements() {
		if child.Tag == tagMemo {
			out = append(out, &Memo{section: s, el: child})
		}
	}
	return out
}

// memoGroup returns the section's memo-group element, or nil.
func (s *Section) memoGroup() *etree.Element {
	for _, child := range s.el.ChildElements() {
		if child.Tag == tagMemoGroup {
			return child
		}
	}
	return nil
}

// EnsureMemoGroup returns the memo-group element, creating it when absent.
func (s *Section) EnsureMemoGroup() *etree.Element {
	if group := s.memoGroup(); group != nil {
		return group
	}
	s.MarkDirty()
	return s.el.CreateElement(qualMemoGroup)
}

// newNodeID generates an id attribute value for created nodes. HWPX ids are
// opaque; a random 32-bit value avoids collisions after deletes better than
// a sequence based on current child counts.
func newNodeID() string {
	return fmt.Sprintf("%d", uuid.New().ID())
}
