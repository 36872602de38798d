package hwpx

import (
	"strings"

	"github.com/beevik/etree"
)

// Local tag names and prefixed creation names for the HWPML paragraph
// namespace. etree keeps prefixes verbatim, so lookups match on the local
// tag and creation uses the qualified form.
const (
	tagParagraph = "p"
	tagRun       = "run"
	tagText      = "t"
	tagTable     = "tbl"
	tagTableRow  = "tr"
	tagTableCell = "tc"
	tagSubList   = "subList"
	tagCellAddr  = "cellAddr"
	tagCellSpan  = "cellSpan"
	tagCellSize  = "cellSz"
	tagMemoGroup = "memogroup"
	tagMemo      = "memo"
	tagParaList  = "paraList"
	tagCtrl      = "ctrl"
	tagFieldBegin = "fieldBegin"
	tagFieldEnd   = "fieldEnd"

	qualParagraph  = "hp:p"
	qualRun        = "hp:run"
	qualText       = "hp:t"
	qualTable      = "hp:tbl"
	qualTableRow   = "hp:tr"
	qualTableCell  = "hp:tc"
	qualSubList    = "hp:subList"
	qualCellAddr   = "hp:cellAddr"
	qualCellSpan   = "hp:cellSpan"
	qualCellSize   = "hp:cellSz"
	qualMemoGroup  = "hp:memogroup"
	qualMemo       = "hp:memo"
	qualParaList   = "hp:paraList"
	qualCtrl       = "hp:ctrl"
	qualFieldBegin = "hp:fieldBegin"
	qualFieldEnd   = "hp:fieldEnd"
)

// Paragraph is an ordered sequence of runs. Its logical text is the
// concatenation of its runs' texts in order.
type Paragraph struct {
	section *Section
	el      *etree.Element
}

// Element returns the raw paragraph node.
func (p *Paragraph) Element() *etree.Element { return p.el }

// Section returns the owning section.
func (p *Paragraph) Section() *Section { return p.section }

// Runs returns the paragraph's direct child runs in order.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	for _, child := range p.el.ChildElements() {
		if child.Tag == tagRun {
			out = append(out, &Run{paragraph: p, el: child})
		}
	}
	return out
}

// Text returns the logical text: the in-order concatenation of run texts.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, run := range p.Runs() {
		sb.WriteString(run.Text())
	}
	return sb.String()
}

// SetText replaces the logical text. The first run receives the whole
// string and every other run is blanked; run nodes are never removed so
// held references stay valid.
func (p *Paragraph) SetText(text string) {
	runs := p.Runs()
	if len(runs) == 0 {
		run := p.el.CreateElement(qualRun)
		run.CreateAttr("charPrIDRef", "0")
		runs = []*Run{{paragraph: p, el: run}}
	}
	runs[0].SetText(text)
	for _, run := range runs[1:] {
		run.SetText("")
	}
	p.section.MarkDirty()
}

// Tables returns every table nested under this paragraph, depth-first.
func (p *Paragraph) Tables() []*Table {
	var out []*Table
	collectTables(p.el, p.section, &out)
	return out
}

func collectTables(el *etree.Element, section *Section, out *[]*Table) {
	for _, child := range el.ChildElements() {
		if child.Tag == tagTable {
			*out = append(*out, &Table{section: section, el: child})
		}
		collectTables(child, section, out)
	}
}

// CharPrRef returns the character-property reference of the paragraph's
// first run, the value new sibling runs should inherit.
func (p *Paragraph) CharPrRef() string {
	runs := p.Runs()
	if len(runs) == 0 {
		return "0"
	}
	return runs[0].CharPrRef()
}

// Run is the smallest text-bearing inline unit. Its text lives in one or
// more child text nodes; a run may also carry controls or a nested table.
type Run struct {
	paragraph *Paragraph
	el        *etree.Element
}

// Element returns the raw run node.
func (r *Run) Element() *etree.Element { return r.el }

// Paragraph returns the owning paragraph.
func (r *Run) Paragraph() *Paragraph { return r.paragraph }

// Text concatenates the contents of all child text nodes in order.
func (r *Run) Text() string {
	var sb strings.Builder
	for _, child := range r.el.ChildElements() {
		if child.Tag == tagText {
			sb.WriteString(child.Text())
		}
	}
	return sb.String()
}

// SetText writes the run's logical text. The first text node receives the
// whole string and subsequent text nodes are blanked, never deleted, so
// references held elsewhere stay valid. A run with no text node gets one.
func (r *Run) SetText(text string) {
	var textNodes []*etree.Element
	for _, child := range r.el.ChildElements() {
		if child.Tag == tagText {
			textNodes = append(textNodes, child)
		}
	}
	if len(textNodes) == 0 {
		textNodes = append(textNodes, r.el.CreateElement(qualText))
	}
	textNodes[0].SetText(text)
	for _, node := range textNodes[1:] {
		node.SetText("")
	}
	r.paragraph.section.MarkDirty()
}

// CloneAfter duplicates the run (properties included, text excluded),
// gives the clone the provided text and splices it in immediately after
// this run. Range formatting uses it to split a run at a character offset
// without losing the original's styling.
func (r *Run) CloneAfter(text string) *Run {
	clone := r.el.Copy()
	var textNodes []*etree.Element
	for _, child := range clone.ChildElements() {
		if child.Tag == tagText {
			textNodes = append(textNodes, child)
		}
	}
	for _, node := range textNodes {
		clone.RemoveChild(node)
	}
	clone.CreateElement(qualText).SetText(text)

	parent := r.el.Parent()
	parent.InsertChildAt(r.el.Index()+1, clone)
	r.paragraph.section.MarkDirty()
	return &Run{paragraph: r.paragraph, el: clone}
}

// CharPrRef returns the run's character-style reference.
func (r *Run) CharPrRef() string {
	return r.el.SelectAttrValue("charPrIDRef", "0")
}

// SetCharPrRef points the run at a character-property record.
func (r *Run) SetCharPrRef(id string) {
	r.el.CreateAttr("charPrIDRef", id)
	r.paragraph.section.MarkDirty()
}
