package edit

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"hwpx-mcp-go/internal/hwpx"
)

// resolveStyle trims a style reference; empty or whitespace-only input
// means "no style".
func resolveStyle(style string) string {
	return strings.TrimSpace(style)
}

// AddHeading appends a heading paragraph with normalized markup and returns
// its positional index. Levels are clamped into [1,6]; text already carrying
// explicit heading markup is kept as-is.
func AddHeading(doc *hwpx.Document, text string, level int) int {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	stripped := strings.TrimSpace(text)
	heading := stripped
	if !strings.HasPrefix(stripped, "#") {
		heading = strings.Repeat("#", level) + " " + stripped
	}
	doc.AddParagraph(heading)
	return len(doc.Paragraphs()) - 1
}

// AddParagraph appends a plain paragraph, optionally with a style
// reference, and returns its positional index.
func AddParagraph(doc *hwpx.Document, text, style string) int {
	var opts []hwpx.ParagraphOption
	if id := resolveStyle(style); id != "" {
		opts = append(opts, hwpx.WithStyleRef(id))
	}
	doc.AddParagraph(text, opts...)
	return len(doc.Paragraphs()) - 1
}

// InsertParagraph inserts a paragraph immediately before the one currently
// occupying index, so the returned index equals the one passed in. An index
// equal to the paragraph count degrades to an append.
func InsertParagraph(doc *hwpx.Document, index int, text, style string) (int, error) {
	paragraphs := doc.Paragraphs()
	total := len(paragraphs)
	if index < 0 || index > total {
		return 0, hwpx.IndexRangeError(hwpx.CodeParagraphIndexOutOfRange, "invalid paragraph index %d (document has %d paragraphs)", index, total)
	}
	if index == total {
		return AddParagraph(doc, text, style), nil
	}

	target := paragraphs[index]
	section := target.Section()
	var opts []hwpx.ParagraphOption
	if id := resolveStyle(style); id != "" {
		opts = append(opts, hwpx.WithStyleRef(id))
	}
	// AddParagraph always appends, so splice the fresh node into place
	// immediately before the target.
	inserted := section.AddParagraph(text, opts...)
	position := target.Element().Index()
	if position < 0 {
		return 0, hwpx.NotFoundError(hwpx.CodeElementNotFound, "target paragraph is not attached to its section")
	}
	section.Element().RemoveChild(inserted.Element())
	section.Element().InsertChildAt(position, inserted.Element())
	section.MarkDirty()
	return index, nil
}

// DeleteParagraph removes the paragraph at index and returns the remaining
// paragraph count. Deleting the only paragraph clears it instead, keeping
// the invariant that a document always holds at least one paragraph.
func DeleteParagraph(doc *hwpx.Document, index int) (int, error) {
	paragraphs := doc.Paragraphs()
	total := len(paragraphs)
	if index < 0 || index >= total {
		return 0, hwpx.IndexRangeError(hwpx.CodeParagraphIndexOutOfRange, "invalid paragraph index %d (document has %d paragraphs)", index, total)
	}
	target := paragraphs[index]
	if total <= 1 {
		for _, run := range target.Runs() {
			run.SetText("")
		}
		for _, table := range target.Tables() {
			for _, row := range table.Rows() {
				for _, cell := range row.Cells() {
					cell.SetText("")
				}
			}
		}
		return total, nil
	}

	section := target.Section()
	if removed := section.Element().RemoveChild(target.Element()); removed == nil {
		return 0, hwpx.NotFoundError(hwpx.CodeElementNotFound, "paragraph to delete is not attached to its section")
	}
	section.MarkDirty()
	return total - 1, nil
}

// AddPageBreak appends an empty paragraph flagged as starting a new page
// and returns its positional index.
func AddPageBreak(doc *hwpx.Document) int {
	doc.AddParagraph("", hwpx.WithPageBreak())
	return len(doc.Paragraphs()) - 1
}

// CollectFullText joins all paragraph texts and all non-empty table cell
// texts with newlines.
func CollectFullText(doc *hwpx.Document) string {
	var chunks []string
	for _, para := range doc.Paragraphs() {
		chunks = append(chunks, para.Text())
	}
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				if text := cell.Text(); text != "" {
					chunks = append(chunks, text)
				}
			}
		}
	}
	return strings.Join(chunks, "\n")
}

// ── memos ────────────────────────────────────────────

// AddMemo anchors a memo to the paragraph at index: a memo-group entry
// holding the comment text, bracketed in the paragraph by a field-begin run
// carrying the generated memo id and a matching field-end run. The memo id
// is returned.
func AddMemo(doc *hwpx.Document, paragraphIndex int, text string) (string, error) {
	paragraphs := doc.Paragraphs()
	if paragraphIndex < 0 || paragraphIndex >= len(paragraphs) {
		return "", hwpx.IndexRangeError(hwpx.CodeParagraphIndexOutOfRange, "invalid paragraph index %d (document has %d paragraphs)", paragraphIndex, len(paragraphs))
	}
	paragraph := paragraphs[paragraphIndex]
	section := paragraph.Section()

	memoID := newHexID(10)
	fieldID := newHexID(32)
	created := time.Now().Format("2006-01-02 15:04:05")
	charRef := paragraph.CharPrRef()

	group := section.EnsureMemoGroup()
	memo := group.CreateElement("hp:memo")
	memo.CreateAttr("id", memoID)
	paraList := memo.CreateElement("hp:paraList")
	memoPara := paraList.CreateElement("hp:p")
	memoPara.CreateAttr("id", fmt.Sprintf("memo-%s-p", memoID))
	memoPara.CreateAttr("paraPrIDRef", "0")
	memoPara.CreateAttr("styleIDRef", "0")
	memoPara.CreateAttr("pageBreak", "0")
	memoPara.CreateAttr("columnBreak", "0")
	memoPara.CreateAttr("merged", "0")
	memoRun := memoPara.CreateElement("hp:run")
	memoRun.CreateAttr("charPrIDRef", charRef)
	memoRun.CreateElement("hp:t").SetText(text)

	runBegin := etree.NewElement("hp:run")
	runBegin.CreateAttr("charPrIDRef", charRef)
	ctrlBegin := runBegin.CreateElement("hp:ctrl")
	fieldBegin := ctrlBegin.CreateElement("hp:fieldBegin")
	fieldBegin.CreateAttr("id", fieldID)
	fieldBegin.CreateAttr("type", "MEMO")
	fieldBegin.CreateAttr("editable", "true")
	fieldBegin.CreateAttr("dirty", "false")
	fieldBegin.CreateAttr("fieldid", fieldID)
	fieldBegin.CreateAttr("command", fmt.Sprintf("memoId=%s;", memoID))

	parameters := fieldBegin.CreateElement("hp:parameters")
	parameters.CreateAttr("count", "5")
	parameters.CreateAttr("name", "")
	addStringParam(parameters, "ID", memoID)
	number := parameters.CreateElement("hp:integerParam")
	number.CreateAttr("name", "Number")
	number.SetText("1")
	addStringParam(parameters, "CreateDateTime", created)
	addStringParam(parameters, "Author", "")
	addStringParam(parameters, "MemoShapeID", "")

	subList := fieldBegin.CreateElement("hp:subList")
	subList.CreateAttr("id", fmt.Sprintf("memo-field-%s", memoID))
	subList.CreateAttr("textDirection", "HORIZONTAL")
	subList.CreateAttr("lineWrap", "BREAK")
	subList.CreateAttr("vertAlign", "TOP")
	subPara := subList.CreateElement("hp:p")
	subPara.CreateAttr("id", fmt.Sprintf("memo-field-%s-p", memoID))
	subPara.CreateAttr("paraPrIDRef", "0")
	subPara.CreateAttr("styleIDRef", "0")
	subPara.CreateAttr("pageBreak", "0")
	subPara.CreateAttr("columnBreak", "0")
	subPara.CreateAttr("merged", "0")
	subRun := subPara.CreateElement("hp:run")
	subRun.CreateAttr("charPrIDRef", charRef)
	subRun.CreateElement("hp:t").SetText(memoID)

	runEnd := etree.NewElement("hp:run")
	runEnd.CreateAttr("charPrIDRef", charRef)
	ctrlEnd := runEnd.CreateElement("hp:ctrl")
	fieldEnd := ctrlEnd.CreateElement("hp:fieldEnd")
	fieldEnd.CreateAttr("beginIDRef", fieldID)
	fieldEnd.CreateAttr("fieldid", fieldID)

	paragraph.Element().InsertChildAt(0, runBegin)
	paragraph.Element().AddChild(runEnd)
	section.MarkDirty()
	return memoID, nil
}

func addStringParam(parameters *etree.Element, name, value string) {
	param := parameters.CreateElement("hp:stringParam")
	param.CreateAttr("name", name)
	param.SetText(value)
}

// RemoveMemo removes every memo anchored to the paragraph at index: the
// memo-group entries plus the field-begin/field-end runs referencing them.
// Returns the number of removed memo entries.
func RemoveMemo(doc *hwpx.Document, paragraphIndex int) (int, error) {
	paragraphs := doc.Paragraphs()
	if paragraphIndex < 0 || paragraphIndex >= len(paragraphs) {
		return 0, hwpx.IndexRangeError(hwpx.CodeParagraphIndexOutOfRange, "invalid paragraph index %d (document has %d paragraphs)", paragraphIndex, len(paragraphs))
	}
	paragraph := paragraphs[paragraphIndex]

	memoIDs := make(map[string]bool)
	fieldIDs := make(map[string]bool)
	var anchorRuns []*hwpx.Run
	for _, run := range paragraph.Runs() {
		for _, ctrl := range childElements(run.Element(), "ctrl") {
			fieldBegin := firstChild(ctrl, "fieldBegin")
			if fieldBegin == nil {
				continue
			}
			memoID := memoIDFromFieldBegin(fieldBegin)
			if memoID == "" {
				continue
			}
			memoIDs[memoID] = true
			if id := fieldBegin.SelectAttrValue("fieldid", ""); id != "" {
				fieldIDs[id] = true
			}
			if id := fieldBegin.SelectAttrValue("id", ""); id != "" {
				fieldIDs[id] = true
			}
			anchorRuns = append(anchorRuns, run)
		}
	}
	if len(memoIDs) == 0 {
		return 0, nil
	}

	// Matching field-end runs reference the begin's field id.
	for _, run := range paragraph.Runs() {
		for _, ctrl := range childElements(run.Element(), "ctrl") {
			fieldEnd := firstChild(ctrl, "fieldEnd")
			if fieldEnd == nil {
				continue
			}
			if fieldIDs[fieldEnd.SelectAttrValue("beginIDRef", "")] || fieldIDs[fieldEnd.SelectAttrValue("fieldid", "")] {
				anchorRuns = append(anchorRuns, run)
			}
		}
	}
	for _, run := range anchorRuns {
		paragraph.Element().RemoveChild(run.Element())
	}

	removed := 0
	for _, memo := range doc.Memos() {
		if memoIDs[memo.ID()] {
			doc.RemoveMemo(memo)
			removed++
		}
	}
	paragraph.Section().MarkDirty()
	return removed, nil
}

// memoIDFromFieldBegin extracts the memo id from the structured command
// string, falling back to the string parameter named "ID".
func memoIDFromFieldBegin(fieldBegin *etree.Element) string {
	command := fieldBegin.SelectAttrValue("command", "")
	if idx := strings.Index(command, "memoId="); idx >= 0 {
		id := command[idx+len("memoId="):]
		if semi := strings.Index(id, ";"); semi >= 0 {
			id = id[:semi]
		}
		if id = strings.TrimSpace(id); id != "" {
			return id
		}
	}
	parameters := firstChild(fieldBegin, "parameters")
	if parameters == nil {
		return ""
	}
	for _, param := range childElements(parameters, "stringParam") {
		if !strings.EqualFold(strings.TrimSpace(param.SelectAttrValue("name", "")), "id") {
			continue
		}
		if id := strings.TrimSpace(param.Text()); id != "" {
			return id
		}
	}
	return ""
}

func childElements(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			out = append(out, child)
		}
	}
	return out
}

func firstChild(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}
