package edit

import (
	"strings"

	"hwpx-mcp-go/internal/hwpx"
)

// RangeFormat carries the optional character formatting toggles of a range
// operation. Nil fields leave the corresponding property untouched.
type RangeFormat struct {
	Bold      *bool
	Italic    *bool
	Underline *bool
}

// FormatTextRange applies formatting to the character range
// [startPos, endPos) of the paragraph at index, splitting runs at the range
// edges so formatting lands exactly on the requested characters and style
// boundaries elsewhere stay put. Offsets count characters of the
// paragraph's logical text.
func FormatTextRange(doc *hwpx.Document, paragraphIndex, startPos, endPos int, format RangeFormat) error {
	paragraphs := doc.Paragraphs()
	if paragraphIndex < 0 || paragraphIndex >= len(paragraphs) {
		return hwpx.IndexRangeError(hwpx.CodeParagraphIndexOutOfRange, "invalid paragraph index %d (document has %d paragraphs)", paragraphIndex, len(paragraphs))
	}
	if startPos < 0 || endPos < 0 || endPos < startPos {
		return hwpx.InvalidArgumentError("invalid start/end range %d..%d", startPos, endPos)
	}
	if startPos == endPos {
		return nil
	}

	paragraph := paragraphs[paragraphIndex]
	cursor := 0
	runIndex := 0
	for runIndex < len(paragraph.Runs()) {
		run := paragraph.Runs()[runIndex]
		runText := []rune(run.Text())
		runLen := len(runText)
		if runLen == 0 {
			runIndex++
			continue
		}

		runStart := cursor
		runEnd := cursor + runLen
		overlapStart := max(startPos, runStart)
		overlapEnd := min(endPos, runEnd)
		if overlapStart >= overlapEnd {
			cursor = runEnd
			runIndex++
			continue
		}

		leftCut := overlapStart - runStart
		rightCut := runEnd - overlapEnd

		target := run
		if leftCut > 0 {
			// Split off the unformatted head; the clone carries the rest.
			right := string(runText[leftCut:])
			run.SetText(string(runText[:leftCut]))
			target = run.CloneAfter(right)
			runIndex++
			runText = []rune(target.Text())
		}
		if rightCut > 0 {
			keep := len(runText) - rightCut
			tail := string(runText[keep:])
			target.SetText(string(runText[:keep]))
			target.CloneAfter(tail)
		}

		if err := applyRunFormat(doc.Header(), target, format); err != nil {
			return err
		}
		cursor = runEnd
		runIndex++
	}
	return nil
}

// applyRunFormat repoints the run's character-property reference. Only the
// bold toggle maps onto a header record here; italic and underline ride
// along in the range-splitting contract but keep the run's current record.
func applyRunFormat(header *hwpx.Header, run *hwpx.Run, format RangeFormat) error {
	if format.Bold == nil {
		return nil
	}
	if *format.Bold {
		bold, err := header.BoldCharPr(run.CharPrRef())
		if err != nil {
			return err
		}
		run.SetCharPrRef(bold)
		return nil
	}
	if base, ok := header.BoldCharPrBase(run.CharPrRef()); ok {
		run.SetCharPrRef(base)
	}
	return nil
}

// CreateStyle adds a named style to the document style table. An existing
// name is a no-op, not an error.
func CreateStyle(doc *hwpx.Document, styleName string) error {
	name := strings.TrimSpace(styleName)
	if name == "" {
		return hwpx.InvalidArgumentError("style name must not be empty")
	}
	return doc.Header().CreateStyle(name)
}

// ListStyles returns the document's style table.
func ListStyles(doc *hwpx.Document) []hwpx.Style {
	return doc.Header().Styles()
}
