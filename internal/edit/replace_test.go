package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwpx-mcp-go/internal/hwpx"
)

func newTestDoc(t *testing.T) *hwpx.Document {
	t.Helper()
	doc, err := hwpx.NewBlank()
	require.NoError(t, err)
	return doc
}

// splitParagraph appends a paragraph whose logical text is fragmented
// across one run per piece.
func splitParagraph(t *testing.T, doc *hwpx.Document, pieces ...string) *hwpx.Paragraph {
	t.Helper()
	require.NotEmpty(t, pieces)
	para := doc.AddParagraph(pieces[0])
	run := para.Runs()[0]
	for _, piece := range pieces[1:] {
		run = run.CloneAfter(piece)
	}
	return para
}

func TestReplaceInRunsWithinSingleRun(t *testing.T) {
	doc := newTestDoc(t)
	para := doc.AddParagraph("hello world, hello again")

	count, err := ReplaceInRuns(para.Runs(), "hello", "bye")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "bye world, bye again", para.Text())
}

func TestReplaceInRunsAcrossRunBoundary(t *testing.T) {
	doc := newTestDoc(t)
	para := splitParagraph(t, doc, "20", "26학년도 운영")

	count, err := ReplaceInRuns(para.Runs(), "2026학년도", "2027학년도")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "2027학년도 운영", para.Text())

	// Same-length replacement keeps the original run boundary.
	runs := para.Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, "20", runs[0].Text())
	assert.Equal(t, "27학년도 운영", runs[1].Text())
}

func TestReplaceInRunsShrinkingReplacement(t *testing.T) {
	doc := newTestDoc(t)
	para := splitParagraph(t, doc, "20", "26학년도 운영")

	count, err := ReplaceInRuns(para.Runs(), "2026학년도", "2026")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "2026 운영", para.Text())

	// Run count is stable; only the boundary moves.
	assert.Len(t, para.Runs(), 2)
}

func TestReplaceInRunsEmptyFindRejected(t *testing.T) {
	doc := newTestDoc(t)
	para := doc.AddParagraph("text")

	_, err := ReplaceInRuns(para.Runs(), "", "x")
	assert.Equal(t, hwpx.CodeInvalidArgument, hwpx.ErrorCode(err))
}

func TestReplaceInRunsNoMatchLeavesRunsUntouched(t *testing.T) {
	doc := newTestDoc(t)
	para := splitParagraph(t, doc, "abc", "def")

	count, err := ReplaceInRuns(para.Runs(), "zzz", "x")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	runs := para.Runs()
	assert.Equal(t, "abc", runs[0].Text())
	assert.Equal(t, "def", runs[1].Text())
}

func TestReplaceAllCoversTableCells(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddParagraph("old text")
	_, err := AddTable(doc, 1, 2, [][]string{{"old cell", "other"}})
	require.NoError(t, err)

	count, err := ReplaceAll(doc, "old", "new")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	grid, err := TableData(doc, 0)
	require.NoError(t, err)
	assert.Equal(t, "new cell", grid.Data[0][0])
}

func TestReplaceInDocumentRunsCoversCellParagraphs(t *testing.T) {
	doc := newTestDoc(t)
	_, err := AddTable(doc, 1, 1, [][]string{{"foo bar"}})
	require.NoError(t, err)

	count, err := ReplaceInDocumentRuns(doc, "foo", "baz")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	grid, err := TableData(doc, 0)
	require.NoError(t, err)
	assert.Equal(t, "baz bar", grid.Data[0][0])
}

func TestBatchReplaceAppliesInOrder(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddParagraph("a b c")

	results, total, err := BatchReplace(doc, []Replacement{
		{Find: "a", Replace: "x"},
		{Find: "x b", Replace: "y"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].ReplacedCount)
	assert.Equal(t, 1, results[1].ReplacedCount)
	assert.Equal(t, "y c", doc.Paragraphs()[1].Text())
}

func TestBatchReplaceRejectsWholeBatchOnEmptyFind(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddParagraph("untouched")

	_, _, err := BatchReplace(doc, []Replacement{
		{Find: "untouched", Replace: "changed"},
		{Find: "", Replace: "x"},
	})
	assert.Equal(t, hwpx.CodeInvalidArgument, hwpx.ErrorCode(err))
	// The valid first pair must not have been applied.
	assert.Equal(t, "untouched", doc.Paragraphs()[1].Text())
}
