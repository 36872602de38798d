package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwpx-mcp-go/internal/hwpx"
)

func newTableDoc(t *testing.T, rows, cols int, data [][]string) (*hwpx.Document, int) {
	t.Helper()
	doc := newTestDoc(t)
	index, err := AddTable(doc, rows, cols, data)
	require.NoError(t, err)
	return doc, index
}

func TestAddTableFillsClippedData(t *testing.T) {
	doc, index := newTableDoc(t, 2, 2, [][]string{
		{"a", "b", "overflow"},
		{"c"},
	})
	assert.Equal(t, 0, index)

	grid, err := TableData(doc, index)
	require.NoError(t, err)
	assert.Equal(t, 2, grid.Rows)
	assert.Equal(t, 2, grid.Cols)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", ""}}, grid.Data)
}

func TestAddTableRejectsNonPositiveDimensions(t *testing.T) {
	doc := newTestDoc(t)
	_, err := AddTable(doc, 0, 3, nil)
	assert.Equal(t, hwpx.CodeInvalidArgument, hwpx.ErrorCode(err))
	_, err = AddTable(doc, 2, -1, nil)
	assert.Equal(t, hwpx.CodeInvalidArgument, hwpx.ErrorCode(err))
}

func TestSetCellTextPhysical(t *testing.T) {
	doc, index := newTableDoc(t, 2, 2, nil)

	require.NoError(t, SetCellText(doc, index, 1, 0, "값", false, false))
	grid, err := TableData(doc, index)
	require.NoError(t, err)
	assert.Equal(t, "값", grid.Data[1][0])
}

func TestSetCellTextRejectsOutOfRange(t *testing.T) {
	doc, index := newTableDoc(t, 2, 2, nil)
	err := SetCellText(doc, index, 5, 0, "x", false, false)
	assert.Equal(t, hwpx.CodeTableIndexOutOfRange, hwpx.ErrorCode(err))
	err = SetCellText(doc, 3, 0, 0, "x", false, false)
	assert.Equal(t, hwpx.CodeTableIndexOutOfRange, hwpx.ErrorCode(err))
}

func TestMergeCellsSetsAnchorAndSubordinates(t *testing.T) {
	doc, index := newTableDoc(t, 3, 3, [][]string{
		{"00", "01", "02"},
		{"10", "11", "12"},
	})

	require.NoError(t, MergeCells(doc, index, 0, 0, 1, 1))

	table := doc.Tables()[index]
	anchor := table.Rows()[0].Cells()[0]
	rowSpan, colSpan := anchor.Span()
	assert.Equal(t, 2, rowSpan)
	assert.Equal(t, 2, colSpan)
	assert.Equal(t, "00", anchor.Text())

	sub := table.Rows()[1].Cells()[1]
	rowSpan, colSpan = sub.Span()
	assert.Equal(t, 0, rowSpan)
	assert.Equal(t, 0, colSpan)
	assert.Equal(t, "", sub.Text())
}

func TestMergeCellsRejectsInvertedRegion(t *testing.T) {
	doc, index := newTableDoc(t, 3, 3, nil)
	err := MergeCells(doc, index, 2, 2, 0, 0)
	assert.Equal(t, hwpx.CodeInvalidArgument, hwpx.ErrorCode(err))
}

func TestSplitCellRestoresSpans(t *testing.T) {
	doc, index := newTableDoc(t, 3, 3, [][]string{{"앵커"}})
	require.NoError(t, MergeCells(doc, index, 0, 0, 1, 2))

	info, err := SplitCell(doc, index, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, &SpanInfo{StartRow: 0, StartCol: 0, RowSpan: 2, ColSpan: 3}, info)

	table := doc.Tables()[index]
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			rowSpan, colSpan := table.Rows()[r].Cells()[c].Span()
			assert.Equal(t, 1, rowSpan)
			assert.Equal(t, 1, colSpan)
		}
	}
	// The anchor's text survives the split.
	assert.Equal(t, "앵커", table.Rows()[0].Cells()[0].Text())
}

func TestSplitUnmergedCellIsNoOp(t *testing.T) {
	doc, index := newTableDoc(t, 2, 2, nil)
	info, err := SplitCell(doc, index, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, &SpanInfo{StartRow: 1, StartCol: 1, RowSpan: 1, ColSpan: 1}, info)
}

func TestSetCellTextLogicalResolvesAnchor(t *testing.T) {
	doc, index := newTableDoc(t, 3, 3, nil)
	require.NoError(t, MergeCells(doc, index, 0, 0, 1, 1))

	// (1,1) sits inside the merged region; logical addressing writes the
	// anchor.
	require.NoError(t, SetCellText(doc, index, 1, 1, "논리", true, false))
	table := doc.Tables()[index]
	assert.Equal(t, "논리", table.Rows()[0].Cells()[0].Text())
	assert.Equal(t, "", table.Rows()[1].Cells()[1].Text())
}

func TestSetCellTextSplitMergedWritesAddressedCell(t *testing.T) {
	doc, index := newTableDoc(t, 3, 3, nil)
	require.NoError(t, MergeCells(doc, index, 0, 0, 1, 1))

	require.NoError(t, SetCellText(doc, index, 1, 1, "분할", true, true))
	table := doc.Tables()[index]
	assert.Equal(t, "분할", table.Rows()[1].Cells()[1].Text())

	// The region is no longer merged.
	rowSpan, colSpan := table.Rows()[0].Cells()[0].Span()
	assert.Equal(t, 1, rowSpan)
	assert.Equal(t, 1, colSpan)
}

func TestReplaceTableRegionValidatesBeforeWriting(t *testing.T) {
	doc, index := newTableDoc(t, 2, 2, [][]string{{"a", "b"}, {"c", "d"}})

	_, err := ReplaceTableRegion(doc, index, 1, 0, [][]string{
		{"x", "y"},
		{"z", "w"},
	}, false, false)
	assert.Equal(t, hwpx.CodeTableIndexOutOfRange, hwpx.ErrorCode(err))

	// Nothing was written despite the first row being in bounds.
	grid, err := TableData(doc, index)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, grid.Data)
}

func TestReplaceTableRegionWritesBlock(t *testing.T) {
	doc, index := newTableDoc(t, 3, 3, nil)

	updated, err := ReplaceTableRegion(doc, index, 1, 1, [][]string{
		{"a", "b"},
		{"c", "d"},
	}, false, false)
	require.NoError(t, err)
	assert.Equal(t, 4, updated)

	grid, err := TableData(doc, index)
	require.NoError(t, err)
	assert.Equal(t, "a", grid.Data[1][1])
	assert.Equal(t, "d", grid.Data[2][2])
	assert.Equal(t, "", grid.Data[0][0])
}

func TestFormatTableHeaderToggle(t *testing.T) {
	doc, index := newTableDoc(t, 2, 2, [][]string{{"h1", "h2"}, {"b1", "b2"}})

	flag := true
	require.NoError(t, FormatTableHeader(doc, index, &flag))
	table := doc.Tables()[index]
	headerRun := table.Rows()[0].Cells()[0].Paragraphs()[0].Runs()[0]
	boldRef := headerRun.CharPrRef()
	assert.NotEqual(t, "0", boldRef)
	// Body rows keep their original reference.
	bodyRun := table.Rows()[1].Cells()[0].Paragraphs()[0].Runs()[0]
	assert.Equal(t, "0", bodyRun.CharPrRef())

	flag = false
	require.NoError(t, FormatTableHeader(doc, index, &flag))
	assert.Equal(t, "0", headerRun.CharPrRef())

	// A nil flag changes nothing.
	require.NoError(t, FormatTableHeader(doc, index, nil))
}
