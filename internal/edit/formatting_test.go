package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwpx-mcp-go/internal/hwpx"
)

func boolPtr(v bool) *bool { return &v }

func TestFormatTextRangeSplitsRunAtEdges(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddParagraph("hello world again")

	err := FormatTextRange(doc, 1, 6, 11, RangeFormat{Bold: boolPtr(true)})
	require.NoError(t, err)

	para := doc.Paragraphs()[1]
	assert.Equal(t, "hello world again", para.Text())

	runs := para.Runs()
	require.Len(t, runs, 3)
	assert.Equal(t, "hello ", runs[0].Text())
	assert.Equal(t, "world", runs[1].Text())
	assert.Equal(t, " again", runs[2].Text())

	// Only the middle fragment points at the bold record.
	assert.Equal(t, "0", runs[0].CharPrRef())
	assert.NotEqual(t, "0", runs[1].CharPrRef())
	assert.Equal(t, "0", runs[2].CharPrRef())
}

func TestFormatTextRangeWholeParagraph(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddParagraph("전체 범위")

	err := FormatTextRange(doc, 1, 0, 5, RangeFormat{Bold: boolPtr(true)})
	require.NoError(t, err)

	para := doc.Paragraphs()[1]
	assert.Equal(t, "전체 범위", para.Text())
	runs := para.Runs()
	require.Len(t, runs, 1)
	assert.NotEqual(t, "0", runs[0].CharPrRef())
}

func TestFormatTextRangeUnbold(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddParagraph("bold me")

	require.NoError(t, FormatTextRange(doc, 1, 0, 7, RangeFormat{Bold: boolPtr(true)}))
	require.NoError(t, FormatTextRange(doc, 1, 0, 7, RangeFormat{Bold: boolPtr(false)}))

	runs := doc.Paragraphs()[1].Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, "0", runs[0].CharPrRef())
}

func TestFormatTextRangeAcrossRuns(t *testing.T) {
	doc := newTestDoc(t)
	para := splitParagraph(t, doc, "abc", "def")

	// Range 2..4 covers the tail of the first run and the head of the
	// second.
	err := FormatTextRange(doc, 1, 2, 4, RangeFormat{Bold: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "abcdef", para.Text())

	runs := para.Runs()
	require.Len(t, runs, 4)
	assert.Equal(t, "ab", runs[0].Text())
	assert.Equal(t, "c", runs[1].Text())
	assert.Equal(t, "d", runs[2].Text())
	assert.Equal(t, "ef", runs[3].Text())
	assert.Equal(t, "0", runs[0].CharPrRef())
	assert.NotEqual(t, "0", runs[1].CharPrRef())
	assert.NotEqual(t, "0", runs[2].CharPrRef())
	assert.Equal(t, "0", runs[3].CharPrRef())
}

func TestFormatTextRangeValidation(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddParagraph("text")

	err := FormatTextRange(doc, 9, 0, 1, RangeFormat{Bold: boolPtr(true)})
	assert.Equal(t, hwpx.CodeParagraphIndexOutOfRange, hwpx.ErrorCode(err))

	err = FormatTextRange(doc, 1, 3, 1, RangeFormat{Bold: boolPtr(true)})
	assert.Equal(t, hwpx.CodeInvalidArgument, hwpx.ErrorCode(err))

	// An empty range is a no-op, not an error.
	require.NoError(t, FormatTextRange(doc, 1, 2, 2, RangeFormat{Bold: boolPtr(true)}))
	assert.Len(t, doc.Paragraphs()[1].Runs(), 1)
}

func TestCreateStyleAndList(t *testing.T) {
	doc := newTestDoc(t)

	before := len(ListStyles(doc))
	require.NoError(t, CreateStyle(doc, "강조"))
	styles := ListStyles(doc)
	require.Len(t, styles, before+1)
	assert.Equal(t, "강조", styles[len(styles)-1].Name)

	// Creating the same name again is a no-op.
	require.NoError(t, CreateStyle(doc, "강조"))
	assert.Len(t, ListStyles(doc), before+1)

	err := CreateStyle(doc, "   ")
	assert.Equal(t, hwpx.CodeInvalidArgument, hwpx.ErrorCode(err))
}
