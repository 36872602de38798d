package edit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwpx-mcp-go/internal/hwpx"
)

func TestFindReportsPositionsAndContext(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddParagraph("2026학년도 교육과정 편성")

	result, err := Find(doc, "교육과정", true, 0)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	m := result.Matches[0]
	assert.Equal(t, 1, m.ParagraphIndex)
	assert.Equal(t, 8, m.Position)
	assert.Equal(t, "2026학년도 교육과정 편성", m.Context)
	assert.Equal(t, 1, result.TotalMatches)
}

func TestFindContextWindow(t *testing.T) {
	doc := newTestDoc(t)
	left := strings.Repeat("a", 30)
	right := strings.Repeat("b", 30)
	doc.AddParagraph(left + "X" + right)

	result, err := Find(doc, "X", true, 0)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 30, result.Matches[0].Position)
	assert.Equal(t, strings.Repeat("a", 20)+"X"+strings.Repeat("b", 20), result.Matches[0].Context)
}

func TestFindCaseFolding(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddParagraph("Hello HELLO hello")

	insensitive, err := Find(doc, "hello", false, 0)
	require.NoError(t, err)
	assert.Len(t, insensitive.Matches, 3)

	sensitive, err := Find(doc, "hello", true, 0)
	require.NoError(t, err)
	assert.Len(t, sensitive.Matches, 1)
}

func TestFindStopsAtMaxResults(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddParagraph("aaaaa")

	result, err := Find(doc, "a", true, 2)
	require.NoError(t, err)
	assert.Len(t, result.Matches, 2)
	// Unscanned occurrences are not counted once the cap hits.
	assert.Equal(t, 2, result.TotalMatches)
}

func TestFindAdvancesByNeedleLength(t *testing.T) {
	doc := newTestDoc(t)
	doc.AddParagraph("aaaa")

	result, err := Find(doc, "aa", true, 0)
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, 0, result.Matches[0].Position)
	assert.Equal(t, 2, result.Matches[1].Position)
}

func TestFindEmptyNeedleRejected(t *testing.T) {
	doc := newTestDoc(t)
	_, err := Find(doc, "", true, 0)
	assert.Equal(t, hwpx.CodeInvalidArgument, hwpx.ErrorCode(err))
}
