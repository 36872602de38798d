package readmodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwpx-mcp-go/internal/edit"
	"hwpx-mcp-go/internal/hwpx"
)

func newModelDoc(t *testing.T, paragraphs ...string) *hwpx.Document {
	t.Helper()
	doc, err := hwpx.NewBlank()
	require.NoError(t, err)
	for _, text := range paragraphs {
		doc.AddParagraph(text)
	}
	return doc
}

// longLine is past the short-line heading threshold, so it reads as body
// text.
var longLine = strings.Repeat("본문 내용이 길게 이어진다 ", 8)

func TestHeadingHeuristics(t *testing.T) {
	cases := []struct {
		text  string
		level int
	}{
		{"# 제목", 1},
		{"## 소제목", 2},
		{"###### 깊은 제목", 6},
		{"####### 한도 초과", 6},
		{"1. 서론", 1},
		{"12.3 세부 항목", 2},
		{"2.1.4 더 깊은 항목", 3},
		{"짧은 한 줄", 1},
		{longLine, 0},
	}
	for _, tc := range cases {
		level, _ := headingLevel(strings.TrimSpace(tc.text))
		assert.Equal(t, tc.level, level, "text %q", tc.text)
	}
}

func TestHeadingMarkupIsStripped(t *testing.T) {
	level, text := headingLevel("## 소제목")
	assert.Equal(t, 2, level)
	assert.Equal(t, "소제목", text)

	// Outline-numbered headings keep their numbering.
	level, text = headingLevel("1. 서론")
	assert.Equal(t, 1, level)
	assert.Equal(t, "1. 서론", text)
}

func TestBuildSectionsGroupUnderHeadings(t *testing.T) {
	doc := newModelDoc(t,
		"# 개요",
		longLine,
		"## 상세",
		longLine,
	)

	model := Build(doc)
	require.Len(t, model.TOC, 2)
	assert.Equal(t, "개요", model.TOC[0].Text)
	assert.Equal(t, 1, model.TOC[0].Level)
	assert.Equal(t, "상세", model.TOC[1].Text)
	assert.Equal(t, 2, model.TOC[1].Level)

	require.Len(t, model.Sections, 2)
	assert.Equal(t, "개요", model.Sections[0].Heading)
	require.Len(t, model.Sections[0].Paragraphs, 1)
	assert.Equal(t, "상세", model.Sections[1].Heading)
}

func TestBuildDetectsFigures(t *testing.T) {
	doc := newModelDoc(t,
		"그림 1 시스템 구성도",
		"Figure 2: overview",
		"fig. 3 detail",
		longLine,
	)

	model := Build(doc)
	require.Len(t, model.Figures, 3)
	assert.Equal(t, "그림 1 시스템 구성도", model.Figures[0].Text)
	// Figure captions never show up as headings.
	assert.Empty(t, model.TOC)
}

func TestBuildCollectsTables(t *testing.T) {
	doc := newModelDoc(t, "# 표 목록")
	_, err := edit.AddTable(doc, 2, 2, [][]string{{"h1", "h2"}, {"a", "b"}})
	require.NoError(t, err)

	model := Build(doc)
	require.Len(t, model.Tables, 1)
	assert.Equal(t, 2, model.Tables[0].Rows)
	assert.Equal(t, [][]string{{"h1", "h2"}, {"a", "b"}}, model.Tables[0].Data)
}

func TestMarkdownExport(t *testing.T) {
	doc := newModelDoc(t, "# 개요", longLine)
	_, err := edit.AddTable(doc, 2, 2, [][]string{{"h1", "h2"}, {"a", "b"}})
	require.NoError(t, err)

	md := Build(doc).Markdown()
	assert.Contains(t, md, "# 개요\n")
	assert.Contains(t, md, "| h1 | h2 |")
	assert.Contains(t, md, "| --- | --- |")
	assert.Contains(t, md, "| a | b |")
}

func TestHTMLExportEscapes(t *testing.T) {
	doc := newModelDoc(t, "# T<itle>", longLine+"<b>&")

	html := Build(doc).HTML()
	assert.Contains(t, html, "<h1>T&lt;itle&gt;</h1>")
	assert.Contains(t, html, "&lt;b&gt;&amp;")
	assert.NotContains(t, html, "<b>&")
}

func TestJSONExport(t *testing.T) {
	doc := newModelDoc(t, "# 개요", longLine)
	out, err := Build(doc).JSON()
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "heading"`)
	assert.Contains(t, out, `"toc"`)
}

func TestChunkBySection(t *testing.T) {
	doc := newModelDoc(t, "# 하나", longLine, "# 둘", longLine)

	chunks := Build(doc).ChunkBySection()
	require.Len(t, chunks, 2)
	assert.Equal(t, "하나", chunks[0].Heading)
	assert.Contains(t, chunks[0].Text, "하나")
	assert.Equal(t, 1, chunks[1].Index)
}

func TestChunkByBudgetPacksGreedily(t *testing.T) {
	doc := newModelDoc(t, longLine, longLine, longLine)

	budget := len([]rune(strings.TrimSpace(longLine))) + 10
	chunks := Build(doc).ChunkByBudget(budget)
	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
		assert.LessOrEqual(t, chunk.Chars, budget)
	}
}

func TestChunkByBudgetSlicesOversizeParagraph(t *testing.T) {
	doc := newModelDoc(t, longLine)

	chunks := Build(doc).ChunkByBudget(30)
	total := 0
	for _, chunk := range chunks {
		assert.LessOrEqual(t, chunk.Chars, 30)
		total += chunk.Chars
	}
	assert.Equal(t, len([]rune(strings.TrimSpace(longLine))), total)
}
