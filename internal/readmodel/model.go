// Package readmodel builds a normalized read-only projection of a document
// (outline, sections, tables, figures) for export and chunking. It never
// mutates the document.
package readmodel

import (
	"regexp"
	"strings"

	"hwpx-mcp-go/internal/edit"
	"hwpx-mcp-go/internal/hwpx"
)

// ItemKind classifies one document-order item.
type ItemKind string

const (
	KindHeading   ItemKind = "heading"
	KindParagraph ItemKind = "paragraph"
	KindTable     ItemKind = "table"
)

// Item is one entry of the flat document-order item list.
type Item struct {
	Kind           ItemKind        `json:"kind"`
	Text           string          `json:"text,omitempty"`
	Level          int             `json:"level,omitempty"`
	ParagraphIndex int             `json:"paragraphIndex"`
	Table          *edit.TableGrid `json:"table,omitempty"`
}

// TOCEntry is one table-of-contents line.
type TOCEntry struct {
	Text           string `json:"text"`
	Level          int    `json:"level"`
	ParagraphIndex int    `json:"paragraphIndex"`
}

// Section groups paragraphs under their nearest preceding heading.
type Section struct {
	Heading    string   `json:"heading"`
	Level      int      `json:"level"`
	Start      int      `json:"start"`
	Paragraphs []string `json:"paragraphs"`
}

// Figure is a paragraph matching the caption heuristic.
type Figure struct {
	Text           string `json:"text"`
	ParagraphIndex int    `json:"paragraphIndex"`
}

// Model is the full read-model of one document.
type Model struct {
	Items    []Item           `json:"items"`
	TOC      []TOCEntry       `json:"toc"`
	Sections []Section        `json:"sections"`
	Tables   []edit.TableGrid `json:"tables"`
	Figures  []Figure         `json:"figures"`
}

// shortLineThreshold separates heading-like short lines from plain text in
// the fallback heuristic.
const shortLineThreshold = 60

var (
	outlinePattern = regexp.MustCompile(`^(\d+(?:\.\d+)*)[.)]?\s+\S`)
	captionPattern = regexp.MustCompile(`(?i)^(figure|fig\.|그림)\s*\d*`)
)

// Build walks the paragraphs once and produces the normalized projection.
// Tables anchored at a paragraph become table items at that position.
func Build(doc *hwpx.Document) *Model {
	model := &Model{
		Items:    []Item{},
		TOC:      []TOCEntry{},
		Sections: []Section{},
		Tables:   []edit.TableGrid{},
		Figures:  []Figure{},
	}

	current := Section{Heading: "", Level: 0, Start: 0, Paragraphs: []string{}}
	flush := func() {
		if current.Heading != "" || len(current.Paragraphs) > 0 {
			model.Sections = append(model.Sections, current)
		}
	}

	seen := make(map[*hwpx.Table]bool)
	for index, para := range doc.Paragraphs() {
		text := strings.TrimSpace(para.Text())

		for _, table := range para.Tables() {
			if seen[table] {
				continue
			}
			seen[table] = true
			grid := gridOf(table)
			model.Tables = append(model.Tables, grid)
			model.Items = append(model.Items, Item{Kind: KindTable, ParagraphIndex: index, Table: &grid})
		}
		if text == "" {
			continue
		}

		if captionPattern.MatchString(text) {
			model.Figures = append(model.Figures, Figure{Text: text, ParagraphIndex: index})
			model.Items = append(model.Items, Item{Kind: KindParagraph, Text: text, ParagraphIndex: index})
			current.Paragraphs = append(current.Paragraphs, text)
			continue
		}

		level, heading := headingLevel(text)
		if level > 0 {
			model.Items = append(model.Items, Item{Kind: KindHeading, Text: heading, Level: level, ParagraphIndex: index})
			model.TOC = append(model.TOC, TOCEntry{Text: heading, Level: level, ParagraphIndex: index})
			flush()
			current = Section{Heading: heading, Level: level, Start: index, Paragraphs: []string{}}
			continue
		}

		model.Items = append(model.Items, Item{Kind: KindParagraph, Text: text, ParagraphIndex: index})
		current.Paragraphs = append(current.Paragraphs, text)
	}
	flush()
	return model
}

// headingLevel classifies a non-empty trimmed line. Explicit '#' markup
// wins, then numeric outlines ("12.3 ..." is level 2), then the generic
// short-line fallback; long lines are plain text. Returns level 0 for
// plain text, and the heading text with markup stripped otherwise.
func headingLevel(text string) (int, string) {
	if strings.HasPrefix(text, "#") {
		count := 0
		for count < len(text) && text[count] == '#' {
			count++
		}
		level := count
		if level > 6 {
			level = 6
		}
		return level, strings.TrimSpace(text[count:])
	}
	if m := outlinePattern.FindStringSubmatch(text); m != nil {
		level := strings.Count(m[1], ".") + 1
		if level > 6 {
			level = 6
		}
		return level, text
	}
	if len([]rune(text)) < shortLineThreshold {
		return 1, text
	}
	return 0, text
}

func gridOf(table *hwpx.Table) edit.TableGrid {
	rows := table.Rows()
	grid := edit.TableGrid{Rows: len(rows), Data: make([][]string, 0, len(rows))}
	for _, row := range rows {
		cells := row.Cells()
		texts := make([]string, 0, len(cells))
		for _, cell := range cells {
			texts = append(texts, cell.Text())
		}
		grid.Data = append(grid.Data, texts)
	}
	if len(grid.Data) > 0 {
		grid.Cols = len(grid.Data[0])
	}
	return grid
}
