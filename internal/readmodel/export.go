package readmodel

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"hwpx-mcp-go/internal/edit"
)

// Markdown renders the model as GitHub-flavored markdown. Tables use the
// pipe syntax with the first row as header.
func (m *Model) Markdown() string {
	var b strings.Builder
	for _, item := range m.Items {
		switch item.Kind {
		case KindHeading:
			b.WriteString(strings.Repeat("#", item.Level))
			b.WriteString(" ")
			b.WriteString(item.Text)
			b.WriteString("\n\n")
		case KindParagraph:
			b.WriteString(item.Text)
			b.WriteString("\n\n")
		case KindTable:
			writeMarkdownTable(&b, item.Table)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeMarkdownTable(b *strings.Builder, grid *edit.TableGrid) {
	if grid == nil || len(grid.Data) == 0 {
		return
	}
	escape := func(s string) string {
		s = strings.ReplaceAll(s, "\n", " ")
		return strings.ReplaceAll(s, "|", "\\|")
	}
	header := grid.Data[0]
	cols := len(header)
	row := func(cells []string) {
		b.WriteString("|")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = escape(cells[i])
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")
	}
	row(header)
	b.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
	for _, cells := range grid.Data[1:] {
		row(cells)
	}
	b.WriteString("\n")
}

// HTML renders the model as a minimal standalone HTML document.
func (m *Model) HTML() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"></head>\n<body>\n")
	for _, item := range m.Items {
		switch item.Kind {
		case KindHeading:
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", item.Level, html.EscapeString(item.Text), item.Level)
		case KindParagraph:
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(item.Text))
		case KindTable:
			writeHTMLTable(&b, item.Table)
		}
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeHTMLTable(b *strings.Builder, grid *edit.TableGrid) {
	if grid == nil || len(grid.Data) == 0 {
		return
	}
	b.WriteString("<table>\n")
	for rowIndex, cells := range grid.Data {
		tag := "td"
		if rowIndex == 0 {
			tag = "th"
		}
		b.WriteString("<tr>")
		for _, cell := range cells {
			fmt.Fprintf(b, "<%s>%s</%s>", tag, html.EscapeString(cell), tag)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
}

// JSON renders the model as indented JSON.
func (m *Model) JSON() (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
