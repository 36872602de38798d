package edit

import (
	"hwpx-mcp-go/internal/hwpx"
)

// TableGrid is the full cell-text matrix of one table.
type TableGrid struct {
	Rows int        `json:"rows"`
	Cols int        `json:"cols"`
	Data [][]string `json:"data"`
}

// SpanInfo reports a removed merge region.
type SpanInfo struct {
	StartRow int `json:"startRow"`
	StartCol int `json:"startCol"`
	RowSpan  int `json:"rowSpan"`
	ColSpan  int `json:"colSpan"`
}

// AddTable appends a rows x cols table, fills it row-major from data
// clipped to the grid bounds, and returns the new table's index in the
// deduplicated enumeration.
func AddTable(doc *hwpx.Document, rows, cols int, data [][]string) (int, error) {
	if rows <= 0 || cols <= 0 {
		return 0, hwpx.InvalidArgumentError("rows and cols must be at least 1")
	}
	table := doc.AddTable(rows, cols)
	for r := 0; r < rows && r < len(data); r++ {
		rowData := data[r]
		for c := 0; c < cols && c < len(rowData); c++ {
			table.Rows()[r].Cells()[c].SetText(rowData[c])
		}
	}
	return len(doc.Tables()) - 1, nil
}

// TableData returns the table's full cell-text grid.
func TableData(doc *hwpx.Document, tableIndex int) (*TableGrid, error) {
	table, err := resolveTable(doc, tableIndex)
	if err != nil {
		return nil, err
	}
	rows := table.Rows()
	grid := &TableGrid{Rows: len(rows), Data: make([][]string, 0, len(rows))}
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
	return grid, nil
}

// SetCellText writes one cell's text. With logical addressing a coordinate
// inside a merged region resolves to the region's anchor; splitMerged
// splits that region first so the originally addressed cell is written.
func SetCellText(doc *hwpx.Document, tableIndex, row, col int, text string, logical, splitMerged bool) error {
	table, err := resolveTable(doc, tableIndex)
	if err != nil {
		return err
	}
	cell, err := cellAt(table, tableIndex, row, col)
	if err != nil {
		return err
	}
	if logical {
		anchorRow, anchorCol, anchor := resolveAnchor(table, row, col)
		if anchor != nil {
			if splitMerged {
				if rs, cs := anchor.Span(); rs > 1 || cs > 1 {
					if _, err := SplitCell(doc, tableIndex, anchorRow, anchorCol); err != nil {
						return err
					}
				}
				// After the split the addressed cell is writable itself.
			} else {
				cell = anchor
			}
		}
	}
	cell.SetText(text)
	return nil
}

// ReplaceTableRegion writes a row-major block of values with its top-left
// at (startRow, startCol) and returns the number of updated cells. Bounds
// are validated for the whole block before any cell is written.
func ReplaceTableRegion(doc *hwpx.Document, tableIndex, startRow, startCol int, values [][]string, logical, splitMerged bool) (int, error) {
	table, err := resolveTable(doc, tableIndex)
	if err != nil {
		return 0, err
	}
	rows := table.Rows()
	for r := range values {
		rowIdx := startRow + r
		if rowIdx < 0 || rowIdx >= len(rows) {
			return 0, hwpx.IndexRangeError(hwpx.CodeTableIndexOutOfRange, "row %d outside table bounds", rowIdx)
		}
		cells := rows[rowIdx].Cells()
		for c := range values[r] {
			colIdx := startCol + c
			if colIdx < 0 || colIdx >= len(cells) {
				return 0, hwpx.IndexRangeError(hwpx.CodeTableIndexOutOfRange, "col %d outside table bounds", colIdx)
			}
		}
	}
	updated := 0
	for r := range values {
		for c := range values[r] {
			if err := SetCellText(doc, tableIndex, startRow+r, startCol+c, values[r][c], logical, splitMerged); err != nil {
				return updated, err
			}
			updated++
		}
	}
	return updated, nil
}

// MergeCells merges the rectangle (startRow,startCol)-(endRow,endCol): the
// top-left anchor carries the combined span, every other cell in the region
// gets a 0/0 span and cleared text.
func MergeCells(doc *hwpx.Document, tableIndex, startRow, startCol, endRow, endCol int) error {
	table, err := resolveTable(doc, tableIndex)
	if err != nil {
		return err
	}
	if startRow > endRow || startCol > endCol {
		return hwpx.InvalidArgumentError("start coordinates must not exceed end coordinates")
	}
	rows := table.Rows()
	if startRow < 0 || endRow >= len(rows) {
		return hwpx.IndexRangeError(hwpx.CodeTableIndexOutOfRange, "row range %d..%d outside table bounds", startRow, endRow)
	}
	if startCol < 0 || endCol >= len(rows[startRow].Cells()) {
		return hwpx.IndexRangeError(hwpx.CodeTableIndexOutOfRange, "col range %d..%d outside table bounds", startCol, endCol)
	}

	anchor := rows[startRow].Cells()[startCol]
	if anchor.SpanElement() == nil {
		return hwpx.NotFoundError(hwpx.CodeElementNotFound, "anchor cell has no span metadata")
	}
	anchor.SetSpan(endRow-startRow+1, endCol-startCol+1)

	for r := startRow; r <= endRow; r++ {
		cells := rows[r].Cells()
		for c := startCol; c <= endCol; c++ {
			if r == startRow && c == startCol {
				continue
			}
			if c >= len(cells) {
				continue
			}
			cell := cells[c]
			if cell.SpanElement() != nil {
				cell.SetSpan(0, 0)
			}
			cell.SetText("")
		}
	}
	return nil
}

// SplitCell dissolves the merge region anchored at (row, col), restoring a
// 1/1 span on every cell it covered, and returns the removed span. A cell
// without span metadata is a no-op reported as a 1/1 span.
func SplitCell(doc *hwpx.Document, tableIndex, row, col int) (*SpanInfo, error) {
	table, err := resolveTable(doc, tableIndex)
	if err != nil {
		return nil, err
	}
	cell, err := cellAt(table, tableIndex, row, col)
	if err != nil {
		return nil, err
	}
	info := &SpanInfo{StartRow: row, StartCol: col, RowSpan: 1, ColSpan: 1}
	if cell.SpanElement() == nil {
		return info, nil
	}
	info.RowSpan, info.ColSpan = cell.Span()
	cell.SetSpan(1, 1)

	rows := table.Rows()
	rowSpan := info.RowSpan
	if rowSpan < 1 {
		rowSpan = 1
	}
	colSpan := info.ColSpan
	if colSpan < 1 {
		colSpan = 1
	}
	for r := row; r < row+rowSpan && r < len(rows); r++ {
		cells := rows[r].Cells()
		for c := col; c < col+colSpan && c < len(cells); c++ {
			if r == row && c == col {
				continue
			}
			if cells[c].SpanElement() != nil {
				cells[c].SetSpan(1, 1)
			}
		}
	}
	return info, nil
}

// FormatTableHeader toggles bold on every run of every paragraph in row 0.
// A nil flag is a no-op.
func FormatTableHeader(doc *hwpx.Document, tableIndex int, hasHeaderRow *bool) error {
	if hasHeaderRow == nil {
		return nil
	}
	table, err := resolveTable(doc, tableIndex)
	if err != nil {
		return err
	}
	rows := table.Rows()
	if len(rows) == 0 {
		return nil
	}
	header := doc.Header()
	for _, cell := range rows[0].Cells() {
		for _, para := range cell.Paragraphs() {
			for _, run := range para.Runs() {
				if *hasHeaderRow {
					bold, err := header.BoldCharPr(run.CharPrRef())
					if err != nil {
						return err
					}
					run.SetCharPrRef(bold)
				} else if base, ok := header.BoldCharPrBase(run.CharPrRef()); ok {
					run.SetCharPrRef(base)
				}
			}
		}
	}
	return nil
}

// resolveTable re-resolves a positional table index against the current
// deduplicated enumeration.
func resolveTable(doc *hwpx.Document, tableIndex int) (*hwpx.Table, error) {
	tables := doc.Tables()
	if tableIndex < 0 || tableIndex >= len(tables) {
		return nil, hwpx.IndexRangeError(hwpx.CodeTableIndexOutOfRange, "invalid table index %d (document has %d tables)", tableIndex, len(tables))
	}
	return tables[tableIndex], nil
}

func cellAt(table *hwpx.Table, tableIndex, row, col int) (*hwpx.Cell, error) {
	rows := table.Rows()
	if row < 0 || row >= len(rows) {
		return nil, hwpx.IndexRangeError(hwpx.CodeTableIndexOutOfRange, "invalid row %d for table %d", row, tableIndex)
	}
	cells := rows[row].Cells()
	if col < 0 || col >= len(cells) {
		return nil, hwpx.IndexRangeError(hwpx.CodeTableIndexOutOfRange, "invalid col %d for table %d", col, tableIndex)
	}
	return cells[col], nil
}

// resolveAnchor finds the merged-region anchor covering (row, col), or nil
// when the coordinate is not part of a merged region.
func resolveAnchor(table *hwpx.Table, row, col int) (int, int, *hwpx.Cell) {
	rows := table.Rows()
	for r, tableRow := range rows {
		for c, cell := range tableRow.Cells() {
			rowSpan, colSpan := cell.Span()
			if rowSpan < 1 || colSpan < 1 {
				continue
			}
			if r <= row && row < r+rowSpan && c <= col && col < c+colSpan {
				if r == row && c == col && rowSpan == 1 && colSpan == 1 {
					return r, c, nil
				}
				return r, c, cell
			}
		}
	}
	return row, col, nil
}
