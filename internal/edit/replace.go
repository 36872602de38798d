package edit

import (
	"strings"

	"hwpx-mcp-go/internal/hwpx"
)

// ReplaceInRuns replaces every occurrence of find in the logical
// concatenation of the run list, including occurrences straddling run
// boundaries, and returns the occurrence count.
//
// Two phases keep the common case cheap. First each run is rewritten
// independently for matches fully inside it. Only when the concatenation
// still contains the needle does the engine rewrite the merged string and
// redistribute it across the runs, weighted by each run's text length going
// into the merged rewrite so run boundaries move minimally.
func ReplaceInRuns(runs []*hwpx.Run, find, replace string) (int, error) {
	if find == "" {
		return 0, hwpx.InvalidArgumentError("find text must not be empty")
	}

	count := 0
	for _, run := range runs {
		text := run.Text()
		if strings.Contains(text, find) {
			count += strings.Count(text, find)
			run.SetText(strings.ReplaceAll(text, find, replace))
		}
	}

	if len(runs) == 0 {
		return count, nil
	}

	weights := make([]int, len(runs))
	var merged strings.Builder
	for i, run := range runs {
		text := run.Text()
		weights[i] = len([]rune(text))
		merged.WriteString(text)
	}
	joined := merged.String()
	if !strings.Contains(joined, find) {
		return count, nil
	}

	count += strings.Count(joined, find)
	updated := []rune(strings.ReplaceAll(joined, find, replace))
	shares := Distribute(len(updated), weights)
	offset := 0
	for i, run := range runs {
		run.SetText(string(updated[offset : offset+shares[i]]))
		offset += shares[i]
	}
	return count, nil
}

// ReplaceAll is the simple whole-text variant: it rewrites each paragraph's
// and table cell's logical text without run awareness and returns the total
// occurrence count.
func ReplaceAll(doc *hwpx.Document, find, replace string) (int, error) {
	if find == "" {
		return 0, hwpx.InvalidArgumentError("find text must not be empty")
	}
	count := 0
	for _, para := range doc.Paragraphs() {
		text := para.Text()
		if strings.Contains(text, find) {
			count += strings.Count(text, find)
			para.SetText(strings.ReplaceAll(text, find, replace))
		}
	}
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				text := cell.Text()
				if strings.Contains(text, find) {
					count += strings.Count(text, find)
					cell.SetText(strings.ReplaceAll(text, find, replace))
				}
			}
		}
	}
	return count, nil
}

// ReplaceInDocumentRuns applies the cross-run engine to every paragraph and
// every table cell paragraph. A cell with no paragraph substructure falls
// back to whole-text replacement.
func ReplaceInDocumentRuns(doc *hwpx.Document, find, replace string) (int, error) {
	if find == "" {
		return 0, hwpx.InvalidArgumentError("find text must not be empty")
	}
	total := 0
	for _, para := range doc.Paragraphs() {
		n, err := ReplaceInRuns(para.Runs(), find, replace)
		if err != nil {
			return total, err
		}
		total += n
	}
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				paras := cell.Paragraphs()
				if len(paras) == 0 {
					text := cell.Text()
					if strings.Contains(text, find) {
						total += strings.Count(text, find)
						cell.SetText(strings.ReplaceAll(text, find, replace))
					}
					continue
				}
				for _, para := range paras {
					n, err := ReplaceInRuns(para.Runs(), find, replace)
					if err != nil {
						return total, err
					}
					total += n
				}
			}
		}
	}
	return total, nil
}

// Replacement is one find/replace pair of a batch.
type Replacement struct {
	Find    string `json:"find"`
	Replace string `json:"replace"`
}

// BatchResult reports one applied pair.
type BatchResult struct {
	Find          string `json:"find"`
	Replace       string `json:"replace"`
	ReplacedCount int    `json:"replacedCount"`
}

// BatchReplace validates every pair before applying any, then applies the
// simple replace per pair in order, so a malformed entry rejects the whole
// batch with the document untouched.
func BatchReplace(doc *hwpx.Document, replacements []Replacement) ([]BatchResult, int, error) {
	for i, item := range replacements {
		if item.Find == "" {
			return nil, 0, hwpx.InvalidArgumentError("replacements[%d].find must not be empty", i)
		}
	}
	results := make([]BatchResult, 0, len(replacements))
	total := 0
	for _, item := range replacements {
		n, err := ReplaceAll(doc, item.Find, item.Replace)
		if err != nil {
			return results, total, err
		}
		total += n
		results = append(results, BatchResult{Find: item.Find, Replace: item.Replace, ReplacedCount: n})
	}
	return results, total, nil
}
