package edit

import (
	"unicode"

	"hwpx-mcp-go/internal/hwpx"
)

// DefaultMaxResults caps a search when the caller does not.
const DefaultMaxResults = 50

// contextRadius is how many characters of original-case paragraph text are
// kept on each side of a match.
const contextRadius = 20

// Match is one search hit. Position counts characters into the paragraph's
// logical text.
type Match struct {
	ParagraphIndex int    `json:"paragraphIndex"`
	Position       int    `json:"position"`
	Context        string `json:"context"`
}

// FindResult is an ordered match list. TotalMatches mirrors the returned
// count: when the cap stops the scan early, unscanned paragraphs are not
// counted.
type FindResult struct {
	Matches      []Match `json:"matches"`
	TotalMatches int     `json:"totalMatches"`
}

// Find scans paragraphs in document order for the needle, case sensitive or
// not, and returns up to maxResults matches with context windows. The scan
// advances past each hit by the needle length, so matches longer than one
// character never overlap themselves.
func Find(doc *hwpx.Document, textToFind string, matchCase bool, maxResults int) (*FindResult, error) {
	if textToFind == "" {
		return nil, hwpx.InvalidArgumentError("text to find must not be empty")
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	needle := []rune(textToFind)
	result := &FindResult{Matches: []Match{}}

	for index, para := range doc.Paragraphs() {
		original := []rune(para.Text())
		cursor := 0
		for {
			pos := indexRunes(original, needle, cursor, matchCase)
			if pos < 0 {
				break
			}
			start := pos - contextRadius
			if start < 0 {
				start = 0
			}
			end := pos + len(needle) + contextRadius
			if end > len(original) {
				end = len(original)
			}
			result.Matches = append(result.Matches, Match{
				ParagraphIndex: index,
				Position:       pos,
				Context:        string(original[start:end]),
			})
			if len(result.Matches) >= maxResults {
				result.TotalMatches = len(result.Matches)
				return result, nil
			}
			step := len(needle)
			if step < 1 {
				step = 1
			}
			cursor = pos + step
		}
	}

	result.TotalMatches = len(result.Matches)
	return result, nil
}

// indexRunes finds the needle in haystack at or after from, optionally
// folding case per rune.
func indexRunes(haystack, needle []rune, from int, matchCase bool) int {
	if from < 0 {
		from = 0
	}
	for pos := from; pos+len(needle) <= len(haystack); pos++ {
		if runesEqual(haystack[pos:pos+len(needle)], needle, matchCase) {
			return pos
		}
	}
	return -1
}

func runesEqual(a, b []rune, matchCase bool) bool {
	for i := range b {
		x, y := a[i], b[i]
		if !matchCase {
			x, y = unicode.ToLower(x), unicode.ToLower(y)
		}
		if x != y {
			return false
		}
	}
	return true
}
