package readmodel

import "strings"

// Chunk is one retrieval-sized slice of document text.
type Chunk struct {
	Index   int    `json:"index"`
	Heading string `json:"heading,omitempty"`
	Text    string `json:"text"`
	Chars   int    `json:"chars"`
}

// ChunkBySection emits one chunk per section, heading included.
func (m *Model) ChunkBySection() []Chunk {
	chunks := make([]Chunk, 0, len(m.Sections))
	for _, section := range m.Sections {
		var parts []string
		if section.Heading != "" {
			parts = append(parts, section.Heading)
		}
		parts = append(parts, section.Paragraphs...)
		text := strings.Join(parts, "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Index:   len(chunks),
			Heading: section.Heading,
			Text:    text,
			Chars:   len([]rune(text)),
		})
	}
	return chunks
}

// ChunkByBudget packs consecutive paragraphs greedily up to budget runes
// per chunk. A single paragraph longer than the budget is sliced into
// budget-sized pieces of its own.
func (m *Model) ChunkByBudget(budget int) []Chunk {
	if budget <= 0 {
		budget = 1000
	}
	var chunks []Chunk
	var pending []string
	pendingLen := 0
	flush := func() {
		if len(pending) == 0 {
			return
		}
		text := strings.Join(pending, "\n")
		chunks = append(chunks, Chunk{Index: len(chunks), Text: text, Chars: len([]rune(text))})
		pending = nil
		pendingLen = 0
	}
	for _, item := range m.Items {
		if item.Kind == KindTable || item.Text == "" {
			continue
		}
		runes := []rune(item.Text)
		if len(runes) > budget {
			flush()
			for start := 0; start < len(runes); start += budget {
				end := min(start+budget, len(runes))
				piece := string(runes[start:end])
				chunks = append(chunks, Chunk{Index: len(chunks), Text: piece, Chars: end - start})
			}
			continue
		}
		if pendingLen > 0 && pendingLen+1+len(runes) > budget {
			flush()
		}
		pending = append(pending, item.Text)
		if pendingLen > 0 {
			pendingLen++
		}
		pendingLen += len(runes)
	}
	flush()
	return chunks
}
