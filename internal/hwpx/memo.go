package hwpx

import (
	"strings"

	"github.com/beevik/etree"
)

// Memo is one memo-group entry: out-of-line comment content joined to an
// in-line field-begin anchor by a shared memo id.
type Memo struct {
	section *Section
	el      *etree.Element
}

// Element returns the raw memo node.
func (m *Memo) Element() *etree.Element { return m.el }

// ID returns the memo id carried on the entry.
func (m *Memo) ID() string {
	return m.el.SelectAttrValue("id", "")
}

// Text returns the memo's comment text, paragraphs joined by newlines.
func (m *Memo) Text() string {
	paraList := findDescendant(m.el, tagParaList)
	if paraList == nil {
		return ""
	}
	var parts []string
	for _, child := range paraList.ChildElements() {
		if child.Tag == tagParagraph {
			p := &Paragraph{section: m.section, el: child}
			parts = append(parts, p.Text())
		}
	}
	return strings.Join(parts, "\n")
}
