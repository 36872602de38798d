package hwpx

import (
	"strconv"

	"github.com/beevik/etree"
)

const (
	tagStyles         = "styles"
	tagStyle          = "style"
	tagCharProperties = "charProperties"
	tagCharPr         = "charPr"
	tagBold           = "bold"

	qualStyle  = "hh:style"
	qualBold   = "hh:bold"
)

// Header wraps the shared header part: the style table and character
// property records referenced by runs.
type Header struct {
	doc          *Document
	xml          *etree.Document
	partName     string
	dirty        bool
	boldVariants map[string]string
}

// MarkDirty flags the header for re-serialization on the next save.
func (h *Header) MarkDirty() { h.dirty = true }

// Style is one named formatting record of the document style table.
type Style struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	EngName     string `json:"engName"`
	Type        string `json:"type"`
	ParaPrIDRef string `json:"paraPrIDRef"`
	CharPrIDRef string `json:"charPrIDRef"`
}

// Styles lists the document's style table in order.
func (h *Header) Styles() []Style {
	styles := h.stylesElement()
	if styles == nil {
		return nil
	}
	var out []Style
	for _, el := range styles.ChildElements() {
		if el.Tag != tagStyle {
			continue
		}
		out = append(out, Style{
			ID:          el.SelectAttrValue("id", ""),
			Name:        el.SelectAttrValue("name", ""),
			EngName:     el.SelectAttrValue("engName", ""),
			Type:        el.SelectAttrValue("type", ""),
			ParaPrIDRef: el.SelectAttrValue("paraPrIDRef", ""),
			CharPrIDRef: el.SelectAttrValue("charPrIDRef", ""),
		})
	}
	return out
}

// CreateStyle appends a named style cloned from the last existing slot. A
// name that already exists is a no-op, never an error.
func (h *Header) CreateStyle(name string) error {
	styles := h.stylesElement()
	if styles == nil {
		return NotFoundError(CodeElementNotFound, "header has no style table")
	}
	var last *etree.Element
	maxID := -1
	for _, el := range styles.ChildElements() {
		if el.Tag != tagStyle {
			continue
		}
		if el.SelectAttrValue("name", "") == name {
			return nil
		}
		if id, err := strconv.Atoi(el.SelectAttrValue("id", "")); err == nil && id > maxID {
			maxID = id
		}
		last = el
	}
	if last == nil {
		return NotFoundError(CodeElementNotFound, "style table has no entries to clone")
	}
	clone := last.Copy()
	clone.CreateAttr("id", strconv.Itoa(maxID+1))
	clone.CreateAttr("name", name)
	clone.CreateAttr("engName", name)
	styles.AddChild(clone)
	bumpItemCount(styles)
	h.MarkDirty()
	return nil
}

// BoldCharPr returns the id of a character-property record identical to
// base but with bold set, creating and caching it on first use.
func (h *Header) BoldCharPr(base string) (string, error) {
	if id, ok := h.boldVariants[base]; ok {
		return id, nil
	}
	props := h.charPropertiesElement()
	if props == nil {
		return "", NotFoundError(CodeElementNotFound, "header has no character property table")
	}
	var source *etree.Element
	maxID := -1
	for _, el := range props.ChildElements() {
		if el.Tag != tagCharPr {
			continue
		}
		id := el.SelectAttrValue("id", "")
		if id == base {
			source = el
		}
		if n, err := strconv.Atoi(id); err == nil && n > maxID {
			maxID = n
		}
	}
	if source == nil {
		return "", NotFoundError(CodeElementNotFound, "no character property record with id %s", base)
	}
	clone := source.Copy()
	newID := strconv.Itoa(maxID + 1)
	clone.CreateAttr("id", newID)
	hasBold := false
	for _, child := range clone.ChildElements() {
		if child.Tag == tagBold {
			hasBold = true
			break
		}
	}
	if !hasBold {
		clone.CreateElement(qualBold)
	}
	props.AddChild(clone)
	bumpItemCount(props)
	if h.boldVariants == nil {
		h.boldVariants = make(map[string]string)
	}
	h.boldVariants[base] = newID
	h.MarkDirty()
	return newID, nil
}

// BoldCharPrBase reverse-looks-up the record a bold variant created in
// this session was cloned from. Variants from earlier sessions are not
// tracked; the caller leaves those references untouched.
func (h *Header) BoldCharPrBase(id string) (string, bool) {
	for base, bold := range h.boldVariants {
		if bold == id {
			return base, true
		}
	}
	return "", false
}

func (h *Header) stylesElement() *etree.Element {
	return findDescendant(h.xml.Root(), tagStyles)
}

func (h *Header) charPropertiesElement() *etree.Element {
	return findDescendant(h.xml.Root(), tagCharProperties)
}

func findDescendant(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
		if found := findDescendant(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func bumpItemCount(el *etree.Element) {
	raw := el.SelectAttrValue("itemCnt", "")
	if raw == "" {
		return
	}
	if n, err := strconv.Atoi(raw); err == nil {
		el.CreateAttr("itemCnt", strconv.Itoa(n+1))
	}
}
