package hwpx

import (
	"bytes"
	"fmt"
	"os"

	"github.com/beevik/etree"
)

// Document is the root aggregate: an ordered sequence of sections backed by
// the container's section XML parts, plus the shared header part.
type Document struct {
	pkg      *Package
	sections []*Section
	header   *Header
}

// Open reads and parses the container at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundError(CodeDocumentNotFound, "document not found: %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return doc, nil
}

// FromBytes parses an in-memory container.
func FromBytes(data []byte) (*Document, error) {
	pkg, err := openPackage(data)
	if err != nil {
		return nil, err
	}
	return fromPackage(pkg)
}

// NewBlank builds a minimal single-section document from the built-in
// template, the starting point for created files.
func NewBlank() (*Document, error) {
	pkg := newPackage()
	for _, part := range blankParts() {
		pkg.setPart(part.name, []byte(part.data))
	}
	return fromPackage(pkg)
}

func fromPackage(pkg *Package) (*Document, error) {
	doc := &Document{pkg: pkg}

	headerData, ok := pkg.Part(HeaderPartName)
	if !ok {
		return nil, ParseError("container has no header part", nil)
	}
	headerXML := etree.NewDocument()
	if err := headerXML.ReadFromBytes(headerData); err != nil {
		return nil, ParseError("malformed header part", err)
	}
	doc.header = &Header{doc: doc, xml: headerXML, partName: HeaderPartName}

	sectionNames := pkg.sectionPartNames()
	if len(sectionNames) == 0 {
		return nil, ParseError("container has no section parts", nil)
	}
	for _, name := range sectionNames {
		data, _ := pkg.Part(name)
		sectionXML := etree.NewDocument()
		if err := sectionXML.ReadFromBytes(data); err != nil {
			return nil, ParseError(fmt.Sprintf("malformed section part %s", name), err)
		}
		if sectionXML.Root() == nil {
			return nil, ParseError(fmt.Sprintf("section part %s has no root element", name), nil)
		}
		doc.sections = append(doc.sections, &Section{
			doc:      doc,
			xml:      sectionXML,
			el:       sectionXML.Root(),
			partName: name,
		})
	}
	return doc, nil
}

// Sections returns the document's sections in order.
func (d *Document) Sections() []*Section { return d.sections }

// Header returns the shared header part (styles, character properties).
func (d *Document) Header() *Header { return d.header }

// Package exposes the raw container for part-level access.
func (d *Document) Package() *Package { return d.pkg }

// Paragraphs returns the flattened ordered view of all top-level paragraphs
// across sections. The slice is rebuilt on every call; indices into it are
// positional and shift after structural edits.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, section := range d.sections {
		out = append(out, section.Paragraphs()...)
	}
	return out
}

// Tables enumerates every table reachable from every paragraph in document
// order, deduplicated by underlying element identity (nested tables are
// reachable through more than one paragraph).
func (d *Document) Tables() []*Table {
	var out []*Table
	seen := make(map[*etree.Element]bool)
	for _, para := range d.Paragraphs() {
		for _, table := range para.Tables() {
			if seen[table.el] {
				continue
			}
			seen[table.el] = true
			out = append(out, table)
		}
	}
	return out
}

// AddParagraph appends a paragraph to the last section and returns it.
func (d *Document) AddParagraph(text string, opts ...ParagraphOption) *Paragraph {
	last := d.sections[len(d.sections)-1]
	return last.AddParagraph(text, opts...)
}

// AddTable appends a rows x cols table anchored at a fresh trailing
// paragraph of the last section.
func (d *Document) AddTable(rows, cols int) *Table {
	last := d.sections[len(d.sections)-1]
	return last.addTable(rows, cols)
}

// Memos returns every memo-group entry across sections.
func (d *Document) Memos() []*Memo {
	var out []*Memo
	for _, section := range d.sections {
		out = append(out, section.memos()...)
	}
	return out
}

// RemoveMemo deletes a memo-group entry from its section.
func (d *Document) RemoveMemo(m *Memo) {
	group := m.el.Parent()
	if group != nil {
		group.RemoveChild(m.el)
		m.section.MarkDirty()
	}
}

// Bytes serializes the document back into container bytes. Dirty sections
// and the header are re-encoded; untouched parts are copied through as-is.
func (d *Document) Bytes() ([]byte, error) {
	for _, section := range d.sections {
		if !section.dirty {
			continue
		}
		data, err := section.xml.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("serialize section %s: %w", section.partName, err)
		}
		d.pkg.setPart(section.partName, data)
		section.dirty = false
	}
	if d.header.dirty {
		data, err := d.header.xml.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("serialize header: %w", err)
		}
		d.pkg.setPart(d.header.partName, data)
		d.header.dirty = false
	}
	var buf bytes.Buffer
	if err := d.pkg.writeTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the full container to path.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// SetPartXML replaces a container part after checking the payload parses as
// XML. Section and header parts are re-parsed so the object model stays in
// sync with the replaced bytes.
func (d *Document) SetPartXML(name, xmlString string) error {
	if _, ok := d.pkg.Part(name); !ok {
		return NotFoundError(CodeElementNotFound, "package has no part named %s", name)
	}
	probe := etree.NewDocument()
	if err := probe.ReadFromString(xmlString); err != nil {
		return ParseError(fmt.Sprintf("replacement for %s is not well-formed XML", name), err)
	}
	d.pkg.setPart(name, []byte(xmlString))
	for i, section := range d.sections {
		if section.partName != name {
			continue
		}
		if probe.Root() == nil {
			return ParseError(fmt.Sprintf("replacement for %s has no root element", name), nil)
		}
		d.sections[i] = &Section{doc: d, xml: probe, el: probe.Root(), partName: name}
	}
	if name == d.header.partName {
		d.header = &Header{doc: d, xml: probe, partName: name}
	}
	return nil
}
