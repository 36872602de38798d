package hwpx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Well-known part names inside the HWPX container.
const (
	MimeTypePart   = "mimetype"
	MimeType       = "application/hwp+zip"
	HeaderPartName = "Contents/header.xml"

	sectionPartPrefix = "Contents/section"
	sectionPartSuffix = ".xml"
)

// Package is the raw OPC-style ZIP container. It keeps every part's bytes
// and the original entry order so a save rewrites only the parts the
// document actually touched.
type Package struct {
	names []string
	parts map[string][]byte
}

func newPackage() *Package {
	return &Package{parts: make(map[string][]byte)}
}

func openPackage(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ParseError("not a valid HWPX container", err)
	}
	pkg := newPackage()
	for _, file := range zr.File {
		rc, err := file.Open()
		if err != nil {
			return nil, ParseError(fmt.Sprintf("cannot read part %s", file.Name), err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, ParseError(fmt.Sprintf("cannot read part %s", file.Name), err)
		}
		pkg.setPart(file.Name, content)
	}
	if mt, ok := pkg.Part(MimeTypePart); !ok || strings.TrimSpace(string(mt)) != MimeType {
		return nil, ParseError("container is missing the hwpx mimetype part", nil)
	}
	return pkg, nil
}

// Part returns the raw bytes of a named part.
func (p *Package) Part(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

// PartNames returns all part names in container order.
func (p *Package) PartNames() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

func (p *Package) setPart(name string, data []byte) {
	if _, exists := p.parts[name]; !exists {
		p.names = append(p.names, name)
	}
	p.parts[name] = data
}

// sectionPartNames returns the section part names in document order.
func (p *Package) sectionPartNames() []string {
	var sections []string
	for name := range p.parts {
		if strings.HasPrefix(name, sectionPartPrefix) && strings.HasSuffix(name, sectionPartSuffix) {
			sections = append(sections, name)
		}
	}
	sort.Strings(sections)
	return sections
}

// writeTo serializes the container. The mimetype part is written first and
// uncompressed, as consumers expect for OPC-style packages; everything else
// keeps its original order.
func (p *Package) writeTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	if data, ok := p.parts[MimeTypePart]; ok {
		header := &zip.FileHeader{Name: MimeTypePart, Method: zip.Store}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("create mimetype part: %w", err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("write mimetype part: %w", err)
		}
	}
	for _, name := range p.names {
		if name == MimeTypePart {
			continue
		}
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", name, err)
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return fmt.Errorf("write part %s: %w", name, err)
		}
	}
	return zw.Close()
}
