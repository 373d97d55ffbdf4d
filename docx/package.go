// Package docx reads, edits and writes WordprocessingML (.docx) packages.
// The main document part is kept as etree DOM, every other part of the
// container is carried through unchanged.
package docx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"golang.org/x/net/html/charset"

	"docxfix/archive"
)

const (
	packageRelsPart = "_rels/.rels"
	defaultMainPart = "word/document.xml"
)

var officeDocumentRelTypes = []string{
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument",
	"http://purl.oclc.org/ooxml/officeDocument/relationships/officeDocument",
}

// Part is a single file of the package container.
type Part struct {
	Name     string
	Method   uint16
	Modified time.Time
	Comment  string
	Data     []byte
}

// Package is a loaded .docx container.
type Package struct {
	parts []*Part
	main  *Part
	doc   *Document
}

// Open loads the whole package into memory and parses its main document
// part.
func Open(name string) (*Package, error) {
	pkg := &Package{}

	err := archive.Walk(name, archive.All, func(_ string, f *zip.File) error {
		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open part %q: %w", f.Name, err)
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("unable to read part %q: %w", f.Name, err)
		}
		pkg.parts = append(pkg.parts, &Part{
			Name:     f.Name,
			Method:   f.Method,
			Modified: f.Modified,
			Comment:  f.Comment,
			Data:     data,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read package (%s): %w", name, err)
	}

	mainName, err := pkg.findMainPart()
	if err != nil {
		return nil, err
	}
	if pkg.main = pkg.Part(mainName); pkg.main == nil {
		return nil, fmt.Errorf("main document part %q is missing", mainName)
	}

	xml := newXMLDocument()
	if err := xml.ReadFromBytes(pkg.main.Data); err != nil {
		return nil, fmt.Errorf("unable to parse main document part %q: %w", mainName, err)
	}
	if pkg.doc, err = newDocument(xml); err != nil {
		return nil, err
	}
	return pkg, nil
}

func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		PreserveCData: true,
	}
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	return doc
}

// findMainPart resolves main document part name through package
// relationships, falling back to conventional location.
func (p *Package) findMainPart() (string, error) {
	rels := p.Part(packageRelsPart)
	if rels == nil {
		return defaultMainPart, nil
	}

	doc := newXMLDocument()
	if err := doc.ReadFromBytes(rels.Data); err != nil {
		return "", fmt.Errorf("unable to parse package relationships: %w", err)
	}
	if doc.Root() == nil {
		return defaultMainPart, nil
	}
	for _, rel := range doc.Root().ChildElements() {
		if rel.Tag != "Relationship" || strings.EqualFold(rel.SelectAttrValue("TargetMode", ""), "External") {
			continue
		}
		typ := rel.SelectAttrValue("Type", "")
		for _, want := range officeDocumentRelTypes {
			if typ == want {
				target := strings.TrimPrefix(path.Clean("/"+rel.SelectAttrValue("Target", "")), "/")
				if len(target) == 0 {
					return "", errors.New("package relationship to main document part has no target")
				}
				return target, nil
			}
		}
	}
	return defaultMainPart, nil
}

// Part returns part by name, nil when there is no such part.
func (p *Package) Part(name string) *Part {
	for _, part := range p.parts {
		if part.Name == name {
			return part
		}
	}
	return nil
}

// PartNames lists parts in container order.
func (p *Package) PartNames() []string {
	names := make([]string, 0, len(p.parts))
	for _, part := range p.parts {
		names = append(names, part.Name)
	}
	return names
}

func (p *Package) MainPartName() string {
	return p.main.Name
}

// Document gives access to the main document part.
func (p *Package) Document() *Document {
	return p.doc
}

// Save serializes the package to the named file. Output is assembled in a
// temporary file in the destination directory and renamed into place, so
// existing destination is never left half written. When fixZip is set the
// archive is additionally rewritten without data descriptors.
func (p *Package) Save(name string, fixZip bool) error {
	data, err := p.doc.Bytes()
	if err != nil {
		return fmt.Errorf("unable to serialize main document part: %w", err)
	}
	p.main.Data = data

	if !fixZip {
		return writeAtomic(name, p.writeTo)
	}

	staging, err := os.CreateTemp("", "docx-*.zip")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	defer os.Remove(staging.Name())

	if err := p.writeTo(staging); err != nil {
		staging.Close()
		return err
	}
	if err := staging.Close(); err != nil {
		return fmt.Errorf("unable to finalize temporary file: %w", err)
	}
	return writeAtomic(name, func(w io.Writer) error {
		return copyZipWithoutDataDescriptors(staging.Name(), w)
	})
}

func (p *Package) writeTo(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, part := range p.parts {
		method := part.Method
		if method != zip.Store {
			method = zip.Deflate
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.Name,
			Method:   method,
			Modified: part.Modified,
			Comment:  part.Comment,
		})
		if err != nil {
			return fmt.Errorf("unable to add part %q: %w", part.Name, err)
		}
		if _, err := fw.Write(part.Data); err != nil {
			return fmt.Errorf("unable to write part %q: %w", part.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	return nil
}

func writeAtomic(name string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err = write(f); err != nil {
		return err
	}
	if err = f.Chmod(0644); err != nil {
		return fmt.Errorf("unable to set output file permissions: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}
	if err = os.Rename(f.Name(), name); err != nil {
		return fmt.Errorf("unable to move output file into place: %w", err)
	}
	return nil
}

func copyZipWithoutDataDescriptors(from string, to io.Writer) error {

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(to)

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to copy archive entry (%s): %w", file.Name, err)
		}
	}
	return w.Close()
}
