// Package docxtest builds small .docx packages for tests.
package docxtest

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const ContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const PackageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const Styles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:docDefaults/></w:styles>`

// DocumentXML wraps body content into main document part.
func DocumentXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
		`<w:body>` + body + `</w:body></w:document>`
}

// Part is a named container entry.
type Part struct {
	Name string
	Data string
}

// DefaultParts returns parts of a minimal package with given body.
func DefaultParts(body string) []Part {
	return []Part{
		{Name: "[Content_Types].xml", Data: ContentTypes},
		{Name: "_rels/.rels", Data: PackageRels},
		{Name: "word/document.xml", Data: DocumentXML(body)},
		{Name: "word/styles.xml", Data: Styles},
	}
}

// WriteParts creates zip container with parts in given order.
func WriteParts(t testing.TB, name string, parts []Part) string {
	t.Helper()

	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("create package: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.Name, Method: zip.Deflate})
		if err != nil {
			t.Fatalf("create part %s: %v", p.Name, err)
		}
		if _, err := io.WriteString(w, p.Data); err != nil {
			t.Fatalf("write part %s: %v", p.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close package: %v", err)
	}
	return name
}

// Write creates input.docx with given body in a temporary directory.
func Write(t testing.TB, body string) string {
	t.Helper()
	return WriteParts(t, filepath.Join(t.TempDir(), "input.docx"), DefaultParts(body))
}

// ReadPart returns content of a single part of the package.
func ReadPart(t testing.TB, name, part string) string {
	t.Helper()

	r, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("open package %s: %v", name, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != part {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open part %s: %v", part, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read part %s: %v", part, err)
		}
		return string(data)
	}
	t.Fatalf("part %s not found in %s", part, name)
	return ""
}

// Para builds paragraph from raw runs content.
func Para(content ...string) string {
	return "<w:p>" + strings.Join(content, "") + "</w:p>"
}

// Run builds run with a single text element.
func Run(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

// PageBreak builds run holding page break marker.
func PageBreak() string {
	return `<w:r><w:br w:type="page"/></w:r>`
}

// Section builds body level section properties with given margins in twips.
func Section(top, right, bottom, left int) string {
	return `<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>` +
		`<w:pgMar w:top="` + strconv.Itoa(top) + `" w:right="` + strconv.Itoa(right) + `" w:bottom="` + strconv.Itoa(bottom) +
		`" w:left="` + strconv.Itoa(left) + `" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`
}
