package docx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"docxfix/docx/docxtest"
)

func TestOpen(t *testing.T) {
	name := docxtest.Write(t, docxtest.Para(docxtest.Run("hello"))+docxtest.Section(1440, 1440, 1440, 1440))

	pkg, err := Open(name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if pkg.MainPartName() != "word/document.xml" {
		t.Errorf("MainPartName() = %q", pkg.MainPartName())
	}
	want := []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml"}
	if !slices.Equal(pkg.PartNames(), want) {
		t.Errorf("PartNames() = %v, want %v", pkg.PartNames(), want)
	}
	if got := pkg.Document().Paragraphs()[0].Text(); got != "hello" {
		t.Errorf("paragraph text = %q", got)
	}
	if pkg.Part("word/missing.xml") != nil {
		t.Error("Part() returned unknown part")
	}
}

func TestOpen_MainPartFromRelationships(t *testing.T) {
	parts := []docxtest.Part{
		{Name: "[Content_Types].xml", Data: docxtest.ContentTypes},
		{Name: "_rels/.rels", Data: `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="/content/main.xml"/>` +
			`</Relationships>`},
		{Name: "content/main.xml", Data: docxtest.DocumentXML(docxtest.Para(docxtest.Run("moved")))},
	}
	name := docxtest.WriteParts(t, filepath.Join(t.TempDir(), "moved.docx"), parts)

	pkg, err := Open(name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if pkg.MainPartName() != "content/main.xml" {
		t.Errorf("MainPartName() = %q, want content/main.xml", pkg.MainPartName())
	}
}

func TestOpen_NoRelationshipsFallsBack(t *testing.T) {
	parts := []docxtest.Part{
		{Name: "word/document.xml", Data: docxtest.DocumentXML(docxtest.Para(docxtest.Run("x")))},
	}
	name := docxtest.WriteParts(t, filepath.Join(t.TempDir(), "bare.docx"), parts)

	pkg, err := Open(name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if pkg.MainPartName() != defaultMainPart {
		t.Errorf("MainPartName() = %q", pkg.MainPartName())
	}
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	notZip := filepath.Join(dir, "plain.docx")
	if err := os.WriteFile(notZip, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.docx")},
		{"not a zip", notZip},
		{"no main part", docxtest.WriteParts(t, filepath.Join(dir, "nomain.docx"), []docxtest.Part{
			{Name: "[Content_Types].xml", Data: docxtest.ContentTypes},
			{Name: "_rels/.rels", Data: docxtest.PackageRels},
		})},
		{"broken xml", docxtest.WriteParts(t, filepath.Join(dir, "broken.docx"), []docxtest.Part{
			{Name: "word/document.xml", Data: `<w:document xmlns:w="` + NamespaceMain + `"><w:body></w:document>`},
		})},
		{"broken relationships", docxtest.WriteParts(t, filepath.Join(dir, "rels.docx"), []docxtest.Part{
			{Name: "_rels/.rels", Data: `<Relationships`},
			{Name: "word/document.xml", Data: docxtest.DocumentXML("")},
		})},
		{"workbook", docxtest.WriteParts(t, filepath.Join(dir, "book.docx"), []docxtest.Part{
			{Name: "word/document.xml", Data: `<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"/>`},
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(tt.path); err == nil {
				t.Error("Open() expected error")
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	name := docxtest.Write(t, docxtest.Para(docxtest.Run("keep me"))+docxtest.Section(1440, 1440, 1440, 1440))

	pkg, err := Open(name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	pkg.Document().Sections()[0].SetMargins(Margins{Top: 720, Bottom: 720, Left: 1080, Right: 1080})

	dir := t.TempDir()
	out := filepath.Join(dir, "out.docx")
	if err := pkg.Save(out, false); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if got := docxtest.ReadPart(t, out, "word/styles.xml"); got != docxtest.Styles {
		t.Errorf("untouched part changed: %s", got)
	}
	doc := docxtest.ReadPart(t, out, "word/document.xml")
	if !strings.Contains(doc, `w:top="720"`) || !strings.Contains(doc, "keep me") {
		t.Errorf("main part not saved: %s", doc)
	}
	if !strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`) {
		t.Errorf("declaration lost: %s", doc)
	}

	reopened, err := Open(out)
	if err != nil {
		t.Fatalf("Open() saved package error = %v", err)
	}
	if !slices.Equal(reopened.PartNames(), pkg.PartNames()) {
		t.Errorf("part order changed: %v", reopened.PartNames())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestSave_FixZip(t *testing.T) {
	name := docxtest.Write(t, docxtest.Para(docxtest.Run("x")))

	pkg, err := Open(name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	out := filepath.Join(t.TempDir(), "out.docx")
	if err := pkg.Save(out, true); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	r, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("open saved package: %v", err)
	}
	defer r.Close()

	if len(r.File) != 4 {
		t.Errorf("saved %d parts, want 4", len(r.File))
	}
	for _, f := range r.File {
		if f.Flags&0x8 != 0 {
			t.Errorf("part %s still uses data descriptor", f.Name)
		}
	}
	if got := docxtest.ReadPart(t, out, "word/styles.xml"); got != docxtest.Styles {
		t.Errorf("untouched part changed: %s", got)
	}
}

func TestSave_Unwritable(t *testing.T) {
	pkg, err := Open(docxtest.Write(t, docxtest.Para(docxtest.Run("x"))))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := pkg.Save(filepath.Join(t.TempDir(), "missing", "out.docx"), false); err == nil {
		t.Error("Save() expected error for missing directory")
	}
}
