package docx

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"docxfix/utils/debug"
)

// Document gives typed access to the body of the main document part. All
// changes are made directly in the underlying XML tree.
type Document struct {
	xml  *etree.Document
	body *etree.Element
	n    names
}

// Stats holds element counts visible through Document.
type Stats struct {
	Paragraphs int
	Tables     int
	Sections   int
}

// newDocument validates the main part root and binds prefix used for new
// names. When main namespace is only declared as default one, explicit "w"
// prefix is declared on the root.
func newDocument(doc *etree.Document) (*Document, error) {
	root := doc.Root()
	if root == nil {
		return nil, errors.New("main document part has no root element")
	}
	if !is(root, "document") {
		return nil, fmt.Errorf("unexpected root element %q in main document part", root.FullTag())
	}
	body := firstChild(root, "body")
	if body == nil {
		return nil, errors.New("main document part has no body")
	}

	d := &Document{xml: doc, body: body}
	for _, a := range root.Attr {
		if a.Space == "xmlns" && isMainNamespace(a.Value) {
			d.n.prefix = a.Key
			break
		}
	}
	if len(d.n.prefix) == 0 {
		d.n.prefix = "w"
		root.CreateAttr("xmlns:w", root.NamespaceURI())
	}
	return d, nil
}

// Paragraphs returns paragraphs which are direct children of the body, in
// document order. Paragraphs inside tables are not included.
func (d *Document) Paragraphs() []Paragraph {
	els := childrenOf(d.body, "p")
	out := make([]Paragraph, 0, len(els))
	for _, e := range els {
		out = append(out, Paragraph{el: e, n: d.n})
	}
	return out
}

// Tables returns tables which are direct children of the body.
func (d *Document) Tables() []Table {
	els := childrenOf(d.body, "tbl")
	out := make([]Table, 0, len(els))
	for _, e := range els {
		out = append(out, Table{el: e, n: d.n})
	}
	return out
}

// Sections returns section properties in document order: those carried by
// body paragraphs followed by the final body level one.
func (d *Document) Sections() []Section {
	var out []Section
	for _, c := range d.body.ChildElements() {
		switch {
		case is(c, "p"):
			if s := firstChild(firstChild(c, "pPr"), "sectPr"); s != nil {
				out = append(out, Section{el: s, n: d.n})
			}
		case is(c, "sectPr"):
			out = append(out, Section{el: c, n: d.n})
		}
	}
	return out
}

func (d *Document) Stats() Stats {
	return Stats{
		Paragraphs: len(childrenOf(d.body, "p")),
		Tables:     len(childrenOf(d.body, "tbl")),
		Sections:   len(d.Sections()),
	}
}

// Bytes serializes the whole main document part.
func (d *Document) Bytes() ([]byte, error) {
	return d.xml.WriteToBytes()
}

// Outline renders human readable structure of the body for debugging.
func (d *Document) Outline() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "body")
	for _, c := range d.body.ChildElements() {
		switch {
		case is(c, "p"):
			p := Paragraph{el: c, n: d.n}
			before, after, _ := p.Spacing()
			tw.Line(1, "p runs=%d before=%q after=%q pageBreakBefore=%t", len(p.Runs()), before, after, p.HasPageBreakBefore())
			for _, r := range p.Runs() {
				tw.TextBlock(2, fmt.Sprintf("r breaks=%d", r.PageBreaks()), r.Text())
			}
			if s := firstChild(firstChild(c, "pPr"), "sectPr"); s != nil {
				outlineSection(tw, 2, Section{el: s, n: d.n})
			}
		case is(c, "tbl"):
			t := Table{el: c, n: d.n}
			tw.Line(1, "tbl rows=%d columns=%d cellSpacing=%t", len(t.Rows()), t.ColumnCount(), t.HasCellSpacing())
			for _, r := range t.Rows() {
				h, _ := r.Height()
				tw.Line(2, "tr height=%q cantSplit=%t", h, r.CantSplit())
			}
		case is(c, "sectPr"):
			outlineSection(tw, 1, Section{el: c, n: d.n})
		default:
			tw.Line(1, "%s", c.FullTag())
		}
	}
	return tw.String()
}

func outlineSection(tw *debug.TreeWriter, depth int, s Section) {
	m, ok := s.Margins()
	if !ok {
		tw.Line(depth, "sectPr margins=none")
		return
	}
	tw.Line(depth, "sectPr margins top=%s bottom=%s left=%s right=%s", m.Top, m.Bottom, m.Left, m.Right)
}
