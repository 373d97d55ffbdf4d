package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// Paragraph wraps w:p element.
type Paragraph struct {
	el *etree.Element
	n  names
}

// Run wraps w:r element.
type Run struct {
	el *etree.Element
	n  names
}

// Table wraps w:tbl element.
type Table struct {
	el *etree.Element
	n  names
}

// Row wraps w:tr element.
type Row struct {
	el *etree.Element
	n  names
}

// Section wraps w:sectPr element.
type Section struct {
	el *etree.Element
	n  names
}

// Runs returns runs of the paragraph including runs nested in hyperlinks.
func (p Paragraph) Runs() []Run {
	var out []Run
	for _, c := range p.el.ChildElements() {
		switch {
		case is(c, "r"):
			out = append(out, Run{el: c, n: p.n})
		case is(c, "hyperlink"):
			for _, r := range childrenOf(c, "r") {
				out = append(out, Run{el: r, n: p.n})
			}
		}
	}
	return out
}

// Text concatenates text of all paragraph runs.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// IsBlank reports if paragraph carries nothing visible: its text is
// whitespace only and it has at most one direct run, which is empty as well.
// Two or more direct runs make paragraph non blank even when all of them are
// empty, runs inside hyperlinks are not counted. Paragraphs holding section
// properties are never blank.
func (p Paragraph) IsBlank() bool {
	if p.HasSectionBreak() {
		return false
	}
	if len(strings.TrimSpace(p.Text())) != 0 {
		return false
	}
	runs := childrenOf(p.el, "r")
	switch len(runs) {
	case 0:
		return true
	case 1:
		return len(strings.TrimSpace(Run{el: runs[0], n: p.n}.Text())) == 0
	default:
		return false
	}
}

// HasObjects reports if paragraph holds drawings, pictures, embedded objects
// or equations, none of which have text.
func (p Paragraph) HasObjects() bool {
	return hasDescendant(p.el, "drawing", "pict", "object") || hasMath(p.el)
}

// Remove detaches paragraph from the document tree.
func (p Paragraph) Remove() {
	if parent := p.el.Parent(); parent != nil {
		parent.RemoveChild(p.el)
	}
}

// HasSectionBreak reports if paragraph carries section properties.
func (p Paragraph) HasSectionBreak() bool {
	return firstChild(firstChild(p.el, "pPr"), "sectPr") != nil
}

// Spacing returns raw values of explicit space before and after attributes.
func (p Paragraph) Spacing() (before, after string, ok bool) {
	sp := firstChild(firstChild(p.el, "pPr"), "spacing")
	if sp == nil {
		return "", "", false
	}
	before, _ = attrValue(sp, "before")
	after, _ = attrValue(sp, "after")
	return before, after, len(before) > 0 || len(after) > 0
}

// SetSpacing sets space before and after the paragraph. Automatic and
// line based spacing, which would otherwise take precedence, is dropped.
func (p Paragraph) SetSpacing(before, after Twips) {
	pPr, _ := p.n.ensureChild(p.el, "pPr", paragraphOrder)
	sp, _ := p.n.ensureChild(pPr, "spacing", paragraphPropsOrder)
	for _, name := range []string{"beforeAutospacing", "afterAutospacing", "beforeLines", "afterLines"} {
		removeAttr(sp, name)
	}
	p.n.setAttr(sp, "before", before.String())
	p.n.setAttr(sp, "after", after.String())
}

func (p Paragraph) HasPageBreakBefore() bool {
	return firstChild(firstChild(p.el, "pPr"), "pageBreakBefore") != nil
}

// RemovePageBreakBefore drops paragraph property forcing new page.
func (p Paragraph) RemovePageBreakBefore() bool {
	return removeChild(firstChild(p.el, "pPr"), "pageBreakBefore")
}

// Text returns run text, tabs and line breaks are rendered as whitespace.
func (r Run) Text() string {
	var sb strings.Builder
	for _, c := range r.el.ChildElements() {
		switch {
		case is(c, "t"):
			sb.WriteString(c.Text())
		case is(c, "tab"), is(c, "ptab"):
			sb.WriteByte('\t')
		case is(c, "cr"):
			sb.WriteByte('\n')
		case is(c, "br"):
			if t, _ := attrValue(c, "type"); t != "page" && t != "column" {
				sb.WriteByte('\n')
			}
		case is(c, "noBreakHyphen"):
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

func (r Run) pageBreaks() []*etree.Element {
	var out []*etree.Element
	for _, br := range childrenOf(r.el, "br") {
		if t, _ := attrValue(br, "type"); t == "page" {
			out = append(out, br)
		}
	}
	return out
}

// PageBreaks returns number of page break markers in the run.
func (r Run) PageBreaks() int {
	return len(r.pageBreaks())
}

// RemovePageBreaks drops page break markers from run, line and column breaks
// are kept.
func (r Run) RemovePageBreaks() int {
	brs := r.pageBreaks()
	for _, br := range brs {
		r.el.RemoveChild(br)
	}
	return len(brs)
}

// Rows returns table rows.
func (t Table) Rows() []Row {
	els := childrenOf(t.el, "tr")
	out := make([]Row, 0, len(els))
	for _, e := range els {
		out = append(out, Row{el: e, n: t.n})
	}
	return out
}

// ColumnCount returns number of grid columns.
func (t Table) ColumnCount() int {
	return len(childrenOf(firstChild(t.el, "tblGrid"), "gridCol"))
}

func (t Table) HasCellSpacing() bool {
	return firstChild(firstChild(t.el, "tblPr"), "tblCellSpacing") != nil
}

// RemoveCellSpacing drops table level cell spacing.
func (t Table) RemoveCellSpacing() bool {
	return removeChild(firstChild(t.el, "tblPr"), "tblCellSpacing")
}

// Height returns explicit row height value if any.
func (r Row) Height() (string, bool) {
	h := firstChild(firstChild(r.el, "trPr"), "trHeight")
	if h == nil {
		return "", false
	}
	v, _ := attrValue(h, "val")
	return v, true
}

// ClearHeight drops explicit row height so row is sized automatically.
func (r Row) ClearHeight() bool {
	return removeChild(firstChild(r.el, "trPr"), "trHeight")
}

func (r Row) CantSplit() bool {
	return firstChild(firstChild(r.el, "trPr"), "cantSplit") != nil
}

// RemoveCantSplit allows row to break across pages.
func (r Row) RemoveCantSplit() bool {
	return removeChild(firstChild(r.el, "trPr"), "cantSplit")
}

// Margins returns section page margins, ok is false when section has no
// margins element. Unparsable values are reported as zero.
func (s Section) Margins() (m Margins, ok bool) {
	pg := firstChild(s.el, "pgMar")
	if pg == nil {
		return m, false
	}
	get := func(name string) Twips {
		v, _ := attrValue(pg, name)
		t, _ := ParseTwips(v)
		return t
	}
	return Margins{Top: get("top"), Bottom: get("bottom"), Left: get("left"), Right: get("right")}, true
}

// SetMargins overwrites section page margins. Newly created margins element
// gets header, footer and gutter distances required by schema.
func (s Section) SetMargins(m Margins) {
	pg, created := s.n.ensureChild(s.el, "pgMar", sectionPropsOrder)
	if created {
		s.n.setAttr(pg, "header", Inches(0.5).String())
		s.n.setAttr(pg, "footer", Inches(0.5).String())
		s.n.setAttr(pg, "gutter", "0")
	}
	s.n.setAttr(pg, "top", m.Top.String())
	s.n.setAttr(pg, "right", m.Right.String())
	s.n.setAttr(pg, "bottom", m.Bottom.String())
	s.n.setAttr(pg, "left", m.Left.String())
}
