package docx

import (
	"slices"

	"github.com/beevik/etree"
)

// WordprocessingML main namespace, transitional and strict flavors.
const (
	NamespaceMain       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceMainStrict = "http://purl.oclc.org/ooxml/wordprocessingml/main"

	namespaceMath       = "http://schemas.openxmlformats.org/officeDocument/2006/math"
	namespaceMathStrict = "http://purl.oclc.org/ooxml/officeDocument/math"
)

// Child sequences from the WordprocessingML schema, used to place newly
// created property elements where consumers expect them.
var (
	paragraphOrder = []string{"pPr"}

	paragraphPropsOrder = []string{
		"pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr",
		"widowControl", "numPr", "suppressLineNumbers", "pBdr", "shd", "tabs",
		"suppressAutoHyphens", "kinsoku", "wordWrap", "overflowPunct",
		"topLinePunct", "autoSpaceDE", "autoSpaceDN", "bidi", "adjustRightInd",
		"snapToGrid", "spacing", "ind", "contextualSpacing", "mirrorIndents",
		"suppressOverlap", "jc", "textDirection", "textAlignment",
		"textboxTightWrap", "outlineLvl", "divId", "cnfStyle", "rPr", "sectPr",
		"pPrChange",
	}

	sectionPropsOrder = []string{
		"headerReference", "footerReference", "footnotePr", "endnotePr", "type",
		"pgSz", "pgMar", "paperSrc", "pgBorders", "lnNumType", "pgNumType",
		"cols", "formProt", "vAlign", "noEndnote", "titlePg", "textDirection",
		"bidi", "rtlGutter", "docGrid", "printerSettings", "sectPrChange",
	}
)

func isMainNamespace(uri string) bool {
	return uri == NamespaceMain || uri == NamespaceMainStrict
}

// is reports if element is the WordprocessingML element with given local name.
func is(e *etree.Element, local string) bool {
	return e != nil && e.Tag == local && isMainNamespace(e.NamespaceURI())
}

func firstChild(e *etree.Element, local string) *etree.Element {
	if e == nil {
		return nil
	}
	for _, c := range e.ChildElements() {
		if is(c, local) {
			return c
		}
	}
	return nil
}

func childrenOf(e *etree.Element, local string) []*etree.Element {
	if e == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if is(c, local) {
			out = append(out, c)
		}
	}
	return out
}

// attr finds namespaced attribute by local name.
func attr(e *etree.Element, local string) *etree.Attr {
	if e == nil {
		return nil
	}
	for i := range e.Attr {
		if e.Attr[i].Key == local && isMainNamespace(e.Attr[i].NamespaceURI()) {
			return &e.Attr[i]
		}
	}
	return nil
}

func attrValue(e *etree.Element, local string) (string, bool) {
	if a := attr(e, local); a != nil {
		return a.Value, true
	}
	return "", false
}

func removeAttr(e *etree.Element, local string) bool {
	if a := attr(e, local); a != nil {
		e.RemoveAttr(a.FullKey())
		return true
	}
	return false
}

// removeChild detaches first child with local name, reporting if there was one.
func removeChild(e *etree.Element, local string) bool {
	if c := firstChild(e, local); c != nil {
		e.RemoveChild(c)
		return true
	}
	return false
}

// hasDescendant reports if any element below e matches one of local names.
func hasDescendant(e *etree.Element, locals ...string) bool {
	for _, c := range e.ChildElements() {
		if slices.Contains(locals, c.Tag) && isMainNamespace(c.NamespaceURI()) {
			return true
		}
		if hasDescendant(c, locals...) {
			return true
		}
	}
	return false
}

// hasMath reports if there are any Office Math zones below e.
func hasMath(e *etree.Element) bool {
	for _, c := range e.ChildElements() {
		if c.Tag == "oMath" || c.Tag == "oMathPara" {
			if uri := c.NamespaceURI(); uri == namespaceMath || uri == namespaceMathStrict {
				return true
			}
		}
		if hasMath(c) {
			return true
		}
	}
	return false
}

// names qualifies WordprocessingML names with the prefix bound in the part.
type names struct {
	prefix string
}

func (n names) q(local string) string {
	return n.prefix + ":" + local
}

// setAttr sets namespaced attribute, replacing any existing one regardless
// of the prefix it was written with.
func (n names) setAttr(e *etree.Element, local, value string) {
	if a := attr(e, local); a != nil {
		a.Value = value
		return
	}
	e.CreateAttr(n.q(local), value)
}

// ensureChild returns existing child with local name or creates one placed
// according to schema order.
func (n names) ensureChild(parent *etree.Element, local string, order []string) (*etree.Element, bool) {
	if c := firstChild(parent, local); c != nil {
		return c, false
	}

	rank := func(name string) int {
		if i := slices.Index(order, name); i >= 0 {
			return i
		}
		return len(order)
	}

	child := etree.NewElement(n.q(local))
	want := rank(local)
	for _, c := range parent.ChildElements() {
		if rank(c.Tag) > want {
			parent.InsertChildAt(c.Index(), child)
			return child, true
		}
	}
	parent.AddChild(child)
	return child, true
}
