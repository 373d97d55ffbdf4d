package normalize

import (
	"go.uber.org/zap"

	"docxfix/docx"
)

func removable(p docx.Paragraph, keepObjects bool) bool {
	return p.IsBlank() && !(keepObjects && p.HasObjects())
}

// TrimLeading removes blank paragraphs from the start of the document body
// until first non blank one. With keepObjects set paragraphs holding drawings
// or equations stop trimming. Returns number of removed paragraphs.
func TrimLeading(doc *docx.Document, keepObjects bool, log *zap.Logger) int {
	removed := 0
	for {
		paras := doc.Paragraphs()
		if len(paras) == 0 || !removable(paras[0], keepObjects) {
			break
		}
		paras[0].Remove()
		removed++
	}
	log.Info("Removed leading paragraphs", zap.Int("count", removed))
	return removed
}

// TrimTrailing is TrimLeading working from the end of the document body.
func TrimTrailing(doc *docx.Document, keepObjects bool, log *zap.Logger) int {
	removed := 0
	for {
		paras := doc.Paragraphs()
		if len(paras) == 0 || !removable(paras[len(paras)-1], keepObjects) {
			break
		}
		paras[len(paras)-1].Remove()
		removed++
	}
	log.Info("Removed trailing paragraphs", zap.Int("count", removed))
	return removed
}

// ResetSpacing sets space before and after on every paragraph. Returns number
// of paragraphs which had explicit spacing before the change.
func ResetSpacing(doc *docx.Document, before, after docx.Twips, log *zap.Logger) int {
	found := 0
	for _, p := range doc.Paragraphs() {
		if b, a, ok := p.Spacing(); ok {
			log.Debug("Found spacing", zap.String("before", b), zap.String("after", a))
			found++
		}
		p.SetSpacing(before, after)
	}
	log.Info("Fixed spacing", zap.Int("paragraphs", found))
	return found
}

// TableCounts holds results of NormalizeTables.
type TableCounts struct {
	HeightsCleared     int
	CantSplitRemoved   int
	CellSpacingRemoved int
}

// NormalizeTables lets rows size automatically and break across pages and
// drops table cell spacing. Rows and columns are left alone.
func NormalizeTables(doc *docx.Document, log *zap.Logger) TableCounts {
	var tc TableCounts
	for i, t := range doc.Tables() {
		rows := t.Rows()
		log.Info("Table", zap.Int("index", i), zap.Int("rows", len(rows)), zap.Int("columns", t.ColumnCount()))
		for _, r := range rows {
			if r.ClearHeight() {
				tc.HeightsCleared++
			}
			if r.RemoveCantSplit() {
				log.Debug("Removed cantSplit from row", zap.Int("table", i))
				tc.CantSplitRemoved++
			}
		}
		if t.RemoveCellSpacing() {
			log.Debug("Removed table cell spacing", zap.Int("table", i))
			tc.CellSpacingRemoved++
		}
	}
	return tc
}

// RemovePageBreaks drops page break markers from all runs and page break
// before property from all paragraphs. Returns both counts.
func RemovePageBreaks(doc *docx.Document, log *zap.Logger) (breaks, before int) {
	for _, p := range doc.Paragraphs() {
		for _, r := range p.Runs() {
			breaks += r.RemovePageBreaks()
		}
		if p.RemovePageBreakBefore() {
			before++
		}
	}
	log.Info("Removed page breaks", zap.Int("count", breaks+before), zap.Int("markers", breaks), zap.Int("properties", before))
	return breaks, before
}

// NormalizeMargins overwrites page margins of every section.
func NormalizeMargins(doc *docx.Document, m docx.Margins, log *zap.Logger) int {
	sections := doc.Sections()
	for _, s := range sections {
		s.SetMargins(m)
	}
	log.Info("Set standard margins", zap.Int("sections", len(sections)),
		zap.Float64("top", m.Top.Inches()), zap.Float64("bottom", m.Bottom.Inches()),
		zap.Float64("left", m.Left.Inches()), zap.Float64("right", m.Right.Inches()))
	return len(sections)
}
