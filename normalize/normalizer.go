// Package normalize removes layout artifacts from word processing documents:
// stray blank paragraphs at both ends, forced page breaks, paragraph spacing,
// table row and spacing metadata and irregular page margins. Every stage only
// removes or resets formatting, text is never touched, and running it again
// on its own result changes nothing.
package normalize

import (
	"context"
	"time"

	"go.uber.org/zap"

	"docxfix/docx"
)

// Report has counts of changes made by Normalizer.
type Report struct {
	Before docx.Stats
	After  docx.Stats

	LeadingRemoved  int
	TrailingRemoved int
	// paragraphs which had explicit spacing, all paragraphs are reset
	SpacingFound int
	SpacingReset int

	RowHeightsCleared  int
	CantSplitRemoved   int
	CellSpacingRemoved int

	PageBreaksRemoved      int
	PageBreakBeforeRemoved int

	SectionsFixed int
}

// BreaksRemoved is total number of removed page breaks of both kinds.
func (r *Report) BreaksRemoved() int {
	return r.PageBreaksRemoved + r.PageBreakBeforeRemoved
}

// Fields presents report for structured logging.
func (r *Report) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("leading", r.LeadingRemoved),
		zap.Int("trailing", r.TrailingRemoved),
		zap.Int("spacing", r.SpacingFound),
		zap.Int("spacing_reset", r.SpacingReset),
		zap.Int("row_heights", r.RowHeightsCleared),
		zap.Int("cant_split", r.CantSplitRemoved),
		zap.Int("cell_spacing", r.CellSpacingRemoved),
		zap.Int("page_breaks", r.BreaksRemoved()),
		zap.Int("sections", r.SectionsFixed),
	}
}

// Normalizer applies enabled stages in fixed order.
type Normalizer struct {
	settings Settings
	log      *zap.Logger
}

func New(settings Settings, log *zap.Logger) *Normalizer {
	return &Normalizer{settings: settings, log: log.Named("normalize")}
}

type stage struct {
	name    string
	enabled bool
	run     func(*docx.Document, *Report)
}

func (n *Normalizer) stages() []stage {
	s := n.settings
	return []stage{
		{"trim leading", s.TrimLeading, func(d *docx.Document, r *Report) {
			r.LeadingRemoved = TrimLeading(d, s.KeepObjects, n.log)
		}},
		{"trim trailing", s.TrimTrailing, func(d *docx.Document, r *Report) {
			r.TrailingRemoved = TrimTrailing(d, s.KeepObjects, n.log)
		}},
		{"reset spacing", s.ResetSpacing, func(d *docx.Document, r *Report) {
			r.SpacingFound = ResetSpacing(d, s.SpaceBefore, s.SpaceAfter, n.log)
			r.SpacingReset = len(d.Paragraphs())
		}},
		{"tables", s.Tables, func(d *docx.Document, r *Report) {
			tc := NormalizeTables(d, n.log)
			r.RowHeightsCleared, r.CantSplitRemoved, r.CellSpacingRemoved = tc.HeightsCleared, tc.CantSplitRemoved, tc.CellSpacingRemoved
		}},
		{"page breaks", s.PageBreaks, func(d *docx.Document, r *Report) {
			r.PageBreaksRemoved, r.PageBreakBeforeRemoved = RemovePageBreaks(d, n.log)
		}},
		{"margins", s.Margins, func(d *docx.Document, r *Report) {
			r.SectionsFixed = NormalizeMargins(d, s.PageMargins, n.log)
		}},
	}
}

// Apply runs all enabled stages over the document. Context is checked before
// every stage, on cancellation document may be partially normalized.
func (n *Normalizer) Apply(ctx context.Context, doc *docx.Document) (*Report, error) {
	rpt := &Report{Before: doc.Stats()}

	defer func(start time.Time) {
		n.log.Debug("Normalization done", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	for _, st := range n.stages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !st.enabled {
			n.log.Info("Stage disabled, skipping", zap.String("stage", st.name))
			continue
		}
		n.log.Debug("Stage starting", zap.String("stage", st.name))
		st.run(doc, rpt)
	}

	rpt.After = doc.Stats()
	return rpt, nil
}
