package normalize

import (
	"docxfix/config"
	"docxfix/docx"
)

// Named defaults for values stages are setting.
const (
	DefaultSpaceBefore  = 0.0  // points
	DefaultSpaceAfter   = 0.0  // points
	DefaultMarginTop    = 0.5  // inches
	DefaultMarginBottom = 0.5  // inches
	DefaultMarginLeft   = 0.75 // inches
	DefaultMarginRight  = 0.75 // inches
)

// Settings selects stages to run and values they set.
type Settings struct {
	TrimLeading  bool
	TrimTrailing bool
	ResetSpacing bool
	Tables       bool
	PageBreaks   bool
	Margins      bool

	// KeepObjects protects blank paragraphs holding drawings or equations
	// from trimming.
	KeepObjects bool

	SpaceBefore docx.Twips
	SpaceAfter  docx.Twips
	PageMargins docx.Margins
}

// DefaultSettings enables all stages with default values.
func DefaultSettings() Settings {
	return Settings{
		TrimLeading:  true,
		TrimTrailing: true,
		ResetSpacing: true,
		Tables:       true,
		PageBreaks:   true,
		Margins:      true,
		KeepObjects:  true,
		SpaceBefore:  docx.Points(DefaultSpaceBefore),
		SpaceAfter:   docx.Points(DefaultSpaceAfter),
		PageMargins: docx.Margins{
			Top:    docx.Inches(DefaultMarginTop),
			Bottom: docx.Inches(DefaultMarginBottom),
			Left:   docx.Inches(DefaultMarginLeft),
			Right:  docx.Inches(DefaultMarginRight),
		},
	}
}

// FromConfig converts configuration units (points and inches) to settings.
func FromConfig(cfg *config.NormalizeConfig) Settings {
	return Settings{
		TrimLeading:  cfg.TrimLeading,
		TrimTrailing: cfg.TrimTrailing,
		ResetSpacing: cfg.ResetSpacing,
		Tables:       cfg.Tables,
		PageBreaks:   cfg.PageBreaks,
		Margins:      cfg.Margins,
		KeepObjects:  cfg.KeepObjects,
		SpaceBefore:  docx.Points(cfg.Spacing.Before),
		SpaceAfter:   docx.Points(cfg.Spacing.After),
		PageMargins: docx.Margins{
			Top:    docx.Inches(cfg.PageMargins.Top),
			Bottom: docx.Inches(cfg.PageMargins.Bottom),
			Left:   docx.Inches(cfg.PageMargins.Left),
			Right:  docx.Inches(cfg.PageMargins.Right),
		},
	}
}
