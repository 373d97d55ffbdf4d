package docx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Twips is the WordprocessingML measurement unit, twentieth of a point.
type Twips int64

const (
	TwipsPerPoint = 20
	TwipsPerInch  = 1440
)

// Points converts typographic points to twips.
func Points(pt float64) Twips {
	return Twips(math.Round(pt * TwipsPerPoint))
}

// Inches converts inches to twips.
func Inches(in float64) Twips {
	return Twips(math.Round(in * TwipsPerInch))
}

func (t Twips) Points() float64 {
	return float64(t) / TwipsPerPoint
}

func (t Twips) Inches() float64 {
	return float64(t) / TwipsPerInch
}

// String returns attribute value representation.
func (t Twips) String() string {
	return strconv.FormatInt(int64(t), 10)
}

// ParseTwips parses measurement attribute value. Plain numbers are twips,
// strict OOXML universal measures ("0.5in", "12pt", "2.54cm", "25.4mm",
// "3pc", "1pi") are converted.
func ParseTwips(s string) (Twips, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Twips(v), nil
	}
	if len(s) < 3 {
		return 0, fmt.Errorf("invalid measurement %q", s)
	}
	num, unit := s[:len(s)-2], s[len(s)-2:]
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid measurement %q: %w", s, err)
	}
	switch unit {
	case "in":
		return Inches(v), nil
	case "pt":
		return Points(v), nil
	case "cm":
		return Inches(v / 2.54), nil
	case "mm":
		return Inches(v / 25.4), nil
	case "pc", "pi":
		return Points(v * 12), nil
	default:
		return 0, fmt.Errorf("unknown measurement unit in %q", s)
	}
}

// Margins describes section page margins.
type Margins struct {
	Top    Twips
	Bottom Twips
	Left   Twips
	Right  Twips
}
