// Package theme provides color themes for the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/javiermolinar/weekboard/internal/period"
)

// PeriodColors holds the colors of one period row.
type PeriodColors struct {
	Fg     lipgloss.Color // Period label and task accents
	Bg     lipgloss.Color // Task line background
	BgAlt  lipgloss.Color // Alternate shade for adjacent tasks
	DoneBg lipgloss.Color // Completed tasks
	Text   lipgloss.Color // Text drawn on Bg
}

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Success     lipgloss.Color
	Warning     lipgloss.Color
	Error       lipgloss.Color

	Periods [period.Count]PeriodColors

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color

	Modal ModalColors
}

// ModalColors holds popover colors derived from a Theme.
type ModalColors struct {
	Bg          lipgloss.Color
	Border      lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Highlight   lipgloss.AdaptiveColor
	Panel       lipgloss.AdaptiveColor
	ReverseText lipgloss.AdaptiveColor
	Backdrop    lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	isLight := isLightTheme(t.Bg)

	modalPalette := t.Modal()
	modalBgHex := coalesce(modalPalette.BaseBg, t.BgHighlight, t.Bg)
	modalTextHex := coalesce(modalPalette.TextPrimary, t.Fg)
	modalMutedHex := coalesce(modalPalette.TextMuted, t.FgMuted)
	modalHighlightHex := coalesce(modalPalette.Highlight, t.BgSelection, t.Accent)
	modalBorderHex := coalesce(modalPalette.ModalBorder, t.Accent)
	modalPanelHex := coalesce(t.BgSelection, t.BgHighlight, t.Bg)
	modalBackdropHex := coalesce(t.BgSelection, t.BgHighlight, t.Bg)

	p := &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Success:     lipgloss.Color(t.Success),
		Warning:     lipgloss.Color(t.Warning),
		Error:       lipgloss.Color(t.Error),

		TextOnAccent:  lipgloss.Color(readableOn(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(readableOn(t.Warning, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:          lipgloss.Color(modalBgHex),
			Border:      adaptiveColor(modalBorderHex),
			Text:        adaptiveColor(modalTextHex),
			Muted:       adaptiveColor(modalMutedHex),
			Highlight:   adaptiveColor(modalHighlightHex),
			Panel:       adaptiveColor(modalPanelHex),
			ReverseText: reverseTextColor(modalBgHex, modalTextHex),
			Backdrop:    lipgloss.Color(modalBackdropHex),
		},
	}

	for _, per := range period.All() {
		p.Periods[per] = periodColors(t.PeriodColor(per), t.Bg, t.Fg, isLight)
	}

	return p
}

// periodColors derives the row shades of one period from its accent. Dark
// themes dim the accent; light themes wash it into the background.
func periodColors(accent, bg, fg string, isLight bool) PeriodColors {
	base := dim(accent, 0.50, 40.0/255)
	done := dim(accent, 0.30, 30.0/255)
	alt := mix(base, "#ffffff", 0.30)
	if isLight {
		base = mix(accent, bg, 0.75)
		done = mix(accent, bg, 0.88)
		alt = mix(base, "#000000", 0.10)
	}
	return PeriodColors{
		Fg:     lipgloss.Color(accent),
		Bg:     lipgloss.Color(base),
		BgAlt:  lipgloss.Color(alt),
		DoneBg: lipgloss.Color(done),
		Text:   lipgloss.Color(readableOn(base, fg, bg)),
	}
}

func isLightTheme(bg string) bool {
	return luminance(bg) > 0.55
}

func parseColor(hex string) (colorful.Color, bool) {
	c, err := colorful.Hex(hex)
	return c, err == nil
}

// dim scales every channel by factor, never going below floor.
func dim(hex string, factor, floor float64) string {
	c, ok := parseColor(hex)
	if !ok {
		return hex
	}
	scale := func(v float64) float64 { return max(v*factor, floor) }
	return colorful.Color{R: scale(c.R), G: scale(c.G), B: scale(c.B)}.Hex()
}

// mix blends a toward b. ratio 0 is a, 1 is b.
func mix(a, b string, ratio float64) string {
	ca, okA := parseColor(a)
	cb, okB := parseColor(b)
	if !okA || !okB {
		return a
	}
	return ca.BlendRgb(cb, min(max(ratio, 0), 1)).Hex()
}

// luminance is the WCAG relative luminance of a hex color.
func luminance(hex string) float64 {
	c, ok := parseColor(hex)
	if !ok {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func contrast(a, b string) float64 {
	hi, lo := luminance(a), luminance(b)
	if hi < lo {
		hi, lo = lo, hi
	}
	return (hi + 0.05) / (lo + 0.05)
}

// readableOn returns whichever of x and y stands out more against bg.
func readableOn(bg, x, y string) string {
	if contrast(bg, x) >= contrast(bg, y) {
		return x
	}
	return y
}

func adaptiveColor(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: hex, Light: hex}
}

func reverseTextColor(darkBg, lightText string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: darkBg, Light: lightText}
}
