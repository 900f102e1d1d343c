package score

import (
	"fmt"
	"strings"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

const maxHighlights = 3

// Highlights returns up to three notable features of a listing.
func Highlights(l *domain.Listing) []string {
	var out []string
	add := func(ok bool, s string) {
		if ok && len(out) < maxHighlights {
			out = append(out, s)
		}
	}

	add(l.HasDedicatedGPU && l.GPUScore >= 70, "strong gaming GPU")
	add(l.RAMGB >= 16, fmt.Sprintf("%dGB RAM", l.RAMGB))
	add(l.ScreenSize <= compactScreen, fmt.Sprintf("portable %.1f\" screen", l.ScreenSize))
	add(l.BrandScore >= 0.85, "reliable brand")
	add(l.SSDGB >= 1000, "1TB+ storage")
	add(l.IsApple, "macOS ecosystem")

	return out
}

// Explain describes in one line why a listing suits the preferences.
func Explain(l *domain.Listing, p *domain.Preferences) string {
	var parts []string

	if ideal := p.IdealPrice(); ideal > 0 {
		ratio := l.Price / ideal
		switch {
		case ratio < 0.9:
			parts = append(parts, fmt.Sprintf("economical, %.0f%% below your ideal price", (1-ratio)*100))
		case ratio > 1.1:
			parts = append(parts, "above your ideal price but strong value for the hardware")
		default:
			parts = append(parts, "fits your budget")
		}
	}

	switch p.Purpose {
	case domain.PurposeGaming:
		if l.HasDedicatedGPU {
			parts = append(parts, fmt.Sprintf("dedicated %s for gaming", strings.ToUpper(l.GPU)))
		}
	case domain.PurposePortability:
		if l.IsUltrabook || l.ScreenSize <= compactScreen {
			parts = append(parts, "light and compact")
		}
	case domain.PurposeProductivity:
		if l.IsWorkstation {
			parts = append(parts, "workstation-class CPU and memory")
		}
	case domain.PurposeDesign:
		if l.IsApple || l.GPUScore >= 60 {
			parts = append(parts, "capable graphics for creative work")
		}
	}

	return strings.Join(parts, "; ")
}
