// Package confidence maps advisory trust labels to display badges.
package confidence

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/domain"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/i18n"
)

// Style tokens understood by front-ends
const (
	StyleLow    = "badge-low"
	StyleMedium = "badge-medium"
	StyleHigh   = "badge-high"
)

// Badge is the presentation of one confidence label
type Badge struct {
	Style string `json:"style"`
	Label string `json:"label"`
}

type badgeSpec struct {
	style    string
	labelKey string
	fg, bg   lipgloss.Color
}

var badges = map[domain.Confidence]badgeSpec{
	domain.ConfidenceHigh:   {StyleHigh, i18n.KeyConfidenceHigh, "#15803d", "#dcfce7"},
	domain.ConfidenceMedium: {StyleMedium, i18n.KeyConfidenceMedium, "#b45309", "#fef3c7"},
	domain.ConfidenceLow:    {StyleLow, i18n.KeyConfidenceLow, "#be123c", "#ffe4e6"},
}

// Classify returns the badge for c with its label taken from catalog.
// An absent or unknown confidence has no badge.
func Classify(c domain.Confidence, catalog *i18n.Catalog) (Badge, bool) {
	spec, ok := badges[c]
	if !ok {
		return Badge{}, false
	}
	return Badge{Style: spec.style, Label: catalog.T(spec.labelKey)}, true
}

// Render draws the badge for a terminal
func (b Badge) Render() string {
	for _, spec := range badges {
		if spec.style == b.Style {
			return lipgloss.NewStyle().
				Foreground(spec.fg).
				Background(spec.bg).
				Bold(true).
				Padding(0, 1).
				Render(b.Label)
		}
	}
	return b.Label
}
