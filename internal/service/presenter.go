package service

import (
	"github.com/sapatmohit/smart-farming-ai-agent/internal/confidence"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/domain"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/i18n"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/markup"
)

// Turn is a message prepared for display
type Turn struct {
	Role    domain.Role       `json:"role"`
	Content string            `json:"content"`
	Blocks  []markup.Block    `json:"blocks"`
	Sources []string          `json:"sources,omitempty"`
	Badge   *confidence.Badge `json:"badge,omitempty"`
}

// Present formats msg and labels its confidence using catalog. User turns
// are shown as a single literal paragraph.
func Present(msg domain.Message, catalog *i18n.Catalog) Turn {
	turn := Turn{
		Role:    msg.Role(),
		Content: msg.Content(),
	}
	if msg.Role() == domain.RoleUser {
		turn.Blocks = []markup.Block{{Kind: markup.Paragraph, Text: msg.Content()}}
		return turn
	}

	turn.Blocks = markup.Format(msg.Content())
	turn.Sources = msg.Sources()
	if badge, ok := confidence.Classify(msg.Confidence(), catalog); ok {
		turn.Badge = &badge
	}
	return turn
}

// PresentAll presents every message in order
func PresentAll(msgs []domain.Message, catalog *i18n.Catalog) []Turn {
	out := make([]Turn, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, Present(m, catalog))
	}
	return out
}
