package chat

import (
	"html"
	"strings"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/domain"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/i18n"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/markup"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/service"
)

// RenderTranscript renders turns as HTML. Every piece of message text goes
// through markup.RenderHTML or html.EscapeString.
func RenderTranscript(turns []service.Turn, catalog *i18n.Catalog) string {
	var b strings.Builder
	b.WriteString(`<div class="transcript">`)
	for _, t := range turns {
		author := catalog.T(i18n.KeyAssistant)
		if t.Role == domain.RoleUser {
			author = catalog.T(i18n.KeyYou)
		}

		b.WriteString(`<div class="turn turn-` + string(t.Role) + `">`)
		b.WriteString(`<span class="author">` + html.EscapeString(author) + `</span>`)
		b.WriteString(`<div class="body">` + markup.RenderHTML(t.Blocks) + `</div>`)

		if t.Badge != nil {
			b.WriteString(`<span class="badge ` + html.EscapeString(t.Badge.Style) + `">`)
			b.WriteString(html.EscapeString(t.Badge.Label))
			b.WriteString(`</span>`)
		}
		if len(t.Sources) > 0 {
			b.WriteString(`<p class="sources">`)
			b.WriteString(html.EscapeString(catalog.T(i18n.KeySources) + ": " + strings.Join(t.Sources, ", ")))
			b.WriteString(`</p>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
