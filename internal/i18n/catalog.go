package i18n

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// Well-known message keys
const (
	KeyWelcomeTitle   = "chat.welcomeTitle"
	KeyWelcomeMessage = "chat.welcomeMessage"
	KeyPlaceholder    = "chat.placeholder"
	KeySend           = "chat.send"
	KeyError          = "chat.error"
	KeySources        = "chat.sources"
	KeyThinking       = "chat.thinking"
	KeyYou            = "chat.you"
	KeyAssistant      = "chat.assistant"
	KeyDisclaimer     = "chat.disclaimer"

	KeyConfidenceLow    = "common.low"
	KeyConfidenceMedium = "common.medium"
	KeyConfidenceHigh   = "common.high"
)

// StaticKeys are the strings a front-end re-renders on a locale switch
var StaticKeys = []string{
	KeyPlaceholder,
	KeySend,
	KeySources,
	KeyThinking,
	KeyYou,
	KeyAssistant,
	KeyDisclaimer,
	"sidebar.chat",
	"sidebar.market",
	"sidebar.calendar",
	"sidebar.schemes",
	"sidebar.language",
}

// SuggestionKeys are the suggestion card groups, in display order
var SuggestionKeys = []string{
	"suggestions.market",
	"suggestions.advisory",
	"suggestions.schemes",
	"suggestions.weather",
}

// Catalog is the resolved string table for one locale
type Catalog struct {
	locale    string
	name      string
	localizer *i18n.Localizer
}

// Locale returns the catalog's locale code
func (c *Catalog) Locale() string { return c.locale }

// Name returns the display name of the locale
func (c *Catalog) Name() string { return c.name }

// T looks up key in this locale, then in the default locale. A key missing
// from both is returned as-is.
func (c *Catalog) T(key string) string {
	if c == nil || c.localizer == nil {
		return key
	}
	s, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil || s == "" {
		return key
	}
	return s
}

// Strings looks up several keys at once
func (c *Catalog) Strings(keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = c.T(k)
	}
	return out
}
