// Package i18n resolves locale codes into translation catalogs.
//
// Every component that needs localized text goes through a single Resolver:
// it owns the default-locale fallback chain so call sites never implement
// their own.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLocale is used whenever a code cannot be matched
const DefaultLocale = "en"

// LocaleInfo describes a supported locale
type LocaleInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var supportedLocales = []LocaleInfo{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "हिंदी (Hindi)"},
	{Code: "mr", Name: "मराठी (Marathi)"},
}

// Resolver maps locale codes to catalogs. It is immutable after construction
// and safe for concurrent use.
type Resolver struct {
	defaultCode string
	locales     []LocaleInfo
	matcher     language.Matcher
	catalogs    map[string]*Catalog
}

// NewResolver loads the embedded catalogs. defaultCode must be one of the
// supported locales; an empty string selects DefaultLocale.
func NewResolver(defaultCode string) (*Resolver, error) {
	if defaultCode == "" {
		defaultCode = DefaultLocale
	}

	bundle := i18n.NewBundle(language.MustParse(defaultCode))
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	r := &Resolver{
		defaultCode: defaultCode,
		catalogs:    make(map[string]*Catalog, len(supportedLocales)),
	}

	// The default locale goes first so the matcher falls back to it.
	tags := []language.Tag{language.MustParse(defaultCode)}
	r.locales = append(r.locales, LocaleInfo{})
	found := false
	for _, info := range supportedLocales {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+info.Code+".json"); err != nil {
			return nil, fmt.Errorf("failed to load %s catalog: %w", info.Code, err)
		}
		if info.Code == defaultCode {
			r.locales[0] = info
			found = true
			continue
		}
		tags = append(tags, language.MustParse(info.Code))
		r.locales = append(r.locales, info)
	}
	if !found {
		return nil, fmt.Errorf("unsupported default locale %q", defaultCode)
	}
	r.matcher = language.NewMatcher(tags)

	for _, info := range r.locales {
		r.catalogs[info.Code] = &Catalog{
			locale:    info.Code,
			name:      info.Name,
			localizer: i18n.NewLocalizer(bundle, info.Code),
		}
	}

	return r, nil
}

// Default returns the default locale code
func (r *Resolver) Default() string {
	return r.defaultCode
}

// Supported returns the supported locales, default first
func (r *Resolver) Supported() []LocaleInfo {
	out := make([]LocaleInfo, len(r.locales))
	copy(out, r.locales)
	return out
}

// IsSupported reports whether code names a supported locale exactly
func (r *Resolver) IsSupported(code string) bool {
	_, ok := r.catalogs[code]
	return ok
}

// Normalize maps an arbitrary locale code (e.g. "hi-IN", "MR") onto a
// supported code, falling back to the default.
func (r *Resolver) Normalize(code string) string {
	code = strings.TrimSpace(code)
	if _, ok := r.catalogs[code]; ok {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return r.defaultCode
	}
	_, idx, conf := r.matcher.Match(tag)
	if conf == language.No {
		return r.defaultCode
	}
	return r.locales[idx].Code
}

// Resolve returns the catalog for code. Unknown codes yield the default
// catalog; the same *Catalog is returned for every code that maps to a locale.
func (r *Resolver) Resolve(code string) *Catalog {
	return r.catalogs[r.Normalize(code)]
}
