package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/i18n"
)

// LocaleStorage is the persistent key-value backing for a locale preference
type LocaleStorage interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, code string) error
}

// LocalePreference reads and writes a locale preference on a best-effort
// basis. Storage errors are logged and never returned.
type LocalePreference struct {
	storage  LocaleStorage
	resolver *i18n.Resolver
	logger   *zap.Logger
}

// NewLocalePreference wraps storage; a nil storage behaves as unavailable
func NewLocalePreference(storage LocaleStorage, resolver *i18n.Resolver, logger *zap.Logger) *LocalePreference {
	return &LocalePreference{storage: storage, resolver: resolver, logger: logger}
}

// GetStoredLocale returns the stored locale, or the default when storage is
// unavailable, empty or holds an unsupported code.
func (p *LocalePreference) GetStoredLocale(ctx context.Context) string {
	if p.storage == nil {
		return p.resolver.Default()
	}
	code, err := p.storage.Get(ctx)
	if err != nil {
		p.logger.Warn("Failed to read stored locale", zap.Error(err))
		return p.resolver.Default()
	}
	if !p.resolver.IsSupported(code) {
		return p.resolver.Default()
	}
	return code
}

// SetStoredLocale persists code
func (p *LocalePreference) SetStoredLocale(ctx context.Context, code string) {
	if p.storage == nil {
		return
	}
	if err := p.storage.Set(ctx, code); err != nil {
		p.logger.Warn("Failed to persist locale", zap.String("locale", code), zap.Error(err))
	}
}
