package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog is the process-wide store of message tables, keyed by locale and
// loaded lazily from the embedded files. Loads are idempotent, so a
// concurrent first access for the same locale resolves to last write wins.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	log      zerolog.Logger
}

// NewCatalog builds an empty catalog.
func NewCatalog(logger zerolog.Logger) *Catalog {
	return &Catalog{
		messages: map[string]map[string]string{},
		log:      logger,
	}
}

// ForLocale returns a translator bound to one locale. Unknown locales fall
// back to the default catalog rather than failing; the translator always
// returns some string.
func (c *Catalog) ForLocale(locale string) *LocaleTranslator {
	norm := Normalize(locale)
	if norm == "" {
		norm = DefaultLocale
	}
	if _, err := c.table(norm); err != nil {
		c.log.Warn().Str("locale", norm).Err(err).Msg("Locale catalog unavailable - falling back to default")
		norm = DefaultLocale
	}
	return &LocaleTranslator{catalog: c, locale: norm}
}

// table returns the message table for a locale, loading it on first use.
func (c *Catalog) table(locale string) (map[string]string, error) {
	c.mu.RLock()
	tbl, ok := c.messages[locale]
	c.mu.RUnlock()
	if ok {
		return tbl, nil
	}

	data, err := localeFS.ReadFile("locales/" + locale + ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file %s: %w", locale, err)
	}
	loaded := map[string]string{}
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse locale file %s: %w", locale, err)
	}

	c.mu.Lock()
	c.messages[locale] = loaded
	c.mu.Unlock()
	return loaded, nil
}

// LocaleTranslator renders messages for one locale. It satisfies the
// engine's Translator interface.
type LocaleTranslator struct {
	catalog *Catalog
	locale  string
}

// Locale reports the bound locale.
func (t *LocaleTranslator) Locale() string {
	return t.locale
}

// T renders a message with {param} interpolation. Missing keys fall back
// to the default locale, then to the raw key with a warning; T never
// fails.
func (t *LocaleTranslator) T(key string, params map[string]any) string {
	msg, ok := t.lookup(t.locale, key)
	if !ok && t.locale != DefaultLocale {
		msg, ok = t.lookup(DefaultLocale, key)
	}
	if !ok {
		t.catalog.log.Warn().Str("locale", t.locale).Str("key", key).Msg("Missing translation")
		return key
	}
	return interpolate(msg, params)
}

func (t *LocaleTranslator) lookup(locale, key string) (string, bool) {
	tbl, err := t.catalog.table(locale)
	if err != nil {
		return "", false
	}
	msg, ok := tbl[key]
	return msg, ok
}

func interpolate(msg string, params map[string]any) string {
	for name, value := range params {
		msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprint(value))
	}
	return msg
}
