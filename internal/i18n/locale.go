package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// SupportedLocales lists the shipped message catalogs.
var SupportedLocales = []string{"en", "vi"}

// DefaultLocale is the final fallback of the resolution chain.
const DefaultLocale = "en"

// Normalize reduces a raw locale string ("en-US", "vi-VN") to a supported
// base locale, or "" when unsupported.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	got := strings.ToLower(base.String())
	for _, l := range SupportedLocales {
		if got == l {
			return l
		}
	}
	return ""
}

// LocaleContext carries the candidate locale sources for one request.
type LocaleContext struct {
	UserLocale         string
	HotelDefaultLocale string
	OrgDefaultLocale   string
	AcceptLanguage     string
}

// ResolveLocale walks the fallback chain: user override, hotel default,
// org default, Accept-Language, then the system default. Always returns a
// supported locale.
func ResolveLocale(ctx LocaleContext) string {
	for _, candidate := range []string{ctx.UserLocale, ctx.HotelDefaultLocale, ctx.OrgDefaultLocale} {
		if norm := Normalize(candidate); norm != "" {
			return norm
		}
	}

	if ctx.AcceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(ctx.AcceptLanguage); err == nil {
			for _, tag := range tags {
				if norm := Normalize(tag.String()); norm != "" {
					return norm
				}
			}
		}
	}

	return DefaultLocale
}
