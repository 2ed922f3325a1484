package i18n

import (
	"embed"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"carreramedico/internal/ports/output"
	"carreramedico/pkg/logger"
)

//go:embed active.*.toml
var localeFS embed.FS

// Ensure Translator implements the output.Translator port.
var _ output.Translator = (*Translator)(nil)

var supported = []language.Tag{language.Spanish, language.English}

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	matcher         language.Matcher
	defaultLanguage language.Tag
	lggr            logger.Logger
}

// NewTranslator builds a Translator backed by the embedded active.*.toml
// bundles. Unknown default locales fall back to Spanish.
func NewTranslator(defaultLocale string, lggr logger.Logger) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.Spanish
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.es.toml", "active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			lggr.Errorw("i18n: failed to load bundle", "file", file, "error", err)
		}
	}

	// The default language goes first so it wins ties in the matcher.
	tags := []language.Tag{tag}
	for _, t := range supported {
		if t != tag {
			tags = append(tags, t)
		}
	}

	return &Translator{
		bundle:          bundle,
		matcher:         language.NewMatcher(tags),
		defaultLanguage: tag,
		lggr:            lggr.Named("i18n"),
	}
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		t.lggr.Warnw("localize failed", "key", key, "locales", languages, "error", err)
		return key
	}
	return msg
}

// Locale returns the base language ("es", "en") best matching acceptLanguage.
func (t *Translator) Locale(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.defaultLanguage.String()
	}
	matched, _, _ := t.matcher.Match(tags...)
	base, _ := matched.Base()
	return base.String()
}
