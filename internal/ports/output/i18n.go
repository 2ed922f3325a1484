package output

// Translator renders localized API messages.
type Translator interface {
	// T renders the message identified by key for the given locale; data fills
	// template placeholders and may be nil.
	T(locale, key string, data map[string]any) string
	// Locale picks the best supported locale for an Accept-Language header value.
	Locale(acceptLanguage string) string
}
