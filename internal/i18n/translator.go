// Package i18n provides UI text translation for the supported locales.
package i18n

import "github.com/shindora/nesubtv/internal/domain/model"

// Translator resolves symbolic message keys to display strings per
// language. Lookup is total: an unknown key comes back verbatim so a
// missing translation is visible instead of fatal.
type Translator struct {
	tables map[model.Language]map[string]string
}

// New returns a Translator loaded with the built-in en/id tables.
func New() *Translator {
	return &Translator{tables: translations}
}

// T returns the display string for key in the given language. An invalid
// language falls back to the default locale; an unknown key returns the
// key itself.
func (tr *Translator) T(lang model.Language, key string) string {
	table, ok := tr.tables[lang]
	if !ok {
		table = tr.tables[model.DefaultLanguage]
	}
	if text, found := table[key]; found {
		return text
	}
	return key
}

// Messages returns a copy of the full table for the given language,
// falling back to the default locale for an invalid one.
func (tr *Translator) Messages(lang model.Language) map[string]string {
	table, ok := tr.tables[lang]
	if !ok {
		table = tr.tables[model.DefaultLanguage]
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}
