package i18n

import (
	"testing"

	"github.com/shindora/nesubtv/internal/domain/model"
)

func TestTranslator_T(t *testing.T) {
	tr := New()

	tests := []struct {
		name string
		lang model.Language
		key  string
		want string
	}{
		{"english key", model.LangEnglish, "watchLater", "Watch Later"},
		{"indonesian key", model.LangIndonesian, "watchLater", "Tonton Nanti"},
		{"unknown key returns key verbatim", model.LangEnglish, "doesNotExist", "doesNotExist"},
		{"invalid language falls back to default locale", model.Language("fr"), "home", "Beranda"},
		{"next in indonesian", model.LangIndonesian, "next", "Selanjutnya"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.T(tt.lang, tt.key); got != tt.want {
				t.Errorf("T(%s, %s) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestTranslator_Messages(t *testing.T) {
	tr := New()

	en := tr.Messages(model.LangEnglish)
	if en["home"] != "Home" {
		t.Errorf("Messages(en)[home] = %q, want Home", en["home"])
	}

	// Returned map is a copy; mutating it must not affect the translator.
	en["home"] = "mutated"
	if tr.T(model.LangEnglish, "home") != "Home" {
		t.Error("mutating Messages result leaked into the translator")
	}
}

func TestTranslator_TablesCoverSameKeys(t *testing.T) {
	tr := New()
	en := tr.Messages(model.LangEnglish)
	id := tr.Messages(model.LangIndonesian)

	if len(en) != len(id) {
		t.Fatalf("table sizes differ: en=%d id=%d", len(en), len(id))
	}
	for key := range en {
		if _, ok := id[key]; !ok {
			t.Errorf("key %q missing from indonesian table", key)
		}
	}
}
