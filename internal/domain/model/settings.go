package model

// Theme is the light/dark presentation mode.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Language is a supported UI locale.
type Language string

const (
	LangEnglish    Language = "en"
	LangIndonesian Language = "id"

	// DefaultLanguage matches the locale the site shipped with.
	DefaultLanguage = LangIndonesian
)

func (l Language) IsValid() bool {
	return l == LangEnglish || l == LangIndonesian
}

// Toggle flips between the two supported locales.
func (l Language) Toggle() Language {
	if l == LangEnglish {
		return LangIndonesian
	}
	return LangEnglish
}

// Colors is the color portion of the branding record. It is mirrored
// locally under its own key, separate from the logo.
type Colors struct {
	PrimaryColor string `json:"primaryColor"`
	DarkBg       string `json:"darkBg"`
	LightBg      string `json:"lightBg"`
	TextColor    string `json:"textColor"`
}

// ThemeSettings is the remotely authoritative branding record. The viewer
// keeps a locally persisted mirror and overwrites it whenever the remote
// copy is reachable.
type ThemeSettings struct {
	Colors
	Logo string `json:"logo"`
}

// SettingsUpdate contains optional fields for a partial settings update.
type SettingsUpdate struct {
	PrimaryColor *string `json:"primaryColor,omitempty"`
	DarkBg       *string `json:"darkBg,omitempty"`
	LightBg      *string `json:"lightBg,omitempty"`
	TextColor    *string `json:"textColor,omitempty"`
	Logo         *string `json:"logo,omitempty"`
}

// DefaultColors returns the hardcoded fallback palette used when neither
// a local mirror nor the remote settings store is available.
func DefaultColors() Colors {
	return Colors{
		PrimaryColor: "#3B82F6",
		DarkBg:       "#0F0F0F",
		LightBg:      "#FFFFFF",
		TextColor:    "#E5E7EB",
	}
}

// DefaultThemeSettings returns the default branding record with no logo.
func DefaultThemeSettings() ThemeSettings {
	return ThemeSettings{Colors: DefaultColors()}
}
