package domain

// Persisted preference keys, read once at page boot.
const (
	PrefTheme         = "theme"
	PrefCookieConsent = "cookie-consent"
)

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences is the boot-time view of the two persisted flags.
type Preferences struct {
	Theme           string `json:"theme"`
	CookiesAccepted bool   `json:"cookies_accepted"`
}

// DefaultPreferences is used when nothing is persisted.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight}
}
