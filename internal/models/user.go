package models

import "time"

// Theme values accepted for user settings.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Defaults applied to settings created alongside a new user.
const (
	DefaultTheme    = ThemeLight
	DefaultCurrency = "BRL"
	DefaultLanguage = "en"
)

// User represents an account provisioned from a Google identity.
type User struct {
	UserID              string    `json:"user_id"`
	Email               string    `json:"email"`
	Name                string    `json:"name,omitempty"`
	AvatarURL           string    `json:"avatar_url,omitempty"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// UserSettings holds per-user display preferences. Exactly one row
// exists per user, created together with the user record.
type UserSettings struct {
	UserID    string    `json:"user_id"`
	Theme     string    `json:"theme"`
	Currency  string    `json:"currency"`
	Language  string    `json:"language"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDefaultSettings returns the settings row seeded for a new user.
func NewDefaultSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:    userID,
		Theme:     DefaultTheme,
		Currency:  DefaultCurrency,
		Language:  DefaultLanguage,
		UpdatedAt: time.Now().UTC(),
	}
}

// ValidTheme reports whether theme is an accepted value.
func ValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark || theme == ThemeSystem
}

// GoogleUserInfo is the profile returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// OnboardingBaseline records the starting balances captured when a user
// completes onboarding. The ledger anchors its running balance on the
// cash figure.
type OnboardingBaseline struct {
	UserID               string    `json:"user_id"`
	CashBalanceCents     int64     `json:"cash_balance_cents"`
	InvestedBalanceCents int64     `json:"invested_balance_cents"`
	CompletedAt          time.Time `json:"completed_at"`
}

// BaselineMonthKey returns the yyyy-MM month the baseline was captured in.
// Months before it are outside the ledger's navigable range.
func (b *OnboardingBaseline) BaselineMonthKey() string {
	return b.CompletedAt.UTC().Format("2006-01")
}
