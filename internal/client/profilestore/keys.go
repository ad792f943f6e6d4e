package profilestore

import "strings"

const (
	authPrefix     = "user_auth_"
	profilePrefix  = "user_profile_"
	phonePrefix    = "phone_map_"
	creativePrefix = "myCreatives_"
	autosavePrefix = "dashboard_autosave_"
	usagePrefix    = "usage_stats_"
	welcomePrefix  = "welcome_email_sent_"
)

// NormalizeEmail trims surrounding whitespace and lower-cases email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthKey and the other email-keyed builders normalize their argument.
func AuthKey(email string) string {
	return authPrefix + NormalizeEmail(email)
}

func ProfileKey(email string) string {
	return profilePrefix + NormalizeEmail(email)
}

func CreativesKey(email string) string {
	return creativePrefix + NormalizeEmail(email)
}

func AutosaveKey(email string) string {
	return autosavePrefix + NormalizeEmail(email)
}

func UsageKey(email string) string {
	return usagePrefix + NormalizeEmail(email)
}

func WelcomeKey(email string) string {
	return welcomePrefix + NormalizeEmail(email)
}

// PhoneKey is not normalized; numbers are stored as entered.
func PhoneKey(phone string) string {
	return phonePrefix + phone
}
