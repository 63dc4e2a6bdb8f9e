//go:build !windows

package i18n

// platformLanguage derives the language from the locale environment.
func platformLanguage(getenv func(string) string, valid func(string) bool) string {
	return envLanguage(getenv, valid)
}
