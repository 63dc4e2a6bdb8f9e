//go:build windows

package i18n

import "syscall"

var procGetUserDefaultLCID = syscall.NewLazyDLL("kernel32.dll").NewProc("GetUserDefaultLCID")

// platformLanguage maps the user's default LCID to a language id.
func platformLanguage(_ func(string) string, _ func(string) bool) string {
	lcid, _, _ := procGetUserDefaultLCID.Call()
	return LangFromLCID(int(lcid))
}
