//go:build windows

package i18nbundle

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/jelilio/i18n-resource-bundle/errs"
)

// Windows locale name max length per LOCALE_NAME_MAX_LENGTH.
const localeNameMaxLength = 85

// SystemLocale detects the host locale on Windows. Environment variables are
// checked first for parity with Unix behaviour, then the Windows API, then
// the registry.
func SystemLocale() (Locale, error) {
	if loc, err := localeFromEnvironment(); err == nil {
		return loc, nil
	}
	if loc, err := localeFromWindowsAPI(); err == nil {
		return loc, nil
	}
	if loc, err := localeFromRegistry(); err == nil {
		return loc, nil
	}
	return Root, fmt.Errorf("%w: could not detect system locale", errs.ErrInvalidLocale)
}

func localeFromEnvironment() (Locale, error) {
	for _, envVar := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(envVar); v != "" {
			if loc, err := ParseLocale(v); err == nil && !loc.IsRoot() {
				return loc, nil
			}
		}
	}
	return Root, fmt.Errorf("%w: no locale in environment", errs.ErrInvalidLocale)
}

func localeFromWindowsAPI() (Locale, error) {
	kernel32 := windows.NewLazySystemDLL("kernel32.dll")
	proc := kernel32.NewProc("GetUserDefaultLocaleName")
	if proc.Find() != nil {
		return Root, fmt.Errorf("%w: GetUserDefaultLocaleName unavailable", errs.ErrInvalidLocale)
	}
	buf := make([]uint16, localeNameMaxLength)
	ret, _, _ := proc.Call(
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if ret == 0 {
		return Root, fmt.Errorf("%w: GetUserDefaultLocaleName failed", errs.ErrInvalidLocale)
	}
	return ParseLocale(windows.UTF16ToString(buf))
}

func localeFromRegistry() (Locale, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER,
		`Control Panel\International`, registry.QUERY_VALUE)
	if err != nil {
		return Root, err
	}
	defer k.Close()

	name, _, err := k.GetStringValue("LocaleName")
	if err != nil || name == "" {
		return Root, fmt.Errorf("%w: no LocaleName in registry", errs.ErrInvalidLocale)
	}
	return ParseLocale(name)
}
