//go:build !windows

package i18nbundle

import (
	"fmt"
	"os"

	"github.com/jelilio/i18n-resource-bundle/errs"
)

// SystemLocale detects the host locale on Unix-like systems from the locale
// environment variables, in order of precedence.
func SystemLocale() (Locale, error) {
	for _, envVar := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(envVar); v != "" {
			if loc, err := ParseLocale(v); err == nil && !loc.IsRoot() {
				return loc, nil
			}
		}
	}
	return Root, fmt.Errorf("%w: could not detect system locale", errs.ErrInvalidLocale)
}
