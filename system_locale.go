package i18nbundle

// SystemLocaleDetector reports the host environment's locale. The default
// implementation is platform-specific; embedding applications can substitute
// their own when building configuration.
type SystemLocaleDetector interface {
	DetectLocale() (Locale, error)
}

// DefaultSystemLocaleDetector detects the locale through the platform's
// native mechanism: locale environment variables on Unix-like systems, the
// Windows API and registry on Windows.
type DefaultSystemLocaleDetector struct{}

func (DefaultSystemLocaleDetector) DetectLocale() (Locale, error) {
	return SystemLocale()
}
