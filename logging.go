package i18nbundle

// logMissing warns once per (code, locale) pair so a hot unresolved code
// does not flood the log. The dedup set lives for the Source's lifetime and
// is not cleared with the bundle cache.
func (s *Source) logMissing(code string, locale Locale) {
	key := locale.String() + "\x00" + code
	if _, seen := s.missingOnce.LoadOrStore(key, struct{}{}); !seen {
		s.log.Warn().
			Str("locale", locale.String()).
			Str("code", code).
			Msg("no message for code")
	}
}
