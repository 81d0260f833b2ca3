package simplelicense

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is used by DateFormatLocale when no locale is configured
var DefaultLocale = language.AmericanEnglish

var localeLayouts = []struct {
	tag    language.Tag
	layout string
}{
	// first entry is the matcher fallback
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.MustParse("en-CA"), "2006-01-02"},
	{language.German, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Japanese, "2006/1/2"},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(localeLayouts))
	for i, l := range localeLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// FormatDate renders t for the {downloadDate} placeholder. The numeric
// formats are built from date components without zero padding; any other
// value uses the layout of the closest supported locale.
func FormatDate(t time.Time, f DateFormat, locale language.Tag) string {
	switch f {
	case DateFormatYMD:
		return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
	case DateFormatMYD:
		return fmt.Sprintf("%d-%d-%d", int(t.Month()), t.Year(), t.Day())
	case DateFormatDMY:
		return fmt.Sprintf("%d-%d-%d", t.Day(), int(t.Month()), t.Year())
	}
	return t.Format(LocaleLayout(locale))
}

// LocaleLayout returns the time layout used for locale, falling back to the
// en-US layout for unsupported locales.
func LocaleLayout(locale language.Tag) string {
	_, idx, conf := localeMatcher.Match(locale)
	if conf == language.No || idx < 0 || idx >= len(localeLayouts) {
		return localeLayouts[0].layout
	}
	return localeLayouts[idx].layout
}

// ParseLocale parses a BCP 47 tag; an empty string yields DefaultLocale.
func ParseLocale(s string) (language.Tag, error) {
	if s == "" {
		return DefaultLocale, nil
	}
	return language.Parse(s)
}
