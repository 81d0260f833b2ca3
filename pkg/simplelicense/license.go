package simplelicense

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Placeholder tokens recognised in license templates
const (
	PlaceholderFilename     = "{filename}"
	PlaceholderDownloadDate = "{downloadDate}"
	PlaceholderYear         = "{year}"
	PlaceholderInstitution  = "{institution}"
	PlaceholderWebsite      = "{website}"
	PlaceholderContact      = "{contact}"
	PlaceholderAuthorsList  = "{authorsList}"
)

// NotAvailable stands in for an empty authors list and for unset contact fields
const NotAvailable = "N/A"

// LicenseSuffix is appended to the original file name for the license entry
const LicenseSuffix = ".license.txt"

// DefaultTemplate is used when a profile carries no template
const DefaultTemplate = `<p>License for {filename}</p>` +
	`<p>Downloaded on {downloadDate}</p>` +
	`<p>Copyright (c) {year} {institution}</p>` +
	`<p>Authors: {authorsList}</p>` +
	`<p>Website: {website}</p>` +
	`<p>Contact: {contact}</p>`

// Placeholders lists the template vocabulary in documentation order.
func Placeholders() []string {
	return []string{
		PlaceholderFilename,
		PlaceholderDownloadDate,
		PlaceholderYear,
		PlaceholderInstitution,
		PlaceholderWebsite,
		PlaceholderContact,
		PlaceholderAuthorsList,
	}
}

// Renderer renders license texts against a fixed set of defaults
type Renderer struct {
	Defaults DefaultMetadata
	Locale   language.Tag
}

// Render produces the license text for filename. It cannot fail: every
// placeholder has a fallback and unknown placeholders are left verbatim.
func (r Renderer) Render(filename string, profile MetadataProfile, now time.Time) string {
	locale := r.Locale
	if locale == language.Und {
		locale = DefaultLocale
	}

	authors := firstNonEmpty(joinAuthors(profile.Authors), joinAuthors(r.Defaults.Authors), NotAvailable)

	tmpl := profile.LicenseTemplate
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultTemplate
	}

	// strings.Replacer substitutes in a single pass, so values that contain
	// placeholder text are never expanded again.
	replacer := strings.NewReplacer(
		PlaceholderFilename, filename,
		PlaceholderDownloadDate, FormatDate(now, profile.DateFormat, locale),
		PlaceholderYear, strconv.Itoa(now.Year()),
		PlaceholderInstitution, firstNonEmpty(profile.Institution, r.Defaults.Institution, NotAvailable),
		PlaceholderWebsite, firstNonEmpty(profile.Website, r.Defaults.Website, NotAvailable),
		PlaceholderContact, firstNonEmpty(profile.Contact, r.Defaults.Contact, NotAvailable),
		PlaceholderAuthorsList, authors,
	)

	return normalizeLines(replacer.Replace(TemplateText(tmpl)))
}

// RenderLicense renders with the default locale.
func RenderLicense(filename string, profile MetadataProfile, defaults DefaultMetadata, now time.Time) string {
	return Renderer{Defaults: defaults}.Render(filename, profile, now)
}

// LicenseName returns the archive entry name of the license for filename.
func LicenseName(filename string) string {
	return EntryName(filename) + LicenseSuffix
}

func normalizeLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
