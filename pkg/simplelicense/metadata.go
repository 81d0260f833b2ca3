package simplelicense

import (
	"strings"
)

// DefaultTitle is used when neither the profile nor the defaults carry a title
const DefaultTitle = "Default Title"

// ResolveMetadata computes the embed field set for one request. Each field
// takes the profile value, then the default, then a hardcoded fallback.
func ResolveMetadata(profile MetadataProfile, defaults DefaultMetadata) Metadata {
	meta := Metadata{
		Title:       firstNonEmpty(profile.Title, defaults.Title, DefaultTitle),
		Artist:      firstNonEmpty(joinAuthors(profile.Authors), joinAuthors(defaults.Authors)),
		Album:       firstNonEmpty(profile.Source, defaults.Source),
		Institution: firstNonEmpty(profile.Institution, defaults.Institution),
		Website:     firstNonEmpty(profile.Website, defaults.Website),
		Contact:     firstNonEmpty(profile.Contact, defaults.Contact),
	}

	var parts []string
	for _, p := range []string{meta.Institution, meta.Website, meta.Contact} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	meta.Comment = strings.Join(parts, " | ")
	return meta
}

func joinAuthors(authors []string) string {
	var kept []string
	for _, a := range authors {
		if a = strings.TrimSpace(a); a != "" {
			kept = append(kept, a)
		}
	}
	return strings.Join(kept, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
