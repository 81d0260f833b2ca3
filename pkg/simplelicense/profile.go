package simplelicense

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// ProfileStore holds the live, user-editable profile. Edits are merged onto
// the defaults it was created with, and readers only ever receive copies.
type ProfileStore struct {
	mu       sync.RWMutex
	defaults DefaultMetadata
	profile  MetadataProfile
}

// NewProfileStore creates a store seeded with defaults.
func NewProfileStore(defaults DefaultMetadata) *ProfileStore {
	return &ProfileStore{defaults: NormalizeDefaults(defaults)}
}

// Set replaces the user overrides.
func (s *ProfileStore) Set(profile MetadataProfile) {
	p := NormalizeProfile(profile)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// Update applies fn to a copy of the current overrides and stores the result.
func (s *ProfileStore) Update(fn func(p *MetadataProfile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile.Clone()
	fn(&p)
	s.profile = NormalizeProfile(p)
}

// Overrides returns a copy of the user overrides without defaults applied.
func (s *ProfileStore) Overrides() MetadataProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// Defaults returns a copy of the defaults the store was created with.
func (s *ProfileStore) Defaults() DefaultMetadata {
	return s.defaults.Clone()
}

// Snapshot returns the overrides merged onto the defaults. The result shares
// no memory with the store.
func (s *ProfileStore) Snapshot() MetadataProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return MergeProfile(s.defaults, s.profile)
}

// MergeProfile fills every empty field of overrides from defaults.
func MergeProfile(defaults DefaultMetadata, overrides MetadataProfile) MetadataProfile {
	p := overrides.Clone()
	if p.Title == "" {
		p.Title = defaults.Title
	}
	if len(p.Authors) == 0 {
		p.Authors = append([]string(nil), defaults.Authors...)
	}
	if p.Institution == "" {
		p.Institution = defaults.Institution
	}
	if p.Website == "" {
		p.Website = defaults.Website
	}
	if p.Contact == "" {
		p.Contact = defaults.Contact
	}
	if p.Source == "" {
		p.Source = defaults.Source
	}
	if p.DateFormat == "" {
		p.DateFormat = DateFormatLocale
	}
	return p
}

// NormalizeProfile trims and NFC-normalizes user text and drops empty authors.
func NormalizeProfile(p MetadataProfile) MetadataProfile {
	p = p.Clone()
	p.Title = normalizeText(p.Title)
	p.Authors = normalizeAuthors(p.Authors)
	p.Institution = normalizeText(p.Institution)
	p.Website = normalizeText(p.Website)
	p.Contact = normalizeText(p.Contact)
	p.Source = normalizeText(p.Source)
	p.LicenseTemplate = norm.NFC.String(p.LicenseTemplate)
	return p
}

// NormalizeDefaults applies the same cleanup as NormalizeProfile.
func NormalizeDefaults(d DefaultMetadata) DefaultMetadata {
	d = d.Clone()
	d.Title = normalizeText(d.Title)
	d.Authors = normalizeAuthors(d.Authors)
	d.Institution = normalizeText(d.Institution)
	d.Website = normalizeText(d.Website)
	d.Contact = normalizeText(d.Contact)
	d.Source = normalizeText(d.Source)
	return d
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizeAuthors(authors []string) []string {
	if len(authors) == 0 {
		return nil
	}
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		if a = normalizeText(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
