package simplelicense

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DateFormat selects how {downloadDate} is rendered
type DateFormat string

const (
	// DateFormatYMD renders year-month-day, e.g. 2024-3-5
	DateFormatYMD DateFormat = "yyyy-m-d"
	// DateFormatMYD renders month-year-day, e.g. 3-2024-5
	DateFormatMYD DateFormat = "m-yyyy-d"
	// DateFormatDMY renders day-month-year, e.g. 5-3-2024
	DateFormatDMY DateFormat = "d-m-yyyy"
	// DateFormatLocale renders with the layout of the configured locale
	DateFormatLocale DateFormat = "locale-default"
)

// Valid reports whether f is one of the known date formats.
// The empty value is treated as DateFormatLocale.
func (f DateFormat) Valid() bool {
	switch f {
	case DateFormatYMD, DateFormatMYD, DateFormatDMY, DateFormatLocale, "":
		return true
	}
	return false
}

// EmbedStrategy identifies which embedder family handles a file type
type EmbedStrategy string

const (
	// NoEmbed passes the file through unmodified
	NoEmbed EmbedStrategy = "none"
	// AudioEmbed rewrites audio container tags
	AudioEmbed EmbedStrategy = "audio"
	// DocumentEmbed rewrites document properties
	DocumentEmbed EmbedStrategy = "document"
)

// FileInput is a file captured from the presentation layer.
// It is treated as immutable; embedders never modify Content in place.
// DeclaredMimeType is reported for files whose extension is not recognized.
type FileInput struct {
	Name             string
	Content          []byte
	DeclaredMimeType string
}

// MetadataProfile is the user-editable bundle of descriptive and licensing
// fields applied to every file in a packaging request.
type MetadataProfile struct {
	Title           string     `json:"title,omitempty" toml:"title"`
	Authors         []string   `json:"authors,omitempty" toml:"authors"`
	Institution     string     `json:"institution,omitempty" toml:"institution"`
	Website         string     `json:"website,omitempty" toml:"website"`
	Contact         string     `json:"contact,omitempty" toml:"contact"`
	Source          string     `json:"source,omitempty" toml:"source"`
	DateFormat      DateFormat `json:"date_format,omitempty" toml:"date_format"`
	LicenseTemplate string     `json:"license_template,omitempty" toml:"template"`
}

// Clone returns a deep copy so a pipeline never observes later edits.
func (p MetadataProfile) Clone() MetadataProfile {
	p.Authors = slices.Clone(p.Authors)
	return p
}

// DefaultMetadata holds the fallback values applied when a profile leaves a
// field empty. It is fixed when the Packager is constructed.
type DefaultMetadata struct {
	Title       string   `json:"title,omitempty" toml:"title"`
	Authors     []string `json:"authors,omitempty" toml:"authors"`
	Institution string   `json:"institution,omitempty" toml:"institution"`
	Website     string   `json:"website,omitempty" toml:"website"`
	Contact     string   `json:"contact,omitempty" toml:"contact"`
	Source      string   `json:"source,omitempty" toml:"source"`
}

// Clone returns a deep copy of d.
func (d DefaultMetadata) Clone() DefaultMetadata {
	d.Authors = slices.Clone(d.Authors)
	return d
}

// Metadata is the resolved field set handed to embedders
type Metadata struct {
	Title       string
	Artist      string
	Album       string
	Institution string
	Website     string
	Contact     string
	Comment     string
}

// TypeDescriptor is the result of resolving a file name
type TypeDescriptor struct {
	Extension string
	MimeType  string
	Strategy  EmbedStrategy
}

// Embeddable reports whether the descriptor routes to an embedder.
func (d TypeDescriptor) Embeddable() bool {
	return d.Strategy != "" && d.Strategy != NoEmbed
}

// PackagedDownload is the result of a single packaging request
type PackagedDownload struct {
	RequestID      uuid.UUID
	FileName       string
	ArchiveName    string
	Archive        []byte
	ProcessedBytes []byte
	LicenseName    string
	LicenseText    string
	Descriptor     TypeDescriptor
	Embedded       bool
	CreatedAt      time.Time
}

// BatchResult pairs one input of PackageAll with its outcome
type BatchResult struct {
	FileName string
	Download *PackagedDownload
	Err      error
}
