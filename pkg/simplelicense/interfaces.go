package simplelicense

import (
	"context"
)

// Packager defines the packaging pipeline
type Packager interface {
	// Package resolves, embeds, renders and zips a single file.
	// Embedding failures are absorbed; only *PackagingError is returned.
	Package(ctx context.Context, file FileInput, profile MetadataProfile) (*PackagedDownload, error)

	// PackageAll runs one independent pipeline per file against a single
	// snapshot of profile. Results are returned in input order.
	PackageAll(ctx context.Context, files []FileInput, profile MetadataProfile) []BatchResult

	// RenderLicense renders the license text for filename using the
	// packager's defaults and clock.
	RenderLicense(filename string, profile MetadataProfile) string
}

// Embedder rewrites format-native metadata inside a file's bytes.
// Implementations must not modify data in place and must return an
// *EmbedError instead of partially written bytes.
type Embedder interface {
	Embed(ctx context.Context, data []byte, mimeType string, meta Metadata) ([]byte, error)
}

// MetadataReader reads back the fields an Embedder writes
type MetadataReader interface {
	ReadMetadata(data []byte, mimeType string) (Metadata, error)
}

// Sink receives finished archives at the output boundary
type Sink interface {
	// Deliver stores or forwards the archive and returns where it ended up
	Deliver(ctx context.Context, download *PackagedDownload) (string, error)
}

// EventSink defines the interface for packaging events
type EventSink interface {
	// Packaged is fired when a download has been assembled
	Packaged(ctx context.Context, download *PackagedDownload) error

	// EmbedFallback is fired when embedding failed and the original bytes were kept
	EmbedFallback(ctx context.Context, file FileInput, cause error) error
}
