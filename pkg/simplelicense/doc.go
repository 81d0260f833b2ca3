// Package simplelicense attaches descriptive and licensing metadata to files
// and packages each file together with a generated license text.
//
// It exposes a single Packager interface that orchestrates type resolution,
// format-specific metadata embedding, license rendering and zip assembly.
// Embedders for concrete formats (audio containers, PDF documents) and
// delivery sinks (memory, filesystem) are provided under subpackages and are
// registered through functional options.
//
// Pipeline
//
//	FileInput + MetadataProfile
//	  -> Resolve(name)            extension lookup, never fails
//	  -> Embedder.Embed           optional; failure falls back to original bytes
//	  -> RenderLicense            template + placeholders, never fails
//	  -> zip {name, name.license.txt}
//
// Embedding is best effort. A file whose bytes cannot be rewritten is shipped
// unmodified and the failure is logged; only an archive-level failure is
// reported to the caller as a *PackagingError.
//
// Template placeholders
//
// The license template understands {filename}, {downloadDate}, {year},
// {institution}, {website}, {contact} and {authorsList}. Unknown placeholders
// are left verbatim.
package simplelicense
