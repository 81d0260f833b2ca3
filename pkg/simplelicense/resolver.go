package simplelicense

import (
	"slices"
	"strings"
)

// MimeTypeUnknown is reported for extensions outside the type table
const MimeTypeUnknown = "application/octet-stream"

// typeTable is keyed by lowercase extension without the dot
var typeTable = map[string]TypeDescriptor{
	"wav":  {Extension: "wav", MimeType: "audio/wav", Strategy: AudioEmbed},
	"mp3":  {Extension: "mp3", MimeType: "audio/mpeg", Strategy: AudioEmbed},
	"ogg":  {Extension: "ogg", MimeType: "audio/ogg", Strategy: AudioEmbed},
	"flac": {Extension: "flac", MimeType: "audio/flac", Strategy: AudioEmbed},
	"pdf":  {Extension: "pdf", MimeType: "application/pdf", Strategy: DocumentEmbed},
	"mp4":  {Extension: "mp4", MimeType: "video/mp4", Strategy: NoEmbed},
	"webm": {Extension: "webm", MimeType: "video/webm", Strategy: NoEmbed},
	"jpg":  {Extension: "jpg", MimeType: "image/jpeg", Strategy: NoEmbed},
	"jpeg": {Extension: "jpeg", MimeType: "image/jpeg", Strategy: NoEmbed},
	"png":  {Extension: "png", MimeType: "image/png", Strategy: NoEmbed},
	"gif":  {Extension: "gif", MimeType: "image/gif", Strategy: NoEmbed},
	"webp": {Extension: "webp", MimeType: "image/webp", Strategy: NoEmbed},
}

// Resolve maps a file name to its type descriptor. Matching is on the text
// after the last dot of the base name, case-insensitively. Unknown or missing
// extensions resolve to a pass-through descriptor.
func Resolve(filename string) TypeDescriptor {
	ext := Extension(filename)
	if d, ok := typeTable[ext]; ok {
		return d
	}
	return TypeDescriptor{Extension: ext, MimeType: MimeTypeUnknown, Strategy: NoEmbed}
}

// ResolveInput resolves file by name. When the extension is not in the type
// table the declared MIME type, if any, is reported instead of
// MimeTypeUnknown. Embedding is still decided by extension alone.
func ResolveInput(file FileInput) TypeDescriptor {
	desc := Resolve(file.Name)
	if desc.MimeType != MimeTypeUnknown {
		return desc
	}
	declared, _, _ := strings.Cut(file.DeclaredMimeType, ";")
	if declared = strings.ToLower(strings.TrimSpace(declared)); declared != "" {
		desc.MimeType = declared
	}
	return desc
}

// Extension returns the lowercase extension of filename without the dot,
// or "" when there is none.
func Extension(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// SupportedTypes lists the type table sorted by extension.
func SupportedTypes() []TypeDescriptor {
	out := make([]TypeDescriptor, 0, len(typeTable))
	for _, d := range typeTable {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b TypeDescriptor) int {
		return strings.Compare(a.Extension, b.Extension)
	})
	return out
}
