// Package presets wires the packager with every bundled embedder.
package presets

import (
	"errors"
	"fmt"

	"github.com/tendant/simple-license/pkg/simplelicense"
	"github.com/tendant/simple-license/pkg/simplelicense/embed/audio"
	"github.com/tendant/simple-license/pkg/simplelicense/embed/document"
)

// NewPackager creates a packager with the audio and document embedders
// registered. Options are applied after the embedders, so callers can
// replace either one.
func NewPackager(options ...simplelicense.Option) (simplelicense.Packager, error) {
	base := []simplelicense.Option{
		simplelicense.WithEmbedder(simplelicense.AudioEmbed, audio.New()),
		simplelicense.WithEmbedder(simplelicense.DocumentEmbed, document.New()),
	}
	return simplelicense.New(append(base, options...)...)
}

// Reader returns the metadata reader for a strategy.
func Reader(strategy simplelicense.EmbedStrategy) (simplelicense.MetadataReader, bool) {
	switch strategy {
	case simplelicense.AudioEmbed:
		return audio.New(), true
	case simplelicense.DocumentEmbed:
		return document.New(), true
	}
	return nil, false
}

// Inspect resolves filename and reads back the metadata embedded in data.
func Inspect(filename string, data []byte) (simplelicense.TypeDescriptor, simplelicense.Metadata, error) {
	desc := simplelicense.Resolve(filename)
	reader, ok := Reader(desc.Strategy)
	if !ok {
		return desc, simplelicense.Metadata{}, fmt.Errorf("%w: %s carries no embedded metadata", simplelicense.ErrNoEmbedder, desc.MimeType)
	}
	meta, err := reader.ReadMetadata(data, desc.MimeType)
	if err != nil {
		return desc, simplelicense.Metadata{}, err
	}
	return desc, meta, nil
}

// IsUnsupported reports whether err means the file type has no reader.
func IsUnsupported(err error) bool {
	return errors.Is(err, simplelicense.ErrNoEmbedder)
}
