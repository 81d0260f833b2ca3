// Package audio embeds title, artist and album tags into audio containers.
//
// Supported containers are MP3 (ID3v2), FLAC (Vorbis comment block), Ogg
// Vorbis and Ogg Opus (comment header packet) and WAV (RIFF LIST/INFO).
// Only tag structures are rewritten; audio payload bytes are copied as is.
package audio

import (
	"context"
	"fmt"
	"strings"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

// codec rewrites and reads the tags of one container family
type codec interface {
	name() string
	embed(data []byte, meta simplelicense.Metadata) ([]byte, error)
	read(data []byte) (simplelicense.Metadata, error)
}

// Embedder dispatches on MIME type to the matching container codec
type Embedder struct {
	codecs map[string]codec
}

// New creates an audio embedder covering every supported container
func New() *Embedder {
	mp3 := mp3Codec{}
	flac := flacCodec{}
	ogg := oggCodec{}
	wav := wavCodec{}
	return &Embedder{
		codecs: map[string]codec{
			"audio/mpeg":      mp3,
			"audio/mp3":       mp3,
			"audio/mpeg3":     mp3,
			"audio/flac":      flac,
			"audio/x-flac":    flac,
			"audio/ogg":       ogg,
			"audio/opus":      ogg,
			"audio/vorbis":    ogg,
			"application/ogg": ogg,
			"audio/wav":       wav,
			"audio/wave":      wav,
			"audio/x-wav":     wav,
			"audio/vnd.wave":  wav,
		},
	}
}

// Supports reports whether mimeType has a codec.
func (e *Embedder) Supports(mimeType string) bool {
	_, ok := e.codecs[normalizeMime(mimeType)]
	return ok
}

// Embed rewrites the container tags of data.
func (e *Embedder) Embed(ctx context.Context, data []byte, mimeType string, meta simplelicense.Metadata) ([]byte, error) {
	c, err := e.codecFor(mimeType)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, simplelicense.NewEmbedError(simplelicense.AudioEmbed, mimeType, c.name(), err)
	}

	out, err := c.embed(data, meta)
	if err != nil {
		return nil, simplelicense.NewEmbedError(simplelicense.AudioEmbed, mimeType, c.name(), err)
	}
	return out, nil
}

// ReadMetadata reads back the tags written by Embed.
func (e *Embedder) ReadMetadata(data []byte, mimeType string) (simplelicense.Metadata, error) {
	c, err := e.codecFor(mimeType)
	if err != nil {
		return simplelicense.Metadata{}, err
	}
	meta, err := c.read(data)
	if err != nil {
		return simplelicense.Metadata{}, simplelicense.NewEmbedError(simplelicense.AudioEmbed, mimeType, c.name(), err)
	}
	return meta, nil
}

func (e *Embedder) codecFor(mimeType string) (codec, error) {
	c, ok := e.codecs[normalizeMime(mimeType)]
	if !ok {
		return nil, simplelicense.NewEmbedError(simplelicense.AudioEmbed, mimeType, "dispatch",
			fmt.Errorf("%w: %s", simplelicense.ErrUnsupportedFormat, mimeType))
	}
	return c, nil
}

func normalizeMime(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", simplelicense.ErrInvalidContainer, fmt.Sprintf(format, args...))
}

func unsupportedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", simplelicense.ErrUnsupportedFormat, fmt.Sprintf(format, args...))
}
