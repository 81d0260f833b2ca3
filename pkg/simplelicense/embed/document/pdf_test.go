package document

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-license/internal/testsupport"
	"github.com/tendant/simple-license/pkg/simplelicense"
)

var testMeta = simplelicense.Metadata{
	Title:       "Lecture Notes",
	Artist:      "Ada Lovelace, Charles Babbage",
	Album:       "Analytical Engine (Drafts)",
	Institution: "Acme Labs",
}

func TestPDFRoundTrip(t *testing.T) {
	e := New()
	input := testsupport.MinimalPDF("")

	out, err := e.Embed(context.Background(), input, MimeTypePDF, testMeta)
	require.NoError(t, err)

	meta, err := e.ReadMetadata(out, MimeTypePDF)
	require.NoError(t, err)
	assert.Equal(t, testMeta.Title, meta.Title)
	assert.Equal(t, testMeta.Artist, meta.Artist)
	assert.Equal(t, testMeta.Album, meta.Album)
	assert.Equal(t, testMeta.Institution, meta.Institution)

	pages, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestPDFReplacesExistingInfo(t *testing.T) {
	e := New()
	input := testsupport.MinimalPDF("/Title (Old Title) /Author (Someone)")

	before, err := e.ReadMetadata(input, MimeTypePDF)
	require.NoError(t, err)
	assert.Equal(t, "Old Title", before.Title)

	out, err := e.Embed(context.Background(), input, MimeTypePDF, testMeta)
	require.NoError(t, err)

	meta, err := e.ReadMetadata(out, MimeTypePDF)
	require.NoError(t, err)
	assert.Equal(t, testMeta.Title, meta.Title)
	assert.Equal(t, testMeta.Artist, meta.Artist)
}

func TestPDFUnicodeText(t *testing.T) {
	e := New()
	meta := testMeta
	meta.Title = "Université 東京"

	out, err := e.Embed(context.Background(), testsupport.MinimalPDF(""), MimeTypePDF, meta)
	require.NoError(t, err)

	got, err := e.ReadMetadata(out, MimeTypePDF)
	require.NoError(t, err)
	assert.Equal(t, meta.Title, got.Title)
}

func TestPDFRejectsInvalidBytes(t *testing.T) {
	e := New()

	for name, data := range map[string][]byte{
		"not a pdf": []byte("plain text"),
		"header only": []byte("%PDF-1.4\n"),
	} {
		t.Run(name, func(t *testing.T) {
			out, err := e.Embed(context.Background(), data, MimeTypePDF, testMeta)
			assert.Nil(t, out)
			require.Error(t, err)
			assert.ErrorIs(t, err, simplelicense.ErrInvalidContainer)

			var embedErr *simplelicense.EmbedError
			require.True(t, errors.As(err, &embedErr))
			assert.Equal(t, simplelicense.DocumentEmbed, embedErr.Strategy)
		})
	}
}

func TestPDFRejectsOtherMimeTypes(t *testing.T) {
	_, err := New().Embed(context.Background(), testsupport.MinimalPDF(""), "image/png", testMeta)
	assert.ErrorIs(t, err, simplelicense.ErrUnsupportedFormat)
	assert.True(t, New().Supports("application/x-pdf"))
}
