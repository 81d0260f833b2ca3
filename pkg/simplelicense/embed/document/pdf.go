// Package document embeds title, author and subject properties into PDF
// documents through the document information dictionary.
package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

// MimeTypePDF is the MIME type handled by the embedder
const MimeTypePDF = "application/pdf"

// Info dictionary keys written by the embedder
const (
	keyTitle   = "Title"
	keyAuthor  = "Author"
	keySubject = "Subject"
	keyCreator = "Creator"
)

var disableConfigDir sync.Once

// Embedder rewrites the PDF document information dictionary. Page objects
// and content streams are carried over unchanged.
type Embedder struct{}

// New creates a PDF embedder
func New() *Embedder {
	// pdfcpu otherwise creates a configuration directory under $HOME
	disableConfigDir.Do(api.DisableConfigDir)
	return &Embedder{}
}

// Supports reports whether mimeType is a PDF type.
func (e *Embedder) Supports(mimeType string) bool {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case MimeTypePDF, "application/x-pdf":
		return true
	}
	return false
}

// Embed sets Title, Author, Subject and Creator on the document.
func (e *Embedder) Embed(ctx context.Context, data []byte, mimeType string, meta simplelicense.Metadata) ([]byte, error) {
	if !e.Supports(mimeType) {
		return nil, embedError(mimeType, "dispatch", fmt.Errorf("%w: %s", simplelicense.ErrUnsupportedFormat, mimeType))
	}
	if err := ctx.Err(); err != nil {
		return nil, embedError(mimeType, "read", err)
	}

	pdf, err := readContext(data)
	if err != nil {
		return nil, embedError(mimeType, "read", err)
	}

	info, err := infoDict(pdf, true)
	if err != nil {
		return nil, embedError(mimeType, "info", err)
	}
	setText(info, keyTitle, meta.Title)
	setText(info, keyAuthor, meta.Artist)
	setText(info, keySubject, meta.Album)
	pdf.Title, pdf.Author, pdf.Subject = meta.Title, meta.Artist, meta.Album
	if meta.Institution != "" {
		setText(info, keyCreator, meta.Institution)
		pdf.Creator = meta.Institution
	}

	var buf bytes.Buffer
	if err := api.WriteContext(pdf, &buf); err != nil {
		return nil, embedError(mimeType, "write", err)
	}
	return buf.Bytes(), nil
}

// ReadMetadata reads the information dictionary back.
func (e *Embedder) ReadMetadata(data []byte, mimeType string) (simplelicense.Metadata, error) {
	pdf, err := readContext(data)
	if err != nil {
		return simplelicense.Metadata{}, embedError(mimeType, "read", err)
	}
	info, err := infoDict(pdf, false)
	if err != nil {
		return simplelicense.Metadata{}, embedError(mimeType, "info", err)
	}
	if info == nil {
		return simplelicense.Metadata{}, nil
	}
	return simplelicense.Metadata{
		Title:       decodeText(info[keyTitle]),
		Artist:      decodeText(info[keyAuthor]),
		Album:       decodeText(info[keySubject]),
		Institution: decodeText(info[keyCreator]),
	}, nil
}

// PageCount returns the number of pages of a PDF.
func PageCount(data []byte) (int, error) {
	pdf, err := readContext(data)
	if err != nil {
		return 0, err
	}
	if err := pdf.EnsurePageCount(); err != nil {
		return 0, err
	}
	return pdf.PageCount, nil
}

func readContext(data []byte) (*model.Context, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\n\f\r "), []byte("%PDF-")) {
		return nil, fmt.Errorf("%w: missing %%PDF header", simplelicense.ErrInvalidContainer)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdf, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", simplelicense.ErrInvalidContainer, err)
	}
	if err := api.ValidateContext(pdf); err != nil {
		return nil, fmt.Errorf("%w: %v", simplelicense.ErrInvalidContainer, err)
	}
	return pdf, nil
}

// infoDict returns the document information dictionary, creating an empty
// one when create is set and the document has none.
func infoDict(pdf *model.Context, create bool) (types.Dict, error) {
	if pdf.Info != nil {
		d, err := pdf.DereferenceDict(*pdf.Info)
		if err != nil {
			return nil, err
		}
		if d != nil {
			return d, nil
		}
	}
	if !create {
		return nil, nil
	}

	d := types.NewDict()
	ref, err := pdf.IndRefForNewObject(d)
	if err != nil {
		return nil, err
	}
	pdf.Info = ref
	return d, nil
}

func setText(d types.Dict, key, value string) {
	if value == "" {
		delete(d, key)
		return
	}
	d[key] = encodeText(value)
}

func embedError(mimeType, op string, err error) *simplelicense.EmbedError {
	return simplelicense.NewEmbedError(simplelicense.DocumentEmbed, mimeType, op, err)
}
