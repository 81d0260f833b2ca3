package simplelicense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// DefaultConcurrency bounds PackageAll when no limit is configured
const DefaultConcurrency = 4

// packager implements the Packager interface
type packager struct {
	embedders   map[EmbedStrategy]Embedder
	defaults    DefaultMetadata
	eventSink   EventSink
	logger      *slog.Logger
	clock       func() time.Time
	locale      language.Tag
	concurrency int
}

// Option represents a functional option for configuring the packager
type Option func(*packager)

// WithEmbedder registers the embedder used for a strategy
func WithEmbedder(strategy EmbedStrategy, embedder Embedder) Option {
	return func(p *packager) {
		if p.embedders == nil {
			p.embedders = make(map[EmbedStrategy]Embedder)
		}
		p.embedders[strategy] = embedder
	}
}

// WithDefaults sets the fallback metadata. The value is copied.
func WithDefaults(defaults DefaultMetadata) Option {
	return func(p *packager) {
		p.defaults = NormalizeDefaults(defaults)
	}
}

// WithEventSink sets the event sink for the packager
func WithEventSink(sink EventSink) Option {
	return func(p *packager) {
		p.eventSink = sink
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(p *packager) {
		p.logger = logger
	}
}

// WithClock overrides the wall clock used for {downloadDate} and {year}
func WithClock(clock func() time.Time) Option {
	return func(p *packager) {
		p.clock = clock
	}
}

// WithLocale sets the locale used by the locale-default date format
func WithLocale(locale language.Tag) Option {
	return func(p *packager) {
		p.locale = locale
	}
}

// WithConcurrency bounds the number of files PackageAll processes at once
func WithConcurrency(n int) Option {
	return func(p *packager) {
		p.concurrency = n
	}
}

// New creates a new packager with the given options
func New(options ...Option) (Packager, error) {
	p := &packager{
		embedders:   map[EmbedStrategy]Embedder{NoEmbed: NewNoopEmbedder()},
		eventSink:   NewNoopEventSink(),
		logger:      slog.Default(),
		clock:       time.Now,
		locale:      DefaultLocale,
		concurrency: DefaultConcurrency,
	}

	for _, option := range options {
		option(p)
	}

	if p.concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", p.concurrency)
	}
	if p.clock == nil {
		return nil, errors.New("clock is required")
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.eventSink == nil {
		p.eventSink = NewNoopEventSink()
	}

	return p, nil
}

func (p *packager) Package(ctx context.Context, file FileInput, profile MetadataProfile) (*PackagedDownload, error) {
	name := EntryName(file.Name)
	if strings.TrimSpace(name) == "" {
		return nil, &PackagingError{FileName: file.Name, Op: "validate", Err: ErrInvalidFileName}
	}

	profile = profile.Clone()
	requestID := uuid.New()
	logger := p.logger.With("request_id", requestID.String(), "file", file.Name)
	now := p.clock()

	desc := ResolveInput(file)
	processed, embedded := p.embed(ctx, logger, file, desc, profile)
	licenseText := p.renderer().Render(name, profile, now)
	licenseName := LicenseName(name)

	archive, err := writeArchive(now,
		archiveEntry{name: name, data: processed},
		archiveEntry{name: licenseName, data: []byte(licenseText)},
	)
	if err != nil {
		logger.Error("Failed to assemble archive", "err", err)
		return nil, &PackagingError{FileName: file.Name, Op: "archive", Err: err}
	}

	download := &PackagedDownload{
		RequestID:      requestID,
		FileName:       name,
		ArchiveName:    ArchiveName(name),
		Archive:        archive,
		ProcessedBytes: processed,
		LicenseName:    licenseName,
		LicenseText:    licenseText,
		Descriptor:     desc,
		Embedded:       embedded,
		CreatedAt:      now,
	}

	if err := p.eventSink.Packaged(ctx, download); err != nil {
		logger.Warn("Event sink rejected packaged event", "err", err)
	}

	logger.Debug("File packaged",
		"archive", download.ArchiveName,
		"strategy", desc.Strategy,
		"embedded", embedded,
		"size_bytes", len(archive))
	return download, nil
}

func (p *packager) PackageAll(ctx context.Context, files []FileInput, profile MetadataProfile) []BatchResult {
	snapshot := profile.Clone()
	results := make([]BatchResult, len(files))

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, file := range files {
		results[i].FileName = file.Name
		if err := ctx.Err(); err != nil {
			results[i].Err = &PackagingError{FileName: file.Name, Op: "schedule", Err: err}
			continue
		}
		g.Go(func() error {
			download, err := p.Package(ctx, file, snapshot)
			results[i].Download = download
			results[i].Err = err
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func (p *packager) RenderLicense(filename string, profile MetadataProfile) string {
	return p.renderer().Render(filename, profile, p.clock())
}

func (p *packager) renderer() Renderer {
	return Renderer{Defaults: p.defaults, Locale: p.locale}
}

// embed returns the processed bytes and whether embedding took effect.
// Any failure yields the original bytes.
func (p *packager) embed(ctx context.Context, logger *slog.Logger, file FileInput, desc TypeDescriptor, profile MetadataProfile) ([]byte, bool) {
	if !desc.Embeddable() {
		return file.Content, false
	}

	embedder, ok := p.embedders[desc.Strategy]
	if !ok || embedder == nil {
		logger.Debug("No embedder registered", "strategy", desc.Strategy)
		return file.Content, false
	}

	meta := ResolveMetadata(profile, p.defaults)
	out, err := safeEmbed(ctx, embedder, file.Content, desc, meta)
	if err != nil {
		logger.Warn("Embedding failed, keeping original bytes",
			"strategy", desc.Strategy,
			"mime_type", desc.MimeType,
			"err", err)
		if sinkErr := p.eventSink.EmbedFallback(ctx, file, err); sinkErr != nil {
			logger.Warn("Event sink rejected fallback event", "err", sinkErr)
		}
		return file.Content, false
	}
	return out, true
}

// safeEmbed turns panics and empty results from an embedder into an *EmbedError.
func safeEmbed(ctx context.Context, embedder Embedder, data []byte, desc TypeDescriptor, meta Metadata) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = NewEmbedError(desc.Strategy, desc.MimeType, "embed", fmt.Errorf("embedder panic: %v", r))
		}
	}()

	out, err = embedder.Embed(ctx, data, desc.MimeType, meta)
	if err != nil {
		var embedErr *EmbedError
		if !errors.As(err, &embedErr) {
			err = NewEmbedError(desc.Strategy, desc.MimeType, "embed", err)
		}
		return nil, err
	}
	if len(out) == 0 && len(data) > 0 {
		return nil, NewEmbedError(desc.Strategy, desc.MimeType, "embed", errors.New("embedder returned no data"))
	}
	return out, nil
}
