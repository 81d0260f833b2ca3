package simplelicense

import (
	"context"
	"log/slog"
)

// LogEventSink writes packaging events to a structured logger
type LogEventSink struct {
	logger *slog.Logger
}

// NewLogEventSink creates an event sink logging at info level
func NewLogEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEventSink{logger: logger}
}

func (s *LogEventSink) Packaged(ctx context.Context, download *PackagedDownload) error {
	s.logger.InfoContext(ctx, "Packaged download",
		"request_id", download.RequestID.String(),
		"file", download.FileName,
		"archive", download.ArchiveName,
		"mime_type", download.Descriptor.MimeType,
		"embedded", download.Embedded,
		"size_bytes", len(download.Archive))
	return nil
}

func (s *LogEventSink) EmbedFallback(ctx context.Context, file FileInput, cause error) error {
	s.logger.InfoContext(ctx, "Embedding skipped",
		"file", file.Name,
		"size_bytes", len(file.Content),
		"err", cause)
	return nil
}
