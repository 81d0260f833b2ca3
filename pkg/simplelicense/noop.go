package simplelicense

import (
	"context"
)

// NoopEventSink is a no-operation implementation of EventSink
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// Packaged does nothing and returns nil
func (n *NoopEventSink) Packaged(ctx context.Context, download *PackagedDownload) error {
	return nil
}

// EmbedFallback does nothing and returns nil
func (n *NoopEventSink) EmbedFallback(ctx context.Context, file FileInput, cause error) error {
	return nil
}

// NoopEmbedder is the NoEmbed strategy: it returns the input unchanged
type NoopEmbedder struct{}

// NewNoopEmbedder creates a pass-through embedder
func NewNoopEmbedder() Embedder {
	return &NoopEmbedder{}
}

// Embed returns data as is
func (n *NoopEmbedder) Embed(ctx context.Context, data []byte, mimeType string, meta Metadata) ([]byte, error) {
	return data, nil
}
