// Package pipeline turns object-finalize events into derivative sets: it
// classifies each event, downloads eligible originals once and fans out
// resize/encode/store per configured size. Safe under at-least-once event
// delivery: every write overwrites in place.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"

	"cms-backend/internal/domain"

	"github.com/wb-go/wbf/zlog"
	_ "golang.org/x/image/webp"
)

// Classification is the decision taken for one finalize event.
type Classification int

const (
	// Rejected: already a derivative (recursion guard), not an image, or
	// outside the images/ namespaces. Not an error, a no-op.
	Rejected Classification = iota
	// Eligible: an editor-namespace original, derivatives get generated.
	Eligible
	// SkippedOriginal: an original-namespace upload; generation for these
	// is reserved for later, the event completes trivially.
	SkippedOriginal
)

// Classify decides what to do with a finalize event for object key K.
// Derivative keys are rejected first so derivative writes can never
// re-trigger generation.
func Classify(event domain.StorageEvent) Classification {
	if domain.IsDerivativeKey(event.Key) {
		return Rejected
	}
	if !strings.HasPrefix(event.ContentType, "image/") {
		return Rejected
	}
	if strings.HasPrefix(event.Key, domain.ImagesPrefix+string(domain.NamespaceEditor)+"/") {
		return Eligible
	}
	if strings.HasPrefix(event.Key, domain.ImagesPrefix+string(domain.NamespaceOriginal)+"/") {
		return SkippedOriginal
	}
	return Rejected
}

type Pipeline struct {
	objects objectDownloader
	store   derivativeWriter
	logger  *zlog.Zerolog
}

func NewPipeline(objects objectDownloader, store derivativeWriter, logger *zlog.Zerolog) *Pipeline {
	return &Pipeline{
		objects: objects,
		store:   store,
		logger:  logger,
	}
}

// Handle processes one finalize event. A non-nil error is only returned
// when the initial download fails: that aborts the run and leaves the event
// uncommitted so redelivery can retry it. Everything after the download is
// best-effort per size; partial completion is a transient state that a
// redelivered event heals.
func (p *Pipeline) Handle(ctx context.Context, event domain.StorageEvent) error {
	switch Classify(event) {
	case Rejected:
		p.logger.Debug().Str("key", event.Key).Str("content_type", event.ContentType).Msg("Event not eligible for derivative generation")
		return nil
	case SkippedOriginal:
		p.logger.Debug().Str("key", event.Key).Msg("Original-namespace upload, derivative generation reserved")
		return nil
	}

	basefilename := strings.TrimPrefix(event.Key, domain.ImagesPrefix+string(domain.NamespaceEditor)+"/")

	data, err := p.objects.GetObject(ctx, event.Key)
	if err != nil {
		p.logger.Error().Err(err).Str("key", event.Key).Msg("Failed to download original")
		return fmt.Errorf("failed to download original %s: %w", event.Key, err)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// Undecodable bytes stay undecodable on redelivery; drop the event.
		p.logger.Error().Err(err).Str("key", event.Key).Msg("Failed to decode original")
		return nil
	}

	p.logger.Info().
		Str("key", event.Key).
		Str("format", format).
		Int("sizes", len(domain.DerivativeSizes)).
		Msg("Generating derivatives")

	var wg sync.WaitGroup
	for _, size := range domain.DerivativeSizes {
		wg.Add(1)
		go func(size domain.DerivativeSize) {
			defer wg.Done()
			p.generateSize(ctx, src, size, basefilename)
		}(size)
	}
	wg.Wait()

	return nil
}

func (p *Pipeline) generateSize(ctx context.Context, src image.Image, size domain.DerivativeSize, basefilename string) {
	encoded, err := resizeAndEncode(src, size.Width)
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("basefilename", basefilename).
			Str("size", size.Name).
			Msg("Failed to encode derivative")
		return
	}

	if err := p.store.WriteDerivative(ctx, domain.NamespaceEditor, size.Name, basefilename, encoded); err != nil {
		p.logger.Error().
			Err(err).
			Str("basefilename", basefilename).
			Str("size", size.Name).
			Msg("Failed to store derivative")
		return
	}

	p.logger.Debug().
		Str("basefilename", basefilename).
		Str("size", size.Name).
		Int("bytes", len(encoded)).
		Msg("Derivative stored")
}
