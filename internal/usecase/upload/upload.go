// Package upload stores editor image originals and publishes the finalize
// event that triggers derivative generation.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cms-backend/internal/domain"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type objectStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
}

type eventProducer interface {
	Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error
}

type Result struct {
	BaseFileName string
	Key          string
	PublicURL    string
}

type Usecase struct {
	objects       objectStore
	producer      eventProducer
	logger        *zlog.Zerolog
	retries       retry.Strategy
	publicBaseURL string
}

func NewUsecase(objects objectStore, producer eventProducer, logger *zlog.Zerolog, retries retry.Strategy, publicBaseURL string) *Usecase {
	return &Usecase{
		objects:       objects,
		producer:      producer,
		logger:        logger,
		retries:       retries,
		publicBaseURL: publicBaseURL,
	}
}

// UploadOriginal writes the original object and publishes its finalize
// event. The basefilename is timestamp-prefixed so it stays stable and
// collision-resistant: it is the join key between the original and every
// derivative. A failed event publish does not fail the upload; the gap is
// tolerated until the event can be replayed.
func (u *Usecase) UploadOriginal(ctx context.Context, ns domain.Namespace, filename, contentType string, data []byte) (*Result, error) {
	basefilename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(filename))
	key := domain.OriginalKey(ns, basefilename)

	if err := u.objects.PutObject(ctx, key, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to store original %s: %w", key, err)
	}

	u.publishFinalizeEvent(ctx, key, contentType)

	u.logger.Info().
		Str("key", key).
		Str("namespace", string(ns)).
		Int("bytes", len(data)).
		Msg("Original uploaded")

	return &Result{
		BaseFileName: basefilename,
		Key:          key,
		PublicURL:    u.publicBaseURL + url.PathEscape(key),
	}, nil
}

func (u *Usecase) publishFinalizeEvent(ctx context.Context, key, contentType string) {
	event := domain.StorageEvent{Key: key, ContentType: contentType}

	payload, err := json.Marshal(event)
	if err != nil {
		u.logger.Error().Err(err).Str("key", key).Msg("Failed to marshal finalize event")
		return
	}

	if err := u.producer.Send(ctx, u.retries, []byte(key), payload); err != nil {
		u.logger.Error().Err(err).Str("key", key).Msg("Failed to publish finalize event")
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	name = unsafeFilenameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "upload"
	}
	return name
}
