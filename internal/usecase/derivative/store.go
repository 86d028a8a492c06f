// Package derivative owns the storage layout of an image's size variants:
// writing derivatives idempotently and removing a basefilename's full
// variant set as one unit.
package derivative

import (
	"context"
	"errors"

	"cms-backend/internal/domain"
	repofile "cms-backend/internal/repository/file"

	"github.com/wb-go/wbf/zlog"
)

type objectStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	RemoveObject(ctx context.Context, key string) error
}

// CleanupReport is the advisory outcome of a variant-set deletion. Missing
// objects are expected (partial pipeline completion, already deleted,
// legacy layout mismatch) and are not failures. Callers log the report;
// they never treat it as an error.
type CleanupReport struct {
	Deleted int
	Missing int
	Failed  int
}

func (r CleanupReport) Merge(other CleanupReport) CleanupReport {
	return CleanupReport{
		Deleted: r.Deleted + other.Deleted,
		Missing: r.Missing + other.Missing,
		Failed:  r.Failed + other.Failed,
	}
}

type Store struct {
	objects objectStore
	logger  *zlog.Zerolog
}

func NewStore(objects objectStore, logger *zlog.Zerolog) *Store {
	return &Store{
		objects: objects,
		logger:  logger,
	}
}

// WriteDerivative overwrites the derivative object unconditionally, keeping
// redelivered pipeline runs idempotent.
func (s *Store) WriteDerivative(ctx context.Context, ns domain.Namespace, size, basefilename string, data []byte) error {
	key := domain.DerivativeKey(ns, size, basefilename)
	return s.objects.PutObject(ctx, key, data, domain.DerivativeContentType)
}

// DeleteAllVariants removes every object a basefilename may occupy, across
// all namespaces, sizes, originals and the legacy layout. The sweep is
// deliberately wider than any single namespace: a resolved URL does not pin
// which namespace or layout its object lives in, and missing keys cost
// nothing. Best-effort: a missing key is success, any other failure is
// logged with the acting context and swallowed. Deletion is advisory
// cleanup, never required for correctness of the primary write.
func (s *Store) DeleteAllVariants(ctx context.Context, basefilename, actor string) CleanupReport {
	var report CleanupReport

	for _, key := range domain.VariantKeys(basefilename) {
		err := s.objects.RemoveObject(ctx, key)
		switch {
		case err == nil:
			report.Deleted++
		case errors.Is(err, repofile.ErrObjectNotFound):
			report.Missing++
		default:
			report.Failed++
			s.logger.Warn().
				Err(err).
				Str("actor", actor).
				Str("key", key).
				Msg("Failed to delete image variant")
		}
	}

	s.logger.Debug().
		Str("actor", actor).
		Str("basefilename", basefilename).
		Int("deleted", report.Deleted).
		Int("missing", report.Missing).
		Int("failed", report.Failed).
		Msg("Variant set cleanup finished")

	return report
}
