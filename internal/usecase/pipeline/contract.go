package pipeline

import (
	"context"

	"cms-backend/internal/domain"
)

type objectDownloader interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

type derivativeWriter interface {
	WriteDerivative(ctx context.Context, ns domain.Namespace, size, basefilename string, data []byte) error
}
