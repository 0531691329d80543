package ports

import (
	"context"

	"scadaval/domain/deviation"
)

// DeviationEnginePort compares two aligned columns
type DeviationEnginePort interface {
	Compare(ctx context.Context, a, b []deviation.Value) (*deviation.Result, error)
}
