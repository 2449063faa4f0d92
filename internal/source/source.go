// Package source defines the provider adapters that produce raw candidate
// records for a search. Each adapter is independent and may fail without
// failing the pipeline.
package source

import (
	"context"

	"github.com/sells-group/leadscout/internal/model"
)

// Adapter lists candidate businesses for a search session. Implementations
// wrap one external provider; transport errors, empty results, and
// malformed payloads are all surfaced as an error the pipeline logs and
// ignores — "this source produced nothing usable".
type Adapter interface {
	Search(ctx context.Context, session *model.SearchSession) ([]model.Candidate, error)
	Name() string
}
