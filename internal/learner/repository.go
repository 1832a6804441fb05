package learner

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/pathway/internal/engagement"
	"github.com/felixgeelhaar/pathway/internal/memory"
	"github.com/felixgeelhaar/pathway/internal/struggle"
)

// ErrNotFound is returned when a learner has no stored state. Callers treat
// it as "new learner", never as a failure.
var ErrNotFound = errors.New("learner not found")

// Repository persists the four per-learner documents. The JSON file store,
// the SQLite store, and the Postgres store all implement this.
type Repository interface {
	LoadLearner(ctx context.Context, id string) (*StoredLearner, error)
	SaveLearner(ctx context.Context, rec *StoredLearner) error

	LoadDeck(ctx context.Context, id string) (*memory.StoredDeck, error)
	SaveDeck(ctx context.Context, rec *memory.StoredDeck) error

	LoadStruggle(ctx context.Context, id string) (*struggle.StoredTracker, error)
	SaveStruggle(ctx context.Context, rec *struggle.StoredTracker) error

	LoadEngagement(ctx context.Context, id string) (*engagement.StoredTracker, error)
	SaveEngagement(ctx context.Context, rec *engagement.StoredTracker) error

	ListLearners(ctx context.Context) ([]string, error)
}
