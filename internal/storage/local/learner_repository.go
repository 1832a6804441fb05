package local

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/pathway/internal/engagement"
	"github.com/felixgeelhaar/pathway/internal/learner"
	"github.com/felixgeelhaar/pathway/internal/memory"
	"github.com/felixgeelhaar/pathway/internal/struggle"
)

const (
	collectionLearners   = "learners"
	collectionDecks      = "decks"
	collectionStruggle   = "struggle"
	collectionEngagement = "engagement"
)

// LearnerRepository persists learner state as JSON documents on disk,
// one file per learner per concern.
type LearnerRepository struct {
	store *Store
}

// NewLearnerRepository creates a repository rooted at basePath.
func NewLearnerRepository(basePath string) (*LearnerRepository, error) {
	store, err := NewStore(basePath)
	if err != nil {
		return nil, err
	}
	return &LearnerRepository{store: store}, nil
}

var _ learner.Repository = (*LearnerRepository)(nil)

// LoadLearner reads a learner profile record. A record with fields of the
// wrong JSON type is returned partially decoded; the profile layer repairs
// the gaps with defaults.
func (r *LearnerRepository) LoadLearner(ctx context.Context, id string) (*learner.StoredLearner, error) {
	var rec learner.StoredLearner
	if err := r.load(collectionLearners, id, &rec); err != nil {
		if tolerated := learner.TolerateTypeError(err); tolerated != nil {
			return nil, tolerated
		}
	}
	return &rec, nil
}

// SaveLearner writes a learner profile record.
func (r *LearnerRepository) SaveLearner(ctx context.Context, rec *learner.StoredLearner) error {
	return r.store.Save(collectionLearners, rec.ID, rec)
}

// LoadDeck reads a learner's memory deck record.
func (r *LearnerRepository) LoadDeck(ctx context.Context, id string) (*memory.StoredDeck, error) {
	var rec memory.StoredDeck
	if err := r.load(collectionDecks, id, &rec); err != nil {
		if tolerated := learner.TolerateTypeError(err); tolerated != nil {
			return nil, tolerated
		}
	}
	if rec.LearnerID == "" {
		rec.LearnerID = id
	}
	return &rec, nil
}

// SaveDeck writes a learner's memory deck record.
func (r *LearnerRepository) SaveDeck(ctx context.Context, rec *memory.StoredDeck) error {
	return r.store.Save(collectionDecks, rec.LearnerID, rec)
}

// LoadStruggle reads a learner's struggle tracker record.
func (r *LearnerRepository) LoadStruggle(ctx context.Context, id string) (*struggle.StoredTracker, error) {
	var rec struggle.StoredTracker
	if err := r.load(collectionStruggle, id, &rec); err != nil {
		if tolerated := learner.TolerateTypeError(err); tolerated != nil {
			return nil, tolerated
		}
	}
	if rec.LearnerID == "" {
		rec.LearnerID = id
	}
	return &rec, nil
}

// SaveStruggle writes a learner's struggle tracker record.
func (r *LearnerRepository) SaveStruggle(ctx context.Context, rec *struggle.StoredTracker) error {
	return r.store.Save(collectionStruggle, rec.LearnerID, rec)
}

// LoadEngagement reads a learner's engagement tracker record.
func (r *LearnerRepository) LoadEngagement(ctx context.Context, id string) (*engagement.StoredTracker, error) {
	var rec engagement.StoredTracker
	if err := r.load(collectionEngagement, id, &rec); err != nil {
		if tolerated := learner.TolerateTypeError(err); tolerated != nil {
			return nil, tolerated
		}
	}
	if rec.LearnerID == "" {
		rec.LearnerID = id
	}
	return &rec, nil
}

// SaveEngagement writes a learner's engagement tracker record.
func (r *LearnerRepository) SaveEngagement(ctx context.Context, rec *engagement.StoredTracker) error {
	return r.store.Save(collectionEngagement, rec.LearnerID, rec)
}

// ListLearners returns every learner id with a stored profile.
func (r *LearnerRepository) ListLearners(ctx context.Context) ([]string, error) {
	return r.store.List(collectionLearners)
}

func (r *LearnerRepository) load(collection, id string, data interface{}) error {
	if err := r.store.Load(collection, id, data); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%s/%s: %w", collection, id, learner.ErrNotFound)
		}
		return err
	}
	return nil
}
