package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pathway/internal/engagement"
	"github.com/felixgeelhaar/pathway/internal/learner"
	"github.com/felixgeelhaar/pathway/internal/memory"
	"github.com/felixgeelhaar/pathway/internal/struggle"
)

// LearnerRepository persists learner state as JSON documents in SQLite,
// one row per learner per concern.
type LearnerRepository struct {
	db *DB
}

// NewLearnerRepository creates a SQLite-backed learner repository.
func NewLearnerRepository(db *DB) *LearnerRepository {
	return &LearnerRepository{db: db}
}

var _ learner.Repository = (*LearnerRepository)(nil)

// LoadLearner reads a learner profile record. Wrong-typed fields are
// tolerated so the profile layer can repair them with defaults.
func (r *LearnerRepository) LoadLearner(ctx context.Context, id string) (*learner.StoredLearner, error) {
	var rec learner.StoredLearner
	if err := r.loadDoc(ctx, "learners", "id", id, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveLearner upserts a learner profile record.
func (r *LearnerRepository) SaveLearner(ctx context.Context, rec *learner.StoredLearner) error {
	return r.saveDoc(ctx, "learners", "id", rec.ID, rec, rec.UpdatedAt)
}

// LoadDeck reads a learner's memory deck record.
func (r *LearnerRepository) LoadDeck(ctx context.Context, id string) (*memory.StoredDeck, error) {
	var rec memory.StoredDeck
	if err := r.loadDoc(ctx, "decks", "learner_id", id, &rec); err != nil {
		return nil, err
	}
	if rec.LearnerID == "" {
		rec.LearnerID = id
	}
	return &rec, nil
}

// SaveDeck upserts a learner's memory deck record.
func (r *LearnerRepository) SaveDeck(ctx context.Context, rec *memory.StoredDeck) error {
	return r.saveDoc(ctx, "decks", "learner_id", rec.LearnerID, rec, rec.UpdatedAt)
}

// LoadStruggle reads a learner's struggle tracker record.
func (r *LearnerRepository) LoadStruggle(ctx context.Context, id string) (*struggle.StoredTracker, error) {
	var rec struggle.StoredTracker
	if err := r.loadDoc(ctx, "struggle_trackers", "learner_id", id, &rec); err != nil {
		return nil, err
	}
	if rec.LearnerID == "" {
		rec.LearnerID = id
	}
	return &rec, nil
}

// SaveStruggle upserts a learner's struggle tracker record.
func (r *LearnerRepository) SaveStruggle(ctx context.Context, rec *struggle.StoredTracker) error {
	return r.saveDoc(ctx, "struggle_trackers", "learner_id", rec.LearnerID, rec, rec.UpdatedAt)
}

// LoadEngagement reads a learner's engagement tracker record.
func (r *LearnerRepository) LoadEngagement(ctx context.Context, id string) (*engagement.StoredTracker, error) {
	var rec engagement.StoredTracker
	if err := r.loadDoc(ctx, "engagement_trackers", "learner_id", id, &rec); err != nil {
		return nil, err
	}
	if rec.LearnerID == "" {
		rec.LearnerID = id
	}
	return &rec, nil
}

// SaveEngagement upserts a learner's engagement tracker record.
func (r *LearnerRepository) SaveEngagement(ctx context.Context, rec *engagement.StoredTracker) error {
	return r.saveDoc(ctx, "engagement_trackers", "learner_id", rec.LearnerID, rec, rec.UpdatedAt)
}

// ListLearners returns every learner id with a stored profile, most
// recently active first.
func (r *LearnerRepository) ListLearners(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM learners ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan learner id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *LearnerRepository) saveDoc(ctx context.Context, table, keyColumn, id string, rec interface{}, updatedAt time.Time) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal %s doc: %w", table, err)
	}
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, doc, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(%s) DO UPDATE SET
			doc=excluded.doc,
			updated_at=excluded.updated_at`, table, keyColumn, keyColumn)
	if _, err := r.db.ExecContext(ctx, query, id, string(doc), updatedAt); err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}

func (r *LearnerRepository) loadDoc(ctx context.Context, table, keyColumn, id string, rec interface{}) error {
	query := fmt.Sprintf("SELECT doc FROM %s WHERE %s = ?", table, keyColumn)
	var doc string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s/%s: %w", table, id, learner.ErrNotFound)
		}
		return fmt.Errorf("query %s: %w", table, err)
	}

	if err := json.Unmarshal([]byte(doc), rec); err != nil {
		if tolerated := learner.TolerateTypeError(err); tolerated != nil {
			return fmt.Errorf("unmarshal %s doc: %w", table, tolerated)
		}
	}
	return nil
}
