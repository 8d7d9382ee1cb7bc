package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"lostandfound-backend/internal/models"
)

// ErrDuplicateMatch is returned when a match for the same (lost, found)
// pair already exists. The table carries a uniqueness constraint on the
// pair, so concurrent report creations cannot materialize it twice.
var ErrDuplicateMatch = errors.New("match already exists for this pair")

const uniqueViolation = "23505"

type MatchRepository interface {
	Create(match *models.Match) error
	Exists(lostItemID, foundItemID int64) (bool, error)
	GetByID(id int64) (*models.Match, error)
	ListForUser(userID int64) ([]*models.Match, error)
	UpdateStatus(id int64, status string) error
	CompleteForLostItem(lostItemID int64) (int64, error)
	CompleteForFoundItem(foundItemID int64) (int64, error)
}

type matchRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMatchRepository(db *sqlx.DB, logger *zap.Logger) MatchRepository {
	return &matchRepository{db: db, logger: logger}
}

func (r *matchRepository) Create(match *models.Match) error {
	query := `INSERT INTO matches (lost_item_id, found_item_id, match_type, confidence_score, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err := r.db.QueryRowx(query, match.LostItemID, match.FoundItemID, match.MatchType,
		match.ConfidenceScore, match.Status).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicateMatch
		}
		return err
	}
	return nil
}

func (r *matchRepository) Exists(lostItemID, foundItemID int64) (bool, error) {
	var exists bool
	err := r.db.Get(&exists,
		`SELECT EXISTS (SELECT 1 FROM matches WHERE lost_item_id = $1 AND found_item_id = $2)`,
		lostItemID, foundItemID)
	return exists, err
}

func (r *matchRepository) GetByID(id int64) (*models.Match, error) {
	var match models.Match
	err := r.db.Get(&match,
		`SELECT id, lost_item_id, found_item_id, match_type, confidence_score, status, created_at, updated_at
		 FROM matches WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// ListForUser returns matches where the user posted either side.
func (r *matchRepository) ListForUser(userID int64) ([]*models.Match, error) {
	var matches []*models.Match
	err := r.db.Select(&matches,
		`SELECT m.id, m.lost_item_id, m.found_item_id, m.match_type, m.confidence_score, m.status,
		        m.created_at, m.updated_at
		 FROM matches m
		 JOIN lost_items l ON l.id = m.lost_item_id
		 JOIN found_items f ON f.id = m.found_item_id
		 WHERE l.posted_by = $1 OR f.posted_by = $1
		 ORDER BY m.created_at DESC`, userID)
	return matches, err
}

func (r *matchRepository) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec(`UPDATE matches SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

// CompleteForLostItem marks every pending or accepted match of a lost
// report as completed, used when the owner resolves the report.
func (r *matchRepository) CompleteForLostItem(lostItemID int64) (int64, error) {
	res, err := r.db.Exec(
		`UPDATE matches SET status = $1, updated_at = NOW()
		 WHERE lost_item_id = $2 AND status IN ($3, $4)`,
		models.MatchStatusCompleted, lostItemID, models.MatchStatusPending, models.MatchStatusAccepted)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CompleteForFoundItem is the found-side counterpart of CompleteForLostItem.
func (r *matchRepository) CompleteForFoundItem(foundItemID int64) (int64, error) {
	res, err := r.db.Exec(
		`UPDATE matches SET status = $1, updated_at = NOW()
		 WHERE found_item_id = $2 AND status IN ($3, $4)`,
		models.MatchStatusCompleted, foundItemID, models.MatchStatusPending, models.MatchStatusAccepted)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
