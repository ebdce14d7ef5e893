package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

// ActivityRepository has no update or single delete on purpose: feed entries
// are immutable and only disappear with their owning user.
type ActivityRepository interface {
	Create(activity *model.Activity) error
	ByUser(userID string, limit int) ([]*model.Activity, error)
	Feed(userID string, limit int) ([]*model.Activity, error)
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *model.Activity) error {
	query := `INSERT INTO activities (id, user_id, reference_id, type, data, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		activity.ID,
		activity.UserID,
		activity.ReferenceID,
		activity.Type,
		activity.Data,
		activity.CreatedAt,
	)
	return err
}

func (r *activityRepository) ByUser(userID string, limit int) ([]*model.Activity, error) {
	var activities []*model.Activity
	query := `SELECT * FROM activities WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	err := r.db.Select(&activities, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return activities, nil
}

// Feed returns the user's own activities plus those of everyone they follow,
// newest first.
func (r *activityRepository) Feed(userID string, limit int) ([]*model.Activity, error) {
	var activities []*model.Activity
	query := `SELECT * FROM activities
	          WHERE user_id = $1
	             OR user_id IN (SELECT following_id FROM user_relations WHERE follower_id = $1)
	          ORDER BY created_at DESC
	          LIMIT $2`

	err := r.db.Select(&activities, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return activities, nil
}
