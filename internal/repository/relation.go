package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/momentumhq/momentum/internal/model"
)

var (
	ErrRelationNotFound  = errors.New("relation not found")
	ErrDuplicateRelation = errors.New("relation already exists")
)

type RelationRepository interface {
	Create(relation *model.UserRelation) error
	Delete(followerID, followingID string) error
	Exists(followerID, followingID string) (bool, error)
	Followers(userID string) ([]*model.User, error)
	Following(userID string) ([]*model.User, error)
}

type relationRepository struct {
	db *sqlx.DB
}

func NewRelationRepository(db *sqlx.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) Create(relation *model.UserRelation) error {
	query := `INSERT INTO user_relations (id, follower_id, following_id, created_at)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query,
		relation.ID,
		relation.FollowerID,
		relation.FollowingID,
		relation.CreatedAt,
	)
	if err != nil {
		// Backed by UNIQUE(follower_id, following_id)
		if isUniqueViolation(err) {
			return ErrDuplicateRelation
		}
		return err
	}

	return nil
}

func (r *relationRepository) Delete(followerID, followingID string) error {
	query := `DELETE FROM user_relations WHERE follower_id = $1 AND following_id = $2`

	result, err := r.db.Exec(query, followerID, followingID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRelationNotFound
	}

	return nil
}

func (r *relationRepository) Exists(followerID, followingID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM user_relations WHERE follower_id = $1 AND following_id = $2`

	err := r.db.QueryRow(query, followerID, followingID).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *relationRepository) Followers(userID string) ([]*model.User, error) {
	var users []*model.User
	query := `SELECT u.* FROM users u
	          JOIN user_relations ur ON ur.follower_id = u.id
	          WHERE ur.following_id = $1
	          ORDER BY ur.created_at DESC`

	err := r.db.Select(&users, query, userID)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *relationRepository) Following(userID string) ([]*model.User, error) {
	var users []*model.User
	query := `SELECT u.* FROM users u
	          JOIN user_relations ur ON ur.following_id = u.id
	          WHERE ur.follower_id = $1
	          ORDER BY ur.created_at DESC`

	err := r.db.Select(&users, query, userID)
	if err != nil {
		return nil, err
	}

	return users, nil
}
