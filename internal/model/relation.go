package model

import (
	"time"
)

// UserRelation is a directed "follows" edge. The (follower_id, following_id)
// pair is unique and a user cannot follow themselves.
type UserRelation struct {
	ID          string    `db:"id" json:"id"`
	FollowerID  string    `db:"follower_id" json:"followerId"`
	FollowingID string    `db:"following_id" json:"followingId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
