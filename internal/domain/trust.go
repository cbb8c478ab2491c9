package domain

import (
	"time"

	"github.com/google/uuid"
)

type TrustScore struct {
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	CommunityID uuid.UUID `json:"community_id" db:"community_id"`
	Score       float64   `json:"score" db:"score"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// trustThresholds[i] is the minimum score for level i.
var trustThresholds = []float64{0, 10, 50, 100, 250, 500}

// TrustLevel discretizes a raw score. Negative scores are level 0.
func TrustLevel(score float64) int {
	level := 0
	for i, min := range trustThresholds {
		if score >= min {
			level = i
		}
	}
	return level
}

type RecomputeTrustInput struct {
	UserID      uuid.UUID `json:"user_id"`
	CommunityID uuid.UUID `json:"community_id"`
	Score       float64   `json:"score"`
}
