package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	ResourceID uuid.UUID  `json:"resource_id" db:"resource_id"`
	AuthorID   uuid.UUID  `json:"author_id" db:"author_id"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty" db:"parent_id"`
	Content    string     `json:"content" db:"content"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

type CreateCommentInput struct {
	ParentID *uuid.UUID `json:"parent_id"`
	Content  string     `json:"content"`
}

func (in CreateCommentInput) Validate() error {
	if in.Content == "" || len(in.Content) > 2000 {
		return ErrInvalidInput
	}
	return nil
}
