package entities

import (
	"errors"
	"time"
)

// Comment é um comentário livre de um usuário
type Comment struct {
	ID          string
	OwnerUserID string
	Content     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate valida regras de negócio da entidade Comment
func (c *Comment) Validate() error {
	if c.ID == "" {
		return errors.New("comment id is required")
	}
	if c.OwnerUserID == "" {
		return errors.New("owner is required")
	}
	if c.Content == "" {
		return errors.New("content is required")
	}
	return nil
}
