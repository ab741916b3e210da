package repositories

import (
	"context"

	"github.com/rafabene/votex-backend/internal/domain/entities"
)

// PostRepository define a interface para persistência de posts
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	Update(ctx context.Context, post *entities.Post) error
	FindByID(ctx context.Context, id string) (*entities.Post, error)
	ListByVotePage(ctx context.Context, votePageID string) ([]*entities.Post, error)
	Delete(ctx context.Context, id string) error
}
