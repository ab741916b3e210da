package repositories

import (
	"context"

	"github.com/rafabene/votex-backend/internal/domain/entities"
)

// CommentRepository define a interface para persistência de comentários
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) error
	Update(ctx context.Context, comment *entities.Comment) error
	FindByID(ctx context.Context, id string) (*entities.Comment, error)
	Delete(ctx context.Context, id string) error
}
