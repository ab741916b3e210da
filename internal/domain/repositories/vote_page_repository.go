package repositories

import (
	"context"

	"github.com/rafabene/votex-backend/internal/domain/entities"
)

// VotePageRepository define a interface para persistência de páginas de votação
type VotePageRepository interface {
	Create(ctx context.Context, page *entities.VotePage) error
	Update(ctx context.Context, page *entities.VotePage) error
	FindByID(ctx context.Context, id string) (*entities.VotePage, error)
	ListAccessibleTo(ctx context.Context, userID string) ([]*entities.VotePageSummary, error)
	Delete(ctx context.Context, id string) error
}
