package repositories

import (
	"context"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
)

// VoteRepository define a interface para persistência de votos.
//
// Create deve retornar um erro que satisfaça errors.Is(err, ErrDuplicateVote)
// quando o par (post, eleitor) já tiver um voto.
type VoteRepository interface {
	Create(ctx context.Context, vote *entities.Vote) error
	UpdateType(ctx context.Context, id string, voteType valueobjects.VoteType) error
	FindByID(ctx context.Context, id string) (*entities.Vote, error)
	FindByPostAndVoter(ctx context.Context, postID, voterUserID string) (*entities.Vote, error)
	ListByPost(ctx context.Context, postID string) ([]*entities.Vote, error)
	ListByPosts(ctx context.Context, postIDs []string) ([]*entities.Vote, error)
	ListByVotePage(ctx context.Context, votePageID string) ([]*entities.Vote, error)
	Tally(ctx context.Context, postID string) (entities.Tally, error)
	Delete(ctx context.Context, id string) error
}
