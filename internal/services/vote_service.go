package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
)

// VoteService agrega votos garantindo um voto por usuário por post
type VoteService struct {
	voteRepo     repositories.VoteRepository
	postRepo     repositories.PostRepository
	votePageRepo repositories.VotePageRepository
	assembler    *postAssembler
	uow          ports.UnitOfWork
	authz        *Authorizer
	events       ports.EventPublisher
	logger       ports.Logger
}

// NewVoteService cria um novo VoteService
func NewVoteService(
	voteRepo repositories.VoteRepository,
	postRepo repositories.PostRepository,
	votePageRepo repositories.VotePageRepository,
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	authz *Authorizer,
	events ports.EventPublisher,
	logger ports.Logger,
) *VoteService {
	return &VoteService{
		voteRepo:     voteRepo,
		postRepo:     postRepo,
		votePageRepo: votePageRepo,
		assembler:    &postAssembler{userRepo: userRepo, voteRepo: voteRepo},
		uow:          uow,
		authz:        authz,
		events:       events,
		logger:       logger,
	}
}

// CastVoteInput representa um voto lançado por um usuário
type CastVoteInput struct {
	PostID      string
	VoterUserID string
	VotePageID  string // opcional; quando informado deve ser a página do post
	Type        valueobjects.VoteType
}

// CastResult descreve o efeito do voto e a contagem atualizada do post.
// Vote é o estado anterior quando Outcome == CastRemoved.
type CastResult struct {
	Vote    *entities.Vote
	Outcome entities.CastOutcome
	Tally   entities.Tally
}

// Cast lança, troca ou retira (mesmo tipo) o voto do usuário no post
func (s *VoteService) Cast(ctx context.Context, input CastVoteInput) (*CastResult, error) {
	if _, err := valueobjects.NewVoteType(int(input.Type)); err != nil {
		return nil, err
	}

	post, err := s.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domainerrors.ErrPostNotFound
	}

	if input.VotePageID != "" && input.VotePageID != post.VotePageID {
		return nil, domainerrors.ErrVotePageMismatch
	}

	page, err := s.votePageRepo.FindByID(ctx, post.VotePageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, domainerrors.ErrVotePageNotFound
	}

	if err := s.authz.CanViewVotePage(input.VoterUserID, page); err != nil {
		return nil, err
	}

	var result *CastResult
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		r, err := s.castOnce(txCtx, post, input.VoterUserID, input.Type)
		result = r
		return err
	})

	// Outro request inseriu o voto entre a leitura e o insert.
	// A transação anterior foi abortada, então a nova relê o vencedor.
	if errors.Is(err, repositories.ErrDuplicateVote) {
		s.logger.Warn("concurrent vote detected, retrying as update",
			"post_id", post.ID, "voter_user_id", input.VoterUserID)

		err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
			r, err := s.resolveConflict(txCtx, post, input.VoterUserID, input.Type)
			result = r
			return err
		})
	}
	if err != nil {
		return nil, err
	}

	tally, err := s.voteRepo.Tally(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	result.Tally = tally

	s.logger.Info("vote cast",
		"post_id", post.ID,
		"voter_user_id", input.VoterUserID,
		"outcome", string(result.Outcome),
	)

	s.events.Publish(ports.Event{
		Type:       ports.EventVoteCast,
		VotePageID: post.VotePageID,
		Payload: map[string]any{
			"postId":      post.ID,
			"voterUserId": input.VoterUserID,
			"outcome":     result.Outcome,
			"upvotes":     tally.Upvotes,
			"downvotes":   tally.Downvotes,
		},
	})

	return result, nil
}

func (s *VoteService) castOnce(ctx context.Context, post *entities.Post, voterUserID string, voteType valueobjects.VoteType) (*CastResult, error) {
	existing, err := s.voteRepo.FindByPostAndVoter(ctx, post.ID, voterUserID)
	if err != nil {
		return nil, err
	}

	switch entities.Decide(existing, voteType) {
	case entities.CastRemoved:
		if err := s.voteRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		return &CastResult{Vote: existing, Outcome: entities.CastRemoved}, nil

	case entities.CastUpdated:
		return s.changeType(ctx, existing, voteType)

	default:
		now := time.Now().UTC()
		vote := &entities.Vote{
			ID:          uuid.NewString(),
			PostID:      post.ID,
			VoterUserID: voterUserID,
			VotePageID:  post.VotePageID,
			Type:        voteType,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.voteRepo.Create(ctx, vote); err != nil {
			return nil, err
		}
		return &CastResult{Vote: vote, Outcome: entities.CastCreated}, nil
	}
}

// resolveConflict aplica o voto sobre o registro que venceu a corrida.
// Se o vencedor já tem o tipo pedido, nada muda.
func (s *VoteService) resolveConflict(ctx context.Context, post *entities.Post, voterUserID string, voteType valueobjects.VoteType) (*CastResult, error) {
	winner, err := s.voteRepo.FindByPostAndVoter(ctx, post.ID, voterUserID)
	if err != nil {
		return nil, err
	}

	if winner == nil {
		// O vencedor foi retirado nesse meio tempo
		result, err := s.castOnce(ctx, post, voterUserID, voteType)
		if errors.Is(err, repositories.ErrDuplicateVote) {
			return nil, fmt.Errorf("vote on post %s could not be applied after retry", post.ID)
		}
		return result, err
	}

	if winner.Type == voteType {
		return &CastResult{Vote: winner, Outcome: entities.CastUpdated}, nil
	}
	return s.changeType(ctx, winner, voteType)
}

func (s *VoteService) changeType(ctx context.Context, vote *entities.Vote, voteType valueobjects.VoteType) (*CastResult, error) {
	if err := s.voteRepo.UpdateType(ctx, vote.ID, voteType); err != nil {
		return nil, err
	}
	vote.Type = voteType
	vote.UpdatedAt = time.Now().UTC()
	return &CastResult{Vote: vote, Outcome: entities.CastUpdated}, nil
}

// Tally conta os votos do post. Só membros da página podem consultar.
func (s *VoteService) Tally(ctx context.Context, requesterUserID, postID string) (entities.Tally, error) {
	if _, err := s.findVisiblePost(ctx, requesterUserID, postID); err != nil {
		return entities.Tally{}, err
	}
	return s.voteRepo.Tally(ctx, postID)
}

// ListByPost lista os votos do post com eleitor e post
func (s *VoteService) ListByPost(ctx context.Context, requesterUserID, postID string) ([]*entities.VoteWithRelations, error) {
	post, err := s.findVisiblePost(ctx, requesterUserID, postID)
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return s.assembler.withRelations(ctx, votes, map[string]*entities.Post{post.ID: post})
}

// Delete remove um voto. O eleitor ou o dono da página podem remover.
func (s *VoteService) Delete(ctx context.Context, requesterUserID, voteID string) error {
	vote, err := s.voteRepo.FindByID(ctx, voteID)
	if err != nil {
		return err
	}
	if vote == nil {
		return domainerrors.ErrVoteNotFound
	}

	page, err := s.votePageRepo.FindByID(ctx, vote.VotePageID)
	if err != nil {
		return err
	}

	if err := s.authz.CanDeleteVote(requesterUserID, vote, page); err != nil {
		return err
	}

	if err := s.voteRepo.Delete(ctx, vote.ID); err != nil {
		return err
	}

	s.logger.Info("vote deleted", "vote_id", vote.ID, "post_id", vote.PostID)
	s.events.Publish(ports.Event{
		Type:       ports.EventVoteDeleted,
		VotePageID: vote.VotePageID,
		Payload: map[string]string{
			"voteId": vote.ID,
			"postId": vote.PostID,
		},
	})
	return nil
}

func (s *VoteService) findPost(ctx context.Context, postID string) (*entities.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domainerrors.ErrPostNotFound
	}
	return post, nil
}

// findVisiblePost carrega o post e exige que o usuário enxergue a página dele
func (s *VoteService) findVisiblePost(ctx context.Context, requesterUserID, postID string) (*entities.Post, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	page, err := s.votePageRepo.FindByID(ctx, post.VotePageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, domainerrors.ErrVotePageNotFound
	}

	if err := s.authz.CanViewVotePage(requesterUserID, page); err != nil {
		return nil, err
	}
	return post, nil
}
