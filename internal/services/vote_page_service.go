package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
)

// VotePageService contém a lógica de negócio para páginas de votação
type VotePageService struct {
	userRepo     repositories.UserRepository
	votePageRepo repositories.VotePageRepository
	postRepo     repositories.PostRepository
	voteRepo     repositories.VoteRepository
	assembler    *postAssembler
	authz        *Authorizer
	logger       ports.Logger
}

// NewVotePageService cria um novo VotePageService
func NewVotePageService(
	userRepo repositories.UserRepository,
	votePageRepo repositories.VotePageRepository,
	postRepo repositories.PostRepository,
	voteRepo repositories.VoteRepository,
	authz *Authorizer,
	logger ports.Logger,
) *VotePageService {
	return &VotePageService{
		userRepo:     userRepo,
		votePageRepo: votePageRepo,
		postRepo:     postRepo,
		voteRepo:     voteRepo,
		assembler:    &postAssembler{userRepo: userRepo, voteRepo: voteRepo},
		authz:        authz,
		logger:       logger,
	}
}

// SaveVotePageInput representa os dados de criação ou edição de uma página
type SaveVotePageInput struct {
	OwnerUserID   string
	VotePageID    string
	Name          string
	MemberUserIDs []string
}

// Create cria uma nova página. O dono sempre entra como membro.
func (s *VotePageService) Create(ctx context.Context, input SaveVotePageInput) (*entities.VotePage, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.ErrValidation
	}

	owner, err := s.userRepo.FindByID(ctx, input.OwnerUserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, errors.ErrOwnerNotFound
	}

	id := strings.TrimSpace(input.VotePageID)
	if id == "" {
		id = uuid.NewString()
	} else {
		existing, err := s.votePageRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errors.ErrVotePageIDTaken
		}
	}

	page, err := entities.NewVotePage(id, name, input.OwnerUserID, input.MemberUserIDs)
	if err != nil {
		return nil, errors.ErrValidation
	}

	if err := s.checkMembers(ctx, page); err != nil {
		return nil, err
	}

	if err := s.votePageRepo.Create(ctx, page); err != nil {
		return nil, err
	}

	s.logger.Info("vote page created", "vote_page_id", page.ID, "owner_user_id", page.OwnerUserID)
	return page, nil
}

// Save cria a página ou, se o ID já existe e pertence ao solicitante, atualiza.
// O booleano indica se a página foi criada.
func (s *VotePageService) Save(ctx context.Context, input SaveVotePageInput) (*entities.VotePage, bool, error) {
	if id := strings.TrimSpace(input.VotePageID); id != "" {
		existing, err := s.votePageRepo.FindByID(ctx, id)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			if err := s.authz.CanManageVotePage(input.OwnerUserID, existing); err != nil {
				return nil, false, err
			}
			page, err := s.update(ctx, existing, input.Name, input.MemberUserIDs)
			return page, false, err
		}
	}

	page, err := s.Create(ctx, input)
	if err != nil {
		return nil, false, err
	}
	return page, true, nil
}

// Update substitui nome e membros. Apenas o dono pode alterar.
func (s *VotePageService) Update(ctx context.Context, requesterUserID, votePageID, name string, members []string) (*entities.VotePage, error) {
	page, err := s.find(ctx, votePageID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.CanManageVotePage(requesterUserID, page); err != nil {
		return nil, err
	}

	return s.update(ctx, page, name, members)
}

func (s *VotePageService) update(ctx context.Context, page *entities.VotePage, name string, members []string) (*entities.VotePage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrValidation
	}

	page.Rename(name)
	page.SetMembers(members)

	if err := s.checkMembers(ctx, page); err != nil {
		return nil, err
	}

	if err := s.votePageRepo.Update(ctx, page); err != nil {
		return nil, err
	}

	s.logger.Info("vote page updated", "vote_page_id", page.ID, "members", len(page.MemberUserIDs))
	return page, nil
}

// ListAccessibleTo lista as páginas em que o usuário é dono ou membro
func (s *VotePageService) ListAccessibleTo(ctx context.Context, userID string) ([]*entities.VotePageSummary, error) {
	return s.votePageRepo.ListAccessibleTo(ctx, userID)
}

// GetDetails carrega a página com dono, posts, votos e contagens
func (s *VotePageService) GetDetails(ctx context.Context, requesterUserID, votePageID string) (*entities.VotePageDetails, error) {
	page, err := s.find(ctx, votePageID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.CanViewVotePage(requesterUserID, page); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, page.OwnerUserID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByVotePage(ctx, page.ID)
	if err != nil {
		return nil, err
	}

	postsWithVotes, err := s.assembler.withVotes(ctx, posts)
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.ListByVotePage(ctx, page.ID)
	if err != nil {
		return nil, err
	}

	postsByID := make(map[string]*entities.Post, len(posts))
	for _, p := range posts {
		postsByID[p.ID] = p
	}
	votesWithRelations, err := s.assembler.withRelations(ctx, votes, postsByID)
	if err != nil {
		return nil, err
	}

	return &entities.VotePageDetails{
		VotePage: *page,
		Owner:    owner,
		Posts:    postsWithVotes,
		Votes:    votesWithRelations,
	}, nil
}

// Delete remove a página com membros, posts e votos. Apenas o dono pode remover.
func (s *VotePageService) Delete(ctx context.Context, requesterUserID, votePageID string) error {
	page, err := s.find(ctx, votePageID)
	if err != nil {
		return err
	}

	if err := s.authz.CanManageVotePage(requesterUserID, page); err != nil {
		s.logger.Warn("forbidden vote page delete", "vote_page_id", votePageID, "user_id", requesterUserID)
		return err
	}

	if err := s.votePageRepo.Delete(ctx, page.ID); err != nil {
		return err
	}

	s.logger.Info("vote page deleted", "vote_page_id", page.ID)
	return nil
}

// Find busca uma página exigindo que o usuário seja membro
func (s *VotePageService) Find(ctx context.Context, requesterUserID, votePageID string) (*entities.VotePage, error) {
	page, err := s.find(ctx, votePageID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanViewVotePage(requesterUserID, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *VotePageService) find(ctx context.Context, votePageID string) (*entities.VotePage, error) {
	page, err := s.votePageRepo.FindByID(ctx, votePageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, errors.ErrVotePageNotFound
	}
	return page, nil
}

// checkMembers garante que todos os membros existem
func (s *VotePageService) checkMembers(ctx context.Context, page *entities.VotePage) error {
	others := make([]string, 0, len(page.MemberUserIDs))
	for _, m := range page.MemberUserIDs {
		if m != page.OwnerUserID {
			others = append(others, m)
		}
	}
	if len(others) == 0 {
		return nil
	}

	found, err := s.userRepo.FindByIDs(ctx, others)
	if err != nil {
		return err
	}
	if len(found) != len(others) {
		return errors.ErrUnknownMember
	}
	return nil
}
