package services

import (
	"cmp"
	"context"
	stderrors "errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
)

// PostService contém a lógica de negócio para posts
type PostService struct {
	postRepo     repositories.PostRepository
	votePageRepo repositories.VotePageRepository
	assembler    *postAssembler
	authz        *Authorizer
	events       ports.EventPublisher
	logger       ports.Logger
}

// NewPostService cria um novo PostService
func NewPostService(
	postRepo repositories.PostRepository,
	votePageRepo repositories.VotePageRepository,
	userRepo repositories.UserRepository,
	voteRepo repositories.VoteRepository,
	authz *Authorizer,
	events ports.EventPublisher,
	logger ports.Logger,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		votePageRepo: votePageRepo,
		assembler:    &postAssembler{userRepo: userRepo, voteRepo: voteRepo},
		authz:        authz,
		events:       events,
		logger:       logger,
	}
}

// UpsertPostInput representa os dados de criação ou edição de um post
type UpsertPostInput struct {
	PostID          string
	VotePageID      string
	Title           string
	Description     string
	Status          string
	Category        string
	RequesterUserID string
}

// Upsert atualiza o post se o ID existir, senão cria.
// O booleano indica se o post foi criado.
func (s *PostService) Upsert(ctx context.Context, input UpsertPostInput) (*entities.Post, bool, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, false, errors.ErrValidation
	}

	if input.PostID != "" {
		existing, err := s.postRepo.FindByID(ctx, input.PostID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			post, err := s.update(ctx, existing, input)
			return post, false, err
		}
	}

	post, err := s.create(ctx, input)
	if stderrors.Is(err, repositories.ErrDuplicatePost) {
		// Outro request criou o mesmo ID depois da leitura; vira atualização
		s.logger.Warn("concurrent post create detected, retrying as update", "post_id", input.PostID)
		return s.updateExisting(ctx, input)
	}
	if err != nil {
		return nil, false, err
	}
	return post, true, nil
}

func (s *PostService) updateExisting(ctx context.Context, input UpsertPostInput) (*entities.Post, bool, error) {
	existing, err := s.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, errors.ErrPostNotFound
	}
	post, err := s.update(ctx, existing, input)
	return post, false, err
}

func (s *PostService) create(ctx context.Context, input UpsertPostInput) (*entities.Post, error) {
	page, err := s.votePageRepo.FindByID(ctx, input.VotePageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, errors.ErrVotePageNotFound
	}

	if err := s.authz.CanViewVotePage(input.RequesterUserID, page); err != nil {
		return nil, err
	}

	id := input.PostID
	if id == "" {
		id = newPostID()
	}

	now := time.Now().UTC()
	post := &entities.Post{
		ID:          id,
		VotePageID:  page.ID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Status:      input.Status,
		OwnerUserID: input.RequesterUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := post.Validate(); err != nil {
		return nil, errors.ErrValidation
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "vote_page_id", post.VotePageID)
	s.publish(ports.EventPostSaved, post)
	return post, nil
}

func (s *PostService) update(ctx context.Context, post *entities.Post, input UpsertPostInput) (*entities.Post, error) {
	page, err := s.votePageRepo.FindByID(ctx, post.VotePageID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.CanEditPost(input.RequesterUserID, post, page); err != nil {
		return nil, err
	}

	post.Update(input.Title, input.Description, input.Status, input.Category)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post updated", "post_id", post.ID)
	s.publish(ports.EventPostSaved, post)
	return post, nil
}

// ListByVotePage lista os posts da página com votos e contagens, na ordem pedida
func (s *PostService) ListByVotePage(ctx context.Context, requesterUserID, votePageID string, sortBy entities.PostSort) ([]*entities.PostWithVotes, error) {
	page, err := s.votePageRepo.FindByID(ctx, votePageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, errors.ErrVotePageNotFound
	}

	if err := s.authz.CanViewVotePage(requesterUserID, page); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByVotePage(ctx, votePageID)
	if err != nil {
		return nil, err
	}

	result, err := s.assembler.withVotes(ctx, posts)
	if err != nil {
		return nil, err
	}

	SortPosts(result, sortBy)
	return result, nil
}

// Delete remove o post e seus votos
func (s *PostService) Delete(ctx context.Context, requesterUserID, postID string) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return errors.ErrPostNotFound
	}

	page, err := s.votePageRepo.FindByID(ctx, post.VotePageID)
	if err != nil {
		return err
	}

	if err := s.authz.CanEditPost(requesterUserID, post, page); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	s.logger.Info("post deleted", "post_id", post.ID)
	s.publish(ports.EventPostDeleted, post)
	return nil
}

func (s *PostService) publish(eventType string, post *entities.Post) {
	s.events.Publish(ports.Event{
		Type:       eventType,
		VotePageID: post.VotePageID,
		Payload: map[string]string{
			"postId": post.ID,
			"title":  post.Title,
		},
	})
}

// SortPosts ordena in-place. Empates mantêm a ordem de criação (mais novos primeiro).
func SortPosts(posts []*entities.PostWithVotes, sortBy entities.PostSort) {
	var key func(p *entities.PostWithVotes) int64
	switch sortBy {
	case entities.SortMostVotes:
		key = func(p *entities.PostWithVotes) int64 { return p.Tally.Total() }
	case entities.SortMostUpvotes:
		key = func(p *entities.PostWithVotes) int64 { return p.Tally.Upvotes }
	case entities.SortMostDownvotes:
		key = func(p *entities.PostWithVotes) int64 { return p.Tally.Downvotes }
	default:
		slices.SortStableFunc(posts, func(a, b *entities.PostWithVotes) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
		return
	}

	slices.SortStableFunc(posts, func(a, b *entities.PostWithVotes) int {
		return cmp.Compare(key(b), key(a))
	})
}

// newPostID gera um ID aleatório de 32 caracteres hexadecimais
func newPostID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
