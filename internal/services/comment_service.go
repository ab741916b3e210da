package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
)

// CommentService contém a lógica de negócio para comentários
type CommentService struct {
	commentRepo repositories.CommentRepository
	authz       *Authorizer
	logger      ports.Logger
}

// NewCommentService cria um novo CommentService
func NewCommentService(commentRepo repositories.CommentRepository, authz *Authorizer, logger ports.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		authz:       authz,
		logger:      logger,
	}
}

// UpsertCommentInput representa os dados de um comentário
type UpsertCommentInput struct {
	CommentID   string
	OwnerUserID string
	Content     string
}

// Upsert edita o comentário do autor ou cria um novo
func (s *CommentService) Upsert(ctx context.Context, input UpsertCommentInput) (*entities.Comment, bool, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, false, errors.ErrValidation
	}

	if input.CommentID != "" {
		existing, err := s.commentRepo.FindByID(ctx, input.CommentID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			if err := s.authz.CanEditComment(input.OwnerUserID, existing); err != nil {
				return nil, false, err
			}
			existing.Content = content
			existing.UpdatedAt = time.Now().UTC()
			if err := s.commentRepo.Update(ctx, existing); err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
	}

	id := input.CommentID
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now().UTC()
	comment := &entities.Comment{
		ID:          id,
		OwnerUserID: input.OwnerUserID,
		Content:     content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := comment.Validate(); err != nil {
		return nil, false, errors.ErrValidation
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, false, err
	}

	s.logger.Info("comment created", "comment_id", comment.ID)
	return comment, true, nil
}

// Delete remove um comentário do próprio autor
func (s *CommentService) Delete(ctx context.Context, requesterUserID, commentID string) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return errors.ErrCommentNotFound
	}

	if err := s.authz.CanEditComment(requesterUserID, comment); err != nil {
		return err
	}

	return s.commentRepo.Delete(ctx, comment.ID)
}
