package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
)

// PostRepository implementa repositories.PostRepository
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	model := r.toModel(post)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return repositories.ErrDuplicatePost
		}
		return err
	}

	post.CreatedAt = fromMillis(model.CreatedAt)
	post.UpdatedAt = fromMillis(model.UpdatedAt)
	return nil
}

func (r *PostRepository) Update(ctx context.Context, post *entities.Post) error {
	db := r.getDB(ctx)
	result := db.Model(&PostModel{}).
		Where("post_id = ?", post.ID).
		Updates(map[string]interface{}{
			"title":       post.Title,
			"description": post.Description,
			"status":      post.Status,
			"category":    post.Category,
			"updated_at":  time.Now().UnixMilli(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	var model PostModel

	db := r.getDB(ctx)
	if err := db.Where("post_id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

// ListByVotePage retorna os posts da página, mais recentes primeiro
func (r *PostRepository) ListByVotePage(ctx context.Context, votePageID string) ([]*entities.Post, error) {
	var models []*PostModel

	db := r.getDB(ctx)
	if err := db.Where("vote_page_id = ?", votePageID).
		Order("created_at DESC, post_id").
		Find(&models).Error; err != nil {
		return nil, err
	}

	posts := make([]*entities.Post, 0, len(models))
	for _, m := range models {
		posts = append(posts, r.toEntity(m))
	}
	return posts, nil
}

// Delete remove o post e seus votos
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return inTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&VoteModel{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&PostModel{}).Error
	})
}

func (r *PostRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Conversores
func (r *PostRepository) toModel(post *entities.Post) *PostModel {
	return &PostModel{
		PostID:      post.ID,
		VotePageID:  post.VotePageID,
		Title:       post.Title,
		Description: post.Description,
		Category:    post.Category,
		Status:      post.Status,
		OwnerUserID: post.OwnerUserID,
		CreatedAt:   toMillis(post.CreatedAt),
		UpdatedAt:   toMillis(post.UpdatedAt),
	}
}

func (r *PostRepository) toEntity(model *PostModel) *entities.Post {
	return &entities.Post{
		ID:          model.PostID,
		VotePageID:  model.VotePageID,
		Title:       model.Title,
		Description: model.Description,
		Category:    model.Category,
		Status:      model.Status,
		OwnerUserID: model.OwnerUserID,
		CreatedAt:   fromMillis(model.CreatedAt),
		UpdatedAt:   fromMillis(model.UpdatedAt),
	}
}
