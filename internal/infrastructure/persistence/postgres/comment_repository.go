package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
)

// CommentRepository implementa repositories.CommentRepository
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository cria um novo CommentRepository
func NewCommentRepository(db *gorm.DB) repositories.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *entities.Comment) error {
	model := &CommentModel{
		CommentID:   comment.ID,
		OwnerUserID: comment.OwnerUserID,
		Content:     comment.Content,
		CreatedAt:   toMillis(comment.CreatedAt),
		UpdatedAt:   toMillis(comment.UpdatedAt),
	}

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	comment.CreatedAt = fromMillis(model.CreatedAt)
	comment.UpdatedAt = fromMillis(model.UpdatedAt)
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *entities.Comment) error {
	db := r.getDB(ctx)
	result := db.Model(&CommentModel{}).
		Where("comment_id = ?", comment.ID).
		Updates(map[string]interface{}{
			"content":    comment.Content,
			"updated_at": time.Now().UnixMilli(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*entities.Comment, error) {
	var model CommentModel

	db := r.getDB(ctx)
	if err := db.Where("comment_id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return &entities.Comment{
		ID:          model.CommentID,
		OwnerUserID: model.OwnerUserID,
		Content:     model.Content,
		CreatedAt:   fromMillis(model.CreatedAt),
		UpdatedAt:   fromMillis(model.UpdatedAt),
	}, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	return db.Where("comment_id = ?", id).Delete(&CommentModel{}).Error
}

func (r *CommentRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
