package dto

import (
	"time"

	"github.com/rafabene/votex-backend/internal/domain/entities"
)

// UpsertCommentRequest cria ou edita um comentário
type UpsertCommentRequest struct {
	CommentID string `json:"commentId" binding:"omitempty,max=64"`
	CreatedBy string `json:"createdBy"`
	Content   string `json:"content" binding:"required,max=5000"`
}

type CommentResponse struct {
	CommentID string    `json:"commentId"`
	CreatedBy string    `json:"createdBy"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToCommentResponse(comment *entities.Comment) CommentResponse {
	return CommentResponse{
		CommentID: comment.ID,
		CreatedBy: comment.OwnerUserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
