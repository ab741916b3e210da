package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/handlers/dto"
	"github.com/rafabene/votex-backend/internal/handlers/middleware"
	"github.com/rafabene/votex-backend/internal/services"
)

// CommentHandler lida com comentários
type CommentHandler struct {
	commentService *services.CommentService
	logger         ports.Logger
}

func NewCommentHandler(commentService *services.CommentService, logger ports.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// Upsert cria ou edita um comentário
//
//	@Summary	Create or edit a comment
//	@Tags		comments
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.UpsertCommentRequest	true	"Comment"
//	@Success	201		{object}	dto.CommentResponse
//	@Success	200		{object}	dto.CommentResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/comments/add [post]
func (h *CommentHandler) Upsert(c *gin.Context) {
	var req dto.UpsertCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, created, err := h.commentService.Upsert(c.Request.Context(), services.UpsertCommentInput{
		CommentID:   req.CommentID,
		OwnerUserID: middleware.CurrentUserID(c),
		Content:     req.Content,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(statusFor(created), dto.ToCommentResponse(comment))
}

// Delete remove um comentário
//
//	@Summary	Delete a comment
//	@Tags		comments
//	@Produce	json
//	@Security	BearerAuth
//	@Param		commentId	path		string	true	"Comment id"
//	@Success	200			{object}	dto.MessageResponse
//	@Failure	403			{object}	dto.ErrorResponse
//	@Failure	404			{object}	dto.ErrorResponse
//	@Router		/comments/{commentId}/delete [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.commentService.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("commentId")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "message.comment_deleted")})
}
