package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/handlers/dto"
	"github.com/rafabene/votex-backend/internal/handlers/middleware"
	"github.com/rafabene/votex-backend/internal/services"
)

// PostHandler lida com os posts de sugestão
type PostHandler struct {
	postService *services.PostService
	logger      ports.Logger
}

// NewPostHandler cria um novo PostHandler
func NewPostHandler(postService *services.PostService, logger ports.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// Upsert cria o post ou atualiza um existente pelo postId
//
//	@Summary	Create or update a post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.UpsertPostRequest	true	"Post"
//	@Success	201		{object}	dto.PostResponse
//	@Success	200		{object}	dto.PostResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/posts/add [post]
func (h *PostHandler) Upsert(c *gin.Context) {
	var req dto.UpsertPostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, created, err := h.postService.Upsert(c.Request.Context(), services.UpsertPostInput{
		PostID:          req.PostID,
		VotePageID:      req.VotePageID,
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		Category:        req.Category,
		RequesterUserID: middleware.CurrentUserID(c),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(statusFor(created), dto.ToPostResponse(post))
}

// Delete remove o post e seus votos
//
//	@Summary	Delete a post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		postId	path		string	true	"Post id"
//	@Success	200		{object}	dto.MessageResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/posts/{postId}/delete [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postService.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("postId")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "message.post_deleted")})
}
