package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
	"github.com/rafabene/votex-backend/internal/handlers/dto"
	"github.com/rafabene/votex-backend/internal/handlers/middleware"
	"github.com/rafabene/votex-backend/internal/infrastructure/metrics"
	"github.com/rafabene/votex-backend/internal/services"
)

// VoteHandler lida com votos
type VoteHandler struct {
	voteService *services.VoteService
	metrics     *metrics.Metrics
	logger      ports.Logger
}

// NewVoteHandler cria um novo VoteHandler. m pode ser nil.
func NewVoteHandler(voteService *services.VoteService, m *metrics.Metrics, logger ports.Logger) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
		metrics:     m,
		logger:      logger,
	}
}

// Cast lança, troca ou retira o voto do usuário autenticado
//
//	@Summary	Cast a vote
//	@Description	Same type again removes the vote, a different type replaces it.
//	@Tags		votes
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		dto.CastVoteRequest	true	"Vote"
//	@Success	201		{object}	dto.CastVoteResponse
//	@Success	200		{object}	dto.CastVoteResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/votes/cast [post]
func (h *VoteHandler) Cast(c *gin.Context) {
	var req dto.CastVoteRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.voteService.Cast(c.Request.Context(), services.CastVoteInput{
		PostID:      req.PostID,
		VoterUserID: middleware.CurrentUserID(c),
		VotePageID:  req.VotePageID,
		Type:        valueobjects.VoteType(*req.VoteType),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordVoteCast(string(result.Outcome))
	}

	c.JSON(statusFor(result.Outcome == entities.CastCreated), dto.ToCastVoteResponse(result))
}

// ListByPost lista os votos do post com eleitor e post
//
//	@Summary	List votes of a post
//	@Tags		votes
//	@Produce	json
//	@Security	BearerAuth
//	@Param		postId	path	string	true	"Post id"
//	@Success	200		{array}	dto.VoteResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/votes/{postId} [get]
func (h *VoteHandler) ListByPost(c *gin.Context) {
	votes, err := h.voteService.ListByPost(c.Request.Context(), middleware.CurrentUserID(c), c.Param("postId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVoteWithRelationsResponses(votes))
}

// Tally retorna a contagem de votos do post
//
//	@Summary	Vote tally of a post
//	@Tags		votes
//	@Produce	json
//	@Security	BearerAuth
//	@Param		postId	path		string	true	"Post id"
//	@Success	200		{object}	dto.TallyResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/votes/{postId}/tally [get]
func (h *VoteHandler) Tally(c *gin.Context) {
	tally, err := h.voteService.Tally(c.Request.Context(), middleware.CurrentUserID(c), c.Param("postId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTallyResponse(tally))
}

// Delete remove um voto
//
//	@Summary	Delete a vote
//	@Tags		votes
//	@Produce	json
//	@Security	BearerAuth
//	@Param		voteId	path		string	true	"Vote id"
//	@Success	200		{object}	dto.MessageResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/votes/{voteId}/delete [delete]
func (h *VoteHandler) Delete(c *gin.Context) {
	if err := h.voteService.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("voteId")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "message.vote_deleted")})
}
