package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/handlers/dto"
	"github.com/rafabene/votex-backend/internal/handlers/middleware"
	"github.com/rafabene/votex-backend/internal/infrastructure/realtime"
	"github.com/rafabene/votex-backend/internal/services"
)

// VotePageHandler lida com páginas de votação, seus posts e o feed ao vivo
type VotePageHandler struct {
	votePageService *services.VotePageService
	postService     *services.PostService
	hub             *realtime.Hub
	upgrader        websocket.Upgrader
	logger          ports.Logger
}

// NewVotePageHandler cria um novo VotePageHandler.
// allowedOrigins restringe o handshake WebSocket; vazio aceita qualquer origem.
func NewVotePageHandler(
	votePageService *services.VotePageService,
	postService *services.PostService,
	hub *realtime.Hub,
	allowedOrigins []string,
	logger ports.Logger,
) *VotePageHandler {
	return &VotePageHandler{
		votePageService: votePageService,
		postService:     postService,
		hub:             hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// List retorna as páginas em que o usuário é dono ou membro
//
//	@Summary	List accessible vote pages
//	@Tags		votepages
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"User id"
//	@Success	200	{array}	dto.VotePageSummaryResponse
//	@Router		/votepages/{id} [get]
func (h *VotePageHandler) List(c *gin.Context) {
	pages, err := h.votePageService.ListAccessibleTo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVotePageSummaryResponses(pages))
}

// Details retorna a página com posts, votos e dono
//
//	@Summary	Get vote page details
//	@Tags		votepages
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Vote page id"
//	@Success	200	{object}	dto.VotePageDetailsResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/votepages/{id}/details [get]
func (h *VotePageHandler) Details(c *gin.Context) {
	details, err := h.votePageService.GetDetails(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVotePageDetailsResponse(details))
}

// Posts lista os posts da página com votos e contagem
//
//	@Summary	List posts of a vote page
//	@Tags		votepages
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path	string	true	"Vote page id"
//	@Param		sort	query	string	false	"newest, mostVotes, mostUpvotes or mostDownvotes"
//	@Success	200		{array}	dto.PostResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/votepages/{id}/posts [get]
func (h *VotePageHandler) Posts(c *gin.Context) {
	posts, err := h.postService.ListByVotePage(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		c.Param("id"),
		entities.ParsePostSort(c.Query("sort")),
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostWithVotesResponses(posts))
}

// Save cria a página ou, se ela já existe e o solicitante é o dono, a atualiza
//
//	@Summary	Create or update a vote page
//	@Tags		votepages
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"Owner user id"
//	@Param		body	body		dto.SaveVotePageRequest	true	"Vote page"
//	@Success	201		{object}	dto.VotePageResponse
//	@Success	200		{object}	dto.VotePageResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/votepages/{id}/add [post]
func (h *VotePageHandler) Save(c *gin.Context) {
	var req dto.SaveVotePageRequest
	if !bindJSON(c, &req) {
		return
	}

	page, created, err := h.votePageService.Save(c.Request.Context(), services.SaveVotePageInput{
		OwnerUserID:   middleware.CurrentUserID(c),
		VotePageID:    req.VotePageID,
		Name:          req.Name,
		MemberUserIDs: req.Users,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(statusFor(created), dto.ToVotePageResponse(page))
}

// Update substitui nome e membros de uma página
//
//	@Summary	Update a vote page
//	@Tags		votepages
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		string						true	"Owner user id"
//	@Param		votePageId	path		string						true	"Vote page id"
//	@Param		body		body		dto.UpdateVotePageRequest	true	"Vote page"
//	@Success	200			{object}	dto.VotePageResponse
//	@Failure	403			{object}	dto.ErrorResponse
//	@Failure	404			{object}	dto.ErrorResponse
//	@Router		/votepages/{id}/{votePageId} [put]
func (h *VotePageHandler) Update(c *gin.Context) {
	var req dto.UpdateVotePageRequest
	if !bindJSON(c, &req) {
		return
	}

	page, err := h.votePageService.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("votePageId"), req.Name, req.Users)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVotePageResponse(page))
}

// Delete remove a página com membros, posts e votos
//
//	@Summary	Delete a vote page
//	@Tags		votepages
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		string	true	"Owner user id"
//	@Param		votePageId	path		string	true	"Vote page id"
//	@Success	200			{object}	dto.MessageResponse
//	@Failure	403			{object}	dto.ErrorResponse
//	@Failure	404			{object}	dto.ErrorResponse
//	@Router		/votepages/{id}/{votePageId}/delete [delete]
func (h *VotePageHandler) Delete(c *gin.Context) {
	if err := h.votePageService.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("votePageId")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "message.vote_page_deleted")})
}

// Live abre um WebSocket com os eventos da página
//
//	@Summary	Live updates of a vote page
//	@Tags		votepages
//	@Security	BearerAuth
//	@Param		id		path	string	true	"Vote page id"
//	@Param		token	query	string	false	"Session token, for clients that cannot set headers"
//	@Success	101	{string}	string	"Switching Protocols"
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/votepages/{id}/live [get]
func (h *VotePageHandler) Live(c *gin.Context) {
	page, err := h.votePageService.Find(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade já respondeu ao cliente
		h.logger.Debug("websocket upgrade failed", "vote_page_id", page.ID, "error", err)
		return
	}

	h.logger.Debug("live subscriber connected", "vote_page_id", page.ID, "user_id", middleware.CurrentUserID(c))
	h.hub.Serve(conn, page.ID)
}
