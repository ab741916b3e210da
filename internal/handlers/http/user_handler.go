package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/handlers/dto"
	"github.com/rafabene/votex-backend/internal/handlers/middleware"
	"github.com/rafabene/votex-backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// CheckUser informa se o usuário do header user-id existe
//
//	@Summary	Check that a user exists
//	@Tags		users
//	@Produce	json
//	@Param		user-id	header		string	true	"User id"
//	@Success	200		{object}	dto.ExistsResponse
//	@Failure	404		{object}	dto.ExistsResponse
//	@Router		/check-user [get]
func (h *UserHandler) CheckUser(c *gin.Context) {
	exists, err := h.userService.Exists(c.Request.Context(), c.GetHeader("user-id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if !exists {
		c.JSON(http.StatusNotFound, dto.ExistsResponse{Exists: false})
		return
	}
	c.JSON(http.StatusOK, dto.ExistsResponse{Exists: true})
}

// Suggestions busca usuários por trecho do username ou email
//
//	@Summary	Search users to invite
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		query	query	string	false	"Username or email fragment"
//	@Success	200		{array}	dto.UserResponse
//	@Router		/users/suggestions [get]
func (h *UserHandler) Suggestions(c *gin.Context) {
	users, err := h.userService.Suggestions(c.Request.Context(), c.Query("query"), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// Username retorna o username de um usuário
//
//	@Summary	Get a username
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	dto.UsernameResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id}/username [get]
func (h *UserHandler) Username(c *gin.Context) {
	username, err := h.userService.Username(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UsernameResponse{Username: username})
}

// Details retorna o perfil público de um usuário
//
//	@Summary	Get user details
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	dto.UserDetailsResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id}/details [get]
func (h *UserHandler) Details(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDetailsResponse(user))
}

// UpdateAvatar grava o caminho do avatar do próprio usuário
//
//	@Summary	Set avatar path
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"User id"
//	@Param		body	body		dto.AvatarRequest	true	"Avatar"
//	@Success	200		{object}	dto.UserResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/users/{id}/avatar/add [post]
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	var req dto.AvatarRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateAvatar(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.Avatar)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
