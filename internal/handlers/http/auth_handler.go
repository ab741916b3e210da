package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/handlers/dto"
	"github.com/rafabene/votex-backend/internal/services"
)

// AuthHandler lida com cadastro e login
type AuthHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(userService *services.UserService, logger ports.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Register cadastra um usuário e cria sua página "Tutorial"
//
//	@Summary	Register a user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.RegisterRequest	true	"New user"
//	@Success	201		{object}	dto.RegisterResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		User:     dto.ToUserResponse(result.User),
		VotePage: dto.ToVotePageResponse(result.VotePage),
	})
}

// Login valida email e senha e devolve um token de sessão
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		dto.LoginRequest	true	"Credentials"
//	@Success	200		{object}	dto.LoginResponse
//	@Failure	401		{object}	dto.ErrorResponse
//	@Router		/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	credential, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     credential.Token,
		ExpiresAt: credential.ExpiresAt,
		User:      dto.ToUserResponse(credential.User),
	})
}
