package dto

import (
	"time"

	"github.com/rafabene/votex-backend/internal/domain/entities"
)

// RegisterRequest representa a requisição de cadastro
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AvatarRequest representa a atualização do avatar
type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required,max=512"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserDetailsResponse é o perfil público retornado por /details
type UserDetailsResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

type UsernameResponse struct {
	Username string `json:"username"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// RegisterResponse traz o usuário criado e sua página tutorial
type RegisterResponse struct {
	User     UserResponse     `json:"user"`
	VotePage VotePageResponse `json:"votePage"`
}

// LoginResponse traz o token de sessão
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		UserID:    user.ID.String(),
		Username:  user.Username,
		Email:     user.Email.String(),
		Avatar:    user.AvatarPath,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

func ToUserDetailsResponse(user *entities.User) UserDetailsResponse {
	return UserDetailsResponse{
		Username:  user.Username,
		Email:     user.Email.String(),
		Avatar:    user.AvatarPath,
		CreatedAt: user.CreatedAt,
	}
}

func toUserResponsePtr(user *entities.User) *UserResponse {
	if user == nil {
		return nil
	}
	r := ToUserResponse(user)
	return &r
}
