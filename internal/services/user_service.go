package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	"github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/ports"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo     repositories.UserRepository
	votePageRepo repositories.VotePageRepository
	uow          ports.UnitOfWork
	hasher       ports.PasswordHasher
	tokens       ports.TokenIssuer
	authz        *Authorizer
	logger       ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	votePageRepo repositories.VotePageRepository,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	authz *Authorizer,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		votePageRepo: votePageRepo,
		uow:          uow,
		hasher:       hasher,
		tokens:       tokens,
		authz:        authz,
		logger:       logger,
	}
}

// RegisterInput representa os dados para registrar um usuário
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// RegisterResult é o usuário criado e sua página tutorial
type RegisterResult struct {
	User     *entities.User
	VotePage *entities.VotePage
}

// Credential é o resultado de um login bem-sucedido
type Credential struct {
	Token     string
	ExpiresAt time.Time
	User      *entities.User
}

// Register cria o usuário e a página "Tutorial" na mesma transação
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	userID, err := valueobjects.DeriveUserID(input.Username)
	if err != nil {
		return nil, err
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Password) == "" {
		return nil, errors.ErrInvalidPassword
	}

	s.logger.Info("registering user", "user_id", userID.String(), "email", email.String())

	exists, err := s.userRepo.Exists(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.ErrUsernameAlreadyExists
	}

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := entities.NewUser(input.Username, email, hash)
	if err != nil {
		return nil, err
	}
	page := entities.NewTutorialPage(user.ID.String())

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		if err := s.votePageRepo.Create(txCtx, page); err != nil {
			s.logger.Error("failed to create tutorial page", "user_id", user.ID.String(), "error", err)
			return fmt.Errorf("%w: %v", errors.ErrRegistrationIncomplete, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID.String())
	return &RegisterResult{User: user, VotePage: page}, nil
}

// Authenticate valida email e senha e emite um token de sessão
func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (*Credential, error) {
	email, err := valueobjects.NewEmail(emailAddr)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Compare(user.PasswordHash, password) {
		s.logger.Warn("failed login attempt", "email", email.String())
		return nil, errors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Credential{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Exists verifica se existe usuário com o ID
func (s *UserService) Exists(ctx context.Context, userID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, errors.ErrValidation
	}
	return s.userRepo.Exists(ctx, userID)
}

// Suggestions busca usuários por trecho de username ou email, sem o solicitante
func (s *UserService) Suggestions(ctx context.Context, query, excludeUserID string) ([]*entities.User, error) {
	return s.userRepo.Search(ctx, repositories.UserSearchFilters{
		Query:         query,
		ExcludeUserID: excludeUserID,
	})
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// Username retorna o username do usuário
func (s *UserService) Username(ctx context.Context, id string) (string, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// UpdateAvatar grava o caminho do avatar. Só o próprio usuário pode alterar.
func (s *UserService) UpdateAvatar(ctx context.Context, requesterUserID, userID, avatarPath string) (*entities.User, error) {
	if err := s.authz.RequireSelf(requesterUserID, userID); err != nil {
		return nil, err
	}

	avatarPath = strings.TrimSpace(avatarPath)
	if avatarPath == "" {
		return nil, errors.ErrValidation
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, avatarPath); err != nil {
		return nil, err
	}

	return s.GetUser(ctx, userID)
}
