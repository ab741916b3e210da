package repositories

import (
	"context"

	"github.com/rafabene/votex-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// Métodos Find* retornam (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*entities.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, filters UserSearchFilters) ([]*entities.User, error)
	UpdateAvatar(ctx context.Context, id, avatarPath string) error
}

// UserSearchFilters contém filtros para a busca de sugestões
type UserSearchFilters struct {
	Query         string // substring, sem diferenciar maiúsculas
	ExcludeUserID string
	Limit         int // default: 10, max: 10
}
