package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/rafabene/votex-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/votex-backend/internal/domain/errors"
	"github.com/rafabene/votex-backend/internal/domain/repositories"
	"github.com/rafabene/votex-backend/internal/domain/valueobjects"
)

const maxSuggestions = 10

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			// Com TranslateError o nome do índice pode se perder; o service
			// verifica username e email antes de inserir.
			if strings.Contains(strings.ToLower(err.Error()), "email") {
				return domainerrors.ErrEmailAlreadyExists
			}
			return domainerrors.ErrUsernameAlreadyExists
		}
		return err
	}

	user.CreatedAt = fromMillis(model.CreatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	if err := db.Where("user_id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}

	var models []*UserModel
	db := r.getDB(ctx)
	if err := db.Where("user_id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64

	db := r.getDB(ctx)
	if err := db.Model(&UserModel{}).Where("user_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// likeEscaper faz curingas digitados pelo usuário valerem como texto
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (r *UserRepository) Search(ctx context.Context, filters repositories.UserSearchFilters) ([]*entities.User, error) {
	var models []*UserModel

	db := r.getDB(ctx)
	query := db.Model(&UserModel{})

	if q := strings.ToLower(strings.TrimSpace(filters.Query)); q != "" {
		pattern := "%" + likeEscaper.Replace(q) + "%"
		query = query.Where(`(LOWER(username) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	if filters.ExcludeUserID != "" {
		query = query.Where("user_id <> ?", filters.ExcludeUserID)
	}

	limit := filters.Limit
	if limit < 1 || limit > maxSuggestions {
		limit = maxSuggestions
	}

	if err := query.Order("username").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatarPath string) error {
	db := r.getDB(ctx)
	result := db.Model(&UserModel{}).Where("user_id = ?", id).Update("avatar_path", avatarPath)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		UserID:       user.ID.String(),
		Username:     user.Username,
		Email:        user.Email.String(),
		PasswordHash: user.PasswordHash,
		AvatarPath:   user.AvatarPath,
		CreatedAt:    toMillis(user.CreatedAt),
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:           valueobjects.UserID(model.UserID),
		Username:     model.Username,
		Email:        email,
		PasswordHash: model.PasswordHash,
		AvatarPath:   model.AvatarPath,
		CreatedAt:    fromMillis(model.CreatedAt),
	}, nil
}

func (r *UserRepository) toEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		entity, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, entity)
	}

	return users, nil
}
